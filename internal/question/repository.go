package question

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

//go:embed data/questions.json
var bundled embed.FS

const bundledPath = "data/questions.json"

// QuestionRepository yields the raw question records. Remote reports whether
// the records travel over the network and are therefore worth caching.
type QuestionRepository interface {
	Fetch(ctx context.Context) ([]Record, error)
	Remote() bool
	Location() string
}

// NewRepository picks a repository for location: an http(s) URL, a file path,
// or the bundled sample set when location is empty.
func NewRepository(location string, client *http.Client) QuestionRepository {
	switch {
	case location == "":
		return &bundledRepository{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if client == nil {
			client = &http.Client{Timeout: 8 * time.Second}
		}
		return &httpRepository{url: location, client: client}
	default:
		return &fileRepository{path: location}
	}
}

type fileRepository struct {
	path string
}

func (r *fileRepository) Fetch(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func (r *fileRepository) Remote() bool     { return false }
func (r *fileRepository) Location() string { return r.path }

type httpRepository struct {
	url    string
	client *http.Client
}

func (r *httpRepository) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", r.url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func (r *httpRepository) Remote() bool     { return true }
func (r *httpRepository) Location() string { return r.url }

type bundledRepository struct{}

func (r *bundledRepository) Fetch(ctx context.Context) ([]Record, error) {
	data, err := bundled.ReadFile(bundledPath)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func (r *bundledRepository) Remote() bool     { return false }
func (r *bundledRepository) Location() string { return "bundled" }

func decodeRecords(data []byte) ([]Record, error) {
	// files saved by some editors start with a UTF-8 BOM
	data = []byte(strings.TrimPrefix(string(data), "\ufeff"))

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return records, nil
}
