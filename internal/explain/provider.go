package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"google.golang.org/genai"
)

var (
	ErrNoAPIKey      = errors.New("gemini api key not configured")
	ErrEmptyResponse = errors.New("empty response from model")
)

type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = config.DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx).WithField("model", p.model)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini request failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	log.Debugf("Gemini response (%d bytes)", len(text))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
