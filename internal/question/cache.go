package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/saulo-duarte/quizdeck/internal/storage"
)

const (
	cacheKey      = "questions"
	CacheDuration = 24 * time.Hour
)

type cachedQuestions struct {
	ID        string   `json:"id"`
	Questions []Record `json:"questions"`
	Timestamp int64    `json:"timestamp"`
}

// Cache keeps the last remotely fetched question set in the local store.
type Cache struct {
	kv  storage.KV
	ttl time.Duration
	now func() time.Time
}

func NewCache(kv storage.KV) *Cache {
	return &Cache{kv: kv, ttl: CacheDuration, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the cached records, or false when absent or expired. Expired
// entries are removed.
func (c *Cache) Get(ctx context.Context) ([]Record, bool, error) {
	e, err := c.kv.Get(ctx, cacheKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cached cachedQuestions
	if err := json.Unmarshal(e.Value, &cached); err != nil {
		return nil, false, err
	}

	if c.now().Sub(time.UnixMilli(cached.Timestamp)) > c.ttl {
		if err := c.kv.Delete(ctx, cacheKey); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return cached.Questions, true, nil
}

func (c *Cache) Put(ctx context.Context, records []Record) error {
	data, err := json.Marshal(cachedQuestions{
		ID:        cacheKey,
		Questions: records,
		Timestamp: c.now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, cacheKey, data)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, cacheKey)
}
