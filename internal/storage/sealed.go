package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saulo-duarte/quizdeck/internal/config"
)

type sealedKV struct {
	inner KV
}

// Sealed encrypts values with config.Encrypt before they reach inner. The
// ciphertext is stored as a JSON string so JSON-typed backends accept it.
func Sealed(inner KV) KV {
	return &sealedKV{inner: inner}
}

func (s *sealedKV) Get(ctx context.Context, key string) (Entry, error) {
	e, err := s.inner.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	var ciphertext string
	if err := json.Unmarshal(e.Value, &ciphertext); err != nil {
		return Entry{}, fmt.Errorf("sealed value for %q: %w", key, err)
	}
	plain, err := config.Decrypt(ciphertext)
	if err != nil {
		return Entry{}, fmt.Errorf("decrypt %q: %w", key, err)
	}
	e.Value = []byte(plain)
	return e, nil
}

func (s *sealedKV) Put(ctx context.Context, key string, value []byte) error {
	ciphertext, err := config.Encrypt(string(value))
	if err != nil {
		return fmt.Errorf("encrypt %q: %w", key, err)
	}
	wrapped, err := json.Marshal(ciphertext)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, key, wrapped)
}

func (s *sealedKV) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *sealedKV) Close() error {
	return s.inner.Close()
}
