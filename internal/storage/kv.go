// Package storage holds the local persistent key-value store that backs
// session snapshots and the question cache. Every value is overwritten
// wholesale; there is no partial update.
package storage

import (
	"context"
	"errors"
	"time"
)

// SchemaVersion is written once when a store is created. It is not used for migrations.
const SchemaVersion = 1

var ErrNotFound = errors.New("key not found")

type Entry struct {
	Value     []byte
	UpdatedAt time.Time
}

type KV interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
