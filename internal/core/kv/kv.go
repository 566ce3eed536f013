// Package kv defines the persistent key-value store that holds timer state.
// Values are stored as JSON; implementations live in internal/data/stores.
package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned, wrapped, by Get and GetRaw for a missing key.
var ErrNotFound = sql.ErrNoRows

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Entry is a stored value with its last write time.
type Entry struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// KV stores JSON-serializable values under string keys.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
	GetRaw(ctx context.Context, key string) (Entry, error)
}
