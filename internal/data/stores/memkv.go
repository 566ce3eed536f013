package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/ticktock/internal/core/kv"
	pkgkv "github.com/colonyops/ticktock/pkg/kv"
)

type memEntry struct {
	value     []byte
	updatedAt time.Time
}

// MemoryKV implements kv.KV in process memory. Values are still round-tripped
// through JSON so callers observe the same encoding as the SQLite store.
type MemoryKV struct {
	data *pkgkv.Store[string, memEntry]
}

var _ kv.KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory KV store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: pkgkv.New[string, memEntry]()}
}

func (m *MemoryKV) Get(_ context.Context, key string, dest any) error {
	e, ok := m.data.Get(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, sql.ErrNoRows)
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	m.data.Set(key, memEntry{value: data, updatedAt: time.Now()})
	return nil
}

// SetRaw stores bytes verbatim. Tests use it to plant malformed records.
func (m *MemoryKV) SetRaw(key string, value []byte) {
	m.data.Set(key, memEntry{value: value, updatedAt: time.Now()})
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

func (m *MemoryKV) Has(_ context.Context, key string) (bool, error) {
	_, ok := m.data.Get(key)
	return ok, nil
}

func (m *MemoryKV) ListKeys(_ context.Context) ([]string, error) {
	return pkgkv.SortedKeys(m.data), nil
}

func (m *MemoryKV) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	e, ok := m.data.Get(key)
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get raw %q: %w", key, sql.ErrNoRows)
	}
	return kv.Entry{Key: key, Value: json.RawMessage(e.value), UpdatedAt: e.updatedAt}, nil
}
