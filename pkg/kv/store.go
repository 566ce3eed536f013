// Package kv is a mutex-guarded generic map for in-process bookkeeping,
// such as the set of ringing alerts and the in-memory KV backend.
package kv

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Store is a map safe for concurrent use. The zero value is not usable;
// call New.
type Store[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{m: map[K]V{}}
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *Store[K, V]) Set(key K, v V) {
	s.mu.Lock()
	s.m[key] = v
	s.mu.Unlock()
}

func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Keys returns the keys in no particular order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Keys(s.m))
}

// SetIfAbsent stores v only when key is unset and reports whether it did.
func (s *Store[K, V]) SetIfAbsent(key K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[key]; exists {
		return false
	}
	s.m[key] = v
	return true
}

// Pop deletes key and returns the value it held.
func (s *Store[K, V]) Pop(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	delete(s.m, key)
	return v, ok
}

// Drain empties the store and returns what it held.
func (s *Store[K, V]) Drain() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.m
	s.m = map[K]V{}
	return out
}

// SortedKeys returns the keys of s in ascending order.
func SortedKeys[K cmp.Ordered, V any](s *Store[K, V]) []K {
	keys := s.Keys()
	slices.Sort(keys)
	return keys
}
