package kv

import "context"

// TypedKV provides type-safe access to a KV store for a specific type T.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
// An empty namespace leaves keys untouched.
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &TypedKV[T]{
		store:  store,
		prefix: prefix,
	}
}

// Get retrieves and deserializes a value by key.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	if err := t.store.Get(ctx, t.prefix+key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Lookup is Get with a missing key reported as ok == false instead of an
// error. Other failures, including undecodable values, are returned.
func (t *TypedKV[T]) Lookup(ctx context.Context, key string) (v T, ok bool, err error) {
	v, err = t.Get(ctx, key)
	switch {
	case err == nil:
		return v, true, nil
	case IsNotFound(err):
		var zero T
		return zero, false, nil
	default:
		var zero T
		return zero, false, err
	}
}

// Set stores a value.
func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	return t.store.Set(ctx, t.prefix+key, value)
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}

// Has returns whether a key exists.
func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.prefix+key)
}

// Key returns the fully qualified key stored in the underlying KV.
func (t *TypedKV[T]) Key(key string) string {
	return t.prefix + key
}
