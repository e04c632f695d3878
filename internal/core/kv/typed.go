package kv

import (
	"context"
)

// TypedKV provides type-safe access to one namespace of a KV store.
type TypedKV[T any] struct {
	store     KV
	namespace string
}

// Scoped returns a TypedKV[T] over the keys of namespace.
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	return &TypedKV[T]{
		store:     store,
		namespace: namespace,
	}
}

// Keys returns the keys stored in the namespace, without the namespace.
func (t *TypedKV[T]) Keys(ctx context.Context) ([]string, error) {
	all, err := t.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, full := range all {
		if ns, key, ok := SplitKey(full); ok && ns == t.namespace {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Get retrieves and deserializes a value by key.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	if err := t.store.Get(ctx, Key(t.namespace, key), &v); err != nil {
		return v, err
	}
	return v, nil
}

// GetOr returns the stored value, or fallback when the key is missing or
// unreadable.
func (t *TypedKV[T]) GetOr(ctx context.Context, key string, fallback T) T {
	v, err := t.Get(ctx, key)
	if err != nil {
		return fallback
	}
	return v
}

// Set stores a value.
func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	return t.store.Set(ctx, Key(t.namespace, key), value)
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, Key(t.namespace, key))
}

// Has returns whether a key exists.
func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, Key(t.namespace, key))
}
