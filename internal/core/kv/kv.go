// Package kv is a small persistent key-value interface. The console uses it
// to remember view state (active tab, per-table sort and filter) between runs.
//
// Keys are namespaced as "namespace:key"; Scoped hands out a typed view of a
// single namespace.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is wrapped by Get and GetRaw when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// Namespaces written by the console.
const (
	NamespaceTables  = "tables"  // catalog table name -> sort and filter
	NamespaceConsole = "console" // console-wide settings such as the active tab
)

const separator = ":"

// Key joins namespace and key.
func Key(namespace, key string) string {
	return namespace + separator + key
}

// SplitKey is the inverse of Key. ok is false when full has no namespace.
func SplitKey(full string) (namespace, key string, ok bool) {
	return strings.Cut(full, separator)
}

// Entry is a stored value with its bookkeeping timestamps.
type Entry struct {
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Namespace returns the namespace part of the entry key, or "" when the key
// is not namespaced.
func (e Entry) Namespace() string {
	ns, _, ok := SplitKey(e.Key)
	if !ok {
		return ""
	}
	return ns
}

// KV is a persistent store of JSON-serializable values.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
	GetRaw(ctx context.Context, key string) (Entry, error)
}
