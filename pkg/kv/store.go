// Package kv provides a bounded, thread-safe in-memory cache.
package kv

import "sync"

// Store is a thread-safe key-value store holding at most limit entries.
// When full, Set evicts the oldest inserted key.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	limit int
	data  map[K]V
	order []K
}

// New creates a store. A limit of zero or less means unbounded.
func New[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		limit: limit,
		data:  make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetOrSet returns the cached value for key, computing and storing it with
// fn on a miss. fn runs without the lock held.
func (s *Store[K, V]) GetOrSet(key K, fn func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}
	v := fn()
	s.Set(key, v)
	return v
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		s.order = append(s.order, key)
	}
	s.data[key] = value

	for s.limit > 0 && len(s.order) > s.limit {
		delete(s.data, s.order[0])
		s.order = s.order[1:]
	}
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.order = nil
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
