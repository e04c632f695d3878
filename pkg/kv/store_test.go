package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int](0)

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_EvictsOldest(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		keys     []string
		wantKeys []string
		gone     []string
	}{
		{name: "unbounded", limit: 0, keys: []string{"a", "b", "c"}, wantKeys: []string{"a", "b", "c"}},
		{name: "within limit", limit: 3, keys: []string{"a", "b", "c"}, wantKeys: []string{"a", "b", "c"}},
		{name: "over limit", limit: 2, keys: []string{"a", "b", "c"}, wantKeys: []string{"b", "c"}, gone: []string{"a"}},
		{name: "overwrite keeps position", limit: 2, keys: []string{"a", "b", "a", "c"}, wantKeys: []string{"b", "c"}, gone: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New[string, int](tt.limit)
			for i, k := range tt.keys {
				s.Set(k, i)
			}

			assert.Equal(t, len(tt.wantKeys), s.Len())
			for _, k := range tt.wantKeys {
				_, ok := s.Get(k)
				assert.True(t, ok, k)
			}
			for _, k := range tt.gone {
				_, ok := s.Get(k)
				assert.False(t, ok, k)
			}
		})
	}
}

func TestStore_GetOrSet(t *testing.T) {
	s := New[string, string](4)
	calls := 0
	render := func() string {
		calls++
		return "rendered"
	}

	assert.Equal(t, "rendered", s.GetOrSet("k", render))
	assert.Equal(t, "rendered", s.GetOrSet("k", render))
	assert.Equal(t, 1, calls)
}

func TestStore_DeleteAndClear(t *testing.T) {
	s := New[string, int](2)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Delete("a")
	s.Delete("missing")
	s.Set("c", 3)

	_, ok := s.Get("b")
	assert.True(t, ok, "b survives because a was deleted, not evicted")
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int](50)
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
			s.Get(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
