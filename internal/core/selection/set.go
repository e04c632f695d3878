// Package selection implements the row selection and expansion state machine
// shared by every catalog table. It has no UI dependencies so the transitions
// can be tested directly.
package selection

import "slices"

// Set is an unordered set of row ids. Insertion order is remembered only so
// that ids missing from the display order can still be reported
// deterministically.
type Set[K comparable] struct {
	seq   uint64
	items map[K]uint64
}

// NewSet returns a set holding ids.
func NewSet[K comparable](ids ...K) Set[K] {
	s := Set[K]{items: make(map[K]uint64, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// Has reports whether id is a member.
func (s Set[K]) Has(id K) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the number of members.
func (s Set[K]) Len() int {
	return len(s.items)
}

// Clone returns an independent copy of s.
func (s Set[K]) Clone() Set[K] {
	out := Set[K]{seq: s.seq, items: make(map[K]uint64, len(s.items))}
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

// Slice returns the members in insertion order.
func (s Set[K]) Slice() []K {
	out := make([]K, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b K) int {
		return cmpSeq(s.items[a], s.items[b])
	})
	return out
}

// Ordered returns the members following order first, then any members that
// order does not contain (for example rows removed by a filter) in insertion
// order.
func (s Set[K]) Ordered(order []K) []K {
	out := make([]K, 0, len(s.items))
	seen := make(map[K]struct{}, len(s.items))
	for _, id := range order {
		if _, dup := seen[id]; dup {
			continue
		}
		if s.Has(id) {
			out = append(out, id)
			seen[id] = struct{}{}
		}
	}
	if len(out) == len(s.items) {
		return out
	}
	for _, id := range s.Slice() {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set[K]) Equal(other Set[K]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.items {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func (s *Set[K]) add(id K) {
	if s.items == nil {
		s.items = make(map[K]uint64)
	}
	if _, ok := s.items[id]; ok {
		return
	}
	s.seq++
	s.items[id] = s.seq
}

func (s *Set[K]) remove(id K) {
	delete(s.items, id)
}

func cmpSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
