package sortedcontainers

import (
	"cmp"
	"encoding/json"
	"sort"
)

// SortedSet is a collection of unique elements kept in ascending order.
// Element equality is defined by the comparison function returning zero.
type SortedSet[E any] struct {
	compare func(a, b E) int
	items   []E
}

// NewSortedSet returns an empty set ordered by the natural order of E.
func NewSortedSet[E cmp.Ordered]() *SortedSet[E] {
	return NewSortedSetFunc[E](cmp.Compare[E])
}

// NewSortedSetFunc returns an empty set ordered by the given comparison.
func NewSortedSetFunc[E any](compare func(a, b E) int) *SortedSet[E] {
	return &SortedSet[E]{compare: compare}
}

// NewSortedSetAny returns an empty set of heterogeneous JSON-like values
// ordered by CompareAny.
func NewSortedSetAny() *SortedSet[any] {
	return NewSortedSetFunc[any](CompareAny)
}

func (s *SortedSet[E]) search(e E) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool { return s.compare(s.items[i], e) >= 0 })
	if i < len(s.items) && s.compare(s.items[i], e) == 0 {
		return i, true
	}
	return i, false
}

// Add inserts e and reports whether it was newly added.
func (s *SortedSet[E]) Add(e E) bool {
	i, found := s.search(e)
	if found {
		return false
	}
	s.items = append(s.items, e)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = e
	return true
}

// Contains reports whether e is present.
func (s *SortedSet[E]) Contains(e E) bool {
	_, found := s.search(e)
	return found
}

// Delete removes e and reports whether it was present.
func (s *SortedSet[E]) Delete(e E) bool {
	i, found := s.search(e)
	if !found {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Len returns the number of elements.
func (s *SortedSet[E]) Len() int { return len(s.items) }

// At returns the i-th element in ascending order.
func (s *SortedSet[E]) At(i int) E { return s.items[i] }

// Min returns the smallest element.
func (s *SortedSet[E]) Min() (E, bool) {
	if len(s.items) == 0 {
		var zero E
		return zero, false
	}
	return s.items[0], true
}

// Max returns the largest element.
func (s *SortedSet[E]) Max() (E, bool) {
	if len(s.items) == 0 {
		var zero E
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Slice returns the elements in ascending order as a fresh slice.
func (s *SortedSet[E]) Slice() []E {
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Ascending returns the elements in ascending order. It is equivalent to Slice.
func (s *SortedSet[E]) Ascending() []E { return s.Slice() }

// Descending returns the elements in descending order as a fresh slice.
func (s *SortedSet[E]) Descending() []E {
	out := make([]E, len(s.items))
	for i, e := range s.items {
		out[len(s.items)-1-i] = e
	}
	return out
}

// ForEach visits elements in ascending order until fn returns false.
func (s *SortedSet[E]) ForEach(fn func(e E) bool) {
	for _, e := range s.items {
		if !fn(e) {
			return
		}
	}
}

// MarshalJSON encodes the set as a JSON array in ascending order.
func (s *SortedSet[E]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// PlainSet converts a SortedSet into a built-in membership map, losing order.
func PlainSet[E comparable](s *SortedSet[E]) map[E]struct{} {
	out := make(map[E]struct{}, s.Len())
	s.ForEach(func(e E) bool {
		out[e] = struct{}{}
		return true
	})
	return out
}
