package sortedcontainers

import (
	"cmp"
	"encoding/json"
	"sort"
)

// SortedList is a sequence that keeps its elements in ascending order.
// Duplicate elements are allowed; equal elements keep insertion order
// relative to each other (new elements insert after existing equals).
type SortedList[E any] struct {
	compare func(a, b E) int
	items   []E
}

// NewSortedList returns an empty list ordered by the natural order of E.
func NewSortedList[E cmp.Ordered]() *SortedList[E] {
	return NewSortedListFunc[E](cmp.Compare[E])
}

// NewSortedListFunc returns an empty list ordered by the given comparison.
func NewSortedListFunc[E any](compare func(a, b E) int) *SortedList[E] {
	return &SortedList[E]{compare: compare}
}

// NewSortedListAny returns an empty list of heterogeneous JSON-like values
// ordered by CompareAny.
func NewSortedListAny() *SortedList[any] {
	return NewSortedListFunc[any](CompareAny)
}

// Add inserts e keeping the list sorted.
func (l *SortedList[E]) Add(e E) {
	// upper bound keeps equal elements stable
	i := sort.Search(len(l.items), func(i int) bool { return l.compare(l.items[i], e) > 0 })
	l.items = append(l.items, e)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = e
}

// AddAll inserts every element of es.
func (l *SortedList[E]) AddAll(es ...E) {
	for _, e := range es {
		l.Add(e)
	}
}

// Remove deletes one occurrence of e and reports whether it was present.
func (l *SortedList[E]) Remove(e E) bool {
	i := sort.Search(len(l.items), func(i int) bool { return l.compare(l.items[i], e) >= 0 })
	if i < len(l.items) && l.compare(l.items[i], e) == 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		return true
	}
	return false
}

// Contains reports whether at least one element equal to e is present.
func (l *SortedList[E]) Contains(e E) bool {
	i := sort.Search(len(l.items), func(i int) bool { return l.compare(l.items[i], e) >= 0 })
	return i < len(l.items) && l.compare(l.items[i], e) == 0
}

// Count returns the number of elements equal to e.
func (l *SortedList[E]) Count(e E) int {
	lo := sort.Search(len(l.items), func(i int) bool { return l.compare(l.items[i], e) >= 0 })
	hi := sort.Search(len(l.items), func(i int) bool { return l.compare(l.items[i], e) > 0 })
	return hi - lo
}

// Len returns the number of elements.
func (l *SortedList[E]) Len() int { return len(l.items) }

// At returns the i-th element in ascending order.
func (l *SortedList[E]) At(i int) E { return l.items[i] }

// Min returns the smallest element.
func (l *SortedList[E]) Min() (E, bool) {
	if len(l.items) == 0 {
		var zero E
		return zero, false
	}
	return l.items[0], true
}

// Max returns the largest element.
func (l *SortedList[E]) Max() (E, bool) {
	if len(l.items) == 0 {
		var zero E
		return zero, false
	}
	return l.items[len(l.items)-1], true
}

// Slice returns the elements in ascending order as a fresh slice.
func (l *SortedList[E]) Slice() []E {
	out := make([]E, len(l.items))
	copy(out, l.items)
	return out
}

// ForEach visits elements in ascending order until fn returns false.
func (l *SortedList[E]) ForEach(fn func(e E) bool) {
	for _, e := range l.items {
		if !fn(e) {
			return
		}
	}
}

// MarshalJSON encodes the list as a JSON array in ascending order.
func (l *SortedList[E]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}
