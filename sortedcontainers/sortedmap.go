// Package sortedcontainers provides mapping, list and set containers that keep
// their contents in sorted order at all times. Containers are built around a
// comparison function, with convenience constructors for cmp.Ordered element
// types and for heterogeneous JSON-like values ordered by CompareAny.
package sortedcontainers

import (
	"bytes"
	"cmp"
	"encoding/json"
	"sort"
)

// Pair couples a key with its value for pairwise construction and iteration.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// SortedMap is a mapping whose keys are kept in ascending order. Lookup,
// insert and delete are O(log n) on the key index plus O(n) slice shifting.
type SortedMap[K, V any] struct {
	compare func(a, b K) int
	keys    []K
	vals    []V
}

// NewSortedMap returns an empty map ordered by the natural order of K.
func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return NewSortedMapFunc[K, V](cmp.Compare[K])
}

// NewSortedMapFunc returns an empty map ordered by the given comparison.
func NewSortedMapFunc[K, V any](compare func(a, b K) int) *SortedMap[K, V] {
	return &SortedMap[K, V]{compare: compare}
}

// NewSortedMapAny returns an empty map with any-typed keys ordered by CompareAny.
func NewSortedMapAny[V any]() *SortedMap[any, V] {
	return NewSortedMapFunc[any, V](CompareAny)
}

func (m *SortedMap[K, V]) search(k K) (int, bool) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.compare(m.keys[i], k) >= 0 })
	if i < len(m.keys) && m.compare(m.keys[i], k) == 0 {
		return i, true
	}
	return i, false
}

// Set inserts or replaces the value for k.
func (m *SortedMap[K, V]) Set(k K, v V) {
	i, found := m.search(k)
	if found {
		m.vals[i] = v
		return
	}
	m.keys = append(m.keys, k)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = k
	m.vals = append(m.vals, v)
	copy(m.vals[i+1:], m.vals[i:])
	m.vals[i] = v
}

// Get returns the value stored for k.
func (m *SortedMap[K, V]) Get(k K) (V, bool) {
	if i, found := m.search(k); found {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *SortedMap[K, V]) Has(k K) bool {
	_, found := m.search(k)
	return found
}

// Delete removes k and reports whether it was present.
func (m *SortedMap[K, V]) Delete(k K) bool {
	i, found := m.search(k)
	if !found {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	return true
}

// Len returns the number of entries.
func (m *SortedMap[K, V]) Len() int { return len(m.keys) }

// At returns the i-th entry in key order.
func (m *SortedMap[K, V]) At(i int) (K, V) { return m.keys[i], m.vals[i] }

// Keys returns the keys in ascending order.
func (m *SortedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key order.
func (m *SortedMap[K, V]) Values() []V {
	out := make([]V, len(m.vals))
	copy(out, m.vals)
	return out
}

// Pairs returns the entries as key/value pairs in key order.
func (m *SortedMap[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], len(m.keys))
	for i, k := range m.keys {
		out[i] = Pair[K, V]{Key: k, Value: m.vals[i]}
	}
	return out
}

// ForEach visits entries in key order until fn returns false.
func (m *SortedMap[K, V]) ForEach(fn func(k K, v V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// MarshalJSON encodes the map as a JSON object with keys in ascending order.
// Keys that do not themselves encode to JSON strings are stringified.
func (m *SortedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if len(kb) > 0 && kb[0] == '"' {
			buf.Write(kb)
		} else {
			qb, err := json.Marshal(string(kb))
			if err != nil {
				return nil, err
			}
			buf.Write(qb)
		}
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PlainMap converts a SortedMap into a built-in map, losing order.
func PlainMap[K comparable, V any](m *SortedMap[K, V]) map[K]V {
	out := make(map[K]V, m.Len())
	m.ForEach(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return out
}
