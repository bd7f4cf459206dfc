package dsl

import (
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

// pairsFromSlice recognizes the pairs shape inside a []any value: every
// element must be a two-element []any whose first entry is a string key.
// The whole slice must match for the shape to apply; a single non-pair
// element rejects the shape so another alternative can claim the value.
func pairsFromSlice(v []any) ([]sc.Pair[string, any], bool) {
	out := make([]sc.Pair[string, any], 0, len(v))
	for _, e := range v {
		p, ok := e.([]any)
		if !ok || len(p) != 2 {
			return nil, false
		}
		k, ok := p[0].(string)
		if !ok {
			return nil, false
		}
		out = append(out, sc.Pair[string, any]{Key: k, Value: p[1]})
	}
	return out, true
}

// pairsFromArrays recognizes the pairs shape inside a [][2]any value. The
// first entry of every pair must be a string key.
func pairsFromArrays(v [][2]any) ([]sc.Pair[string, any], bool) {
	out := make([]sc.Pair[string, any], 0, len(v))
	for _, p := range v {
		k, ok := p[0].(string)
		if !ok {
			return nil, false
		}
		out = append(out, sc.Pair[string, any]{Key: k, Value: p[1]})
	}
	return out, true
}
