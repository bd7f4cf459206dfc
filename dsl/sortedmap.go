package dsl

import (
	"context"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	eng "github.com/reoring/sortedskema/internal/engine"
	str "github.com/reoring/sortedskema/internal/stream"
	js "github.com/reoring/sortedskema/jsonschema"
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

// SortedMapBuilder exposes chaining methods for sorted map schemas while
// implementing Schema[*sortedcontainers.SortedMap[string, V]].
type SortedMapBuilder[V any] interface {
	sortedskema.Schema[*sc.SortedMap[string, V]]
	Min(n int) SortedMapBuilder[V]
	Max(n int) SortedMapBuilder[V]
}

// SortedMapOf returns a schema producing a key-ordered map whose values are
// validated by elem. Keys are JSON object property names, so they are strings.
//
// On the Parse path the builder accepts an existing SortedMap, a built-in
// map, or key/value pairs. On the token-source path only a JSON object is
// accepted.
func SortedMapOf[V any](elem sortedskema.Schema[V]) SortedMapBuilder[V] {
	return &sortedMapSchema[V]{elem: elem, minLen: -1, maxLen: -1}
}

// SortedMapAny returns a sorted map schema whose values pass through
// unvalidated. It backs the zero-parameter registry form.
func SortedMapAny() SortedMapBuilder[any] { return SortedMapOf[any](Any()) }

type sortedMapSchema[V any] struct {
	elem   sortedskema.Schema[V]
	minLen int
	maxLen int
}

// Min sets the minimum number of entries.
func (s *sortedMapSchema[V]) Min(n int) SortedMapBuilder[V] { s.minLen = n; return s }

// Max sets the maximum number of entries.
func (s *sortedMapSchema[V]) Max(n int) SortedMapBuilder[V] { s.maxLen = n; return s }

func (s *sortedMapSchema[V]) alts() []shapeAlt[*sc.SortedMap[string, V]] {
	return []shapeAlt[*sc.SortedMap[string, V]]{
		{name: "sorted_map", apply: s.fromInstance},
		{name: "map", apply: s.fromMap},
		{name: "pairs", apply: s.fromPairs},
	}
}

func (s *sortedMapSchema[V]) fromInstance(ctx context.Context, v any) (*sc.SortedMap[string, V], bool, error) {
	m, ok := v.(*sc.SortedMap[string, V])
	if !ok {
		return nil, false, nil
	}
	if err := s.ValidateValue(ctx, m); err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (s *sortedMapSchema[V]) fromMap(ctx context.Context, v any) (*sc.SortedMap[string, V], bool, error) {
	switch src := v.(type) {
	case map[string]V:
		out := sc.NewSortedMap[string, V]()
		for k, vv := range src {
			if err := s.elem.ValidateValue(ctx, vv); err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+k, err)
			}
			out.Set(k, vv)
		}
		return out, true, nil
	case map[string]any:
		out := sc.NewSortedMap[string, V]()
		for k, anyVal := range src {
			vv, err := s.elem.Parse(ctx, anyVal)
			if err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+k, err)
			}
			out.Set(k, vv)
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func (s *sortedMapSchema[V]) fromPairs(ctx context.Context, v any) (*sc.SortedMap[string, V], bool, error) {
	switch src := v.(type) {
	case []sc.Pair[string, V]:
		out := sc.NewSortedMap[string, V]()
		for _, p := range src {
			if err := s.elem.ValidateValue(ctx, p.Value); err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+p.Key, err)
			}
			out.Set(p.Key, p.Value)
		}
		return out, true, nil
	case []sc.Pair[string, any]:
		return s.parsePairs(ctx, src)
	case [][2]any:
		pairs, ok := pairsFromArrays(src)
		if !ok {
			return nil, false, nil
		}
		return s.parsePairs(ctx, pairs)
	case []any:
		pairs, ok := pairsFromSlice(src)
		if !ok {
			return nil, false, nil
		}
		return s.parsePairs(ctx, pairs)
	default:
		return nil, false, nil
	}
}

func (s *sortedMapSchema[V]) parsePairs(ctx context.Context, pairs []sc.Pair[string, any]) (*sc.SortedMap[string, V], bool, error) {
	out := sc.NewSortedMap[string, V]()
	for _, p := range pairs {
		vv, err := s.elem.Parse(ctx, p.Value)
		if err != nil {
			return nil, true, sortedskema.PrefixIssues("/"+p.Key, err)
		}
		// later pairs win, mirroring repeated assignment
		out.Set(p.Key, vv)
	}
	return out, true, nil
}

func (s *sortedMapSchema[V]) Parse(ctx context.Context, v any) (*sc.SortedMap[string, V], error) {
	out, err := parseShapes(ctx, v, s.alts())
	if err != nil {
		return nil, err
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedMap[string, V]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedMap[string, V]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedMapSchema[V]) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[*sc.SortedMap[string, V]], error) {
	m, err := s.Parse(ctx, v)
	return sortedskema.Decoded[*sc.SortedMap[string, V]]{Value: m, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI: the token-source path accepts only a JSON object ----

func (s *sortedMapSchema[V]) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (*sc.SortedMap[string, V], error) {
	src = sortedskema.EnforceSourceIfNeeded(src, opt)
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return nil, tokenIssue(err)
	}
	if tok.Kind != eng.KindBeginObject {
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected object"}}
	}
	out := sc.NewSortedMap[string, V]()
	for {
		t, err := engSrc.NextToken()
		if err != nil {
			return nil, tokenIssue(err)
		}
		if t.Kind == eng.KindEndObject {
			break
		}
		if t.Kind != eng.KindKey {
			return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeParseError, Message: "unexpected token in object"}}
		}
		k := t.String
		sub := str.NewSubtreeSource(engSrc)
		var anyVal any
		if src.NumberMode() == sortedskema.NumberFloat64 {
			anyVal, err = eng.DecodeAnyFromSourceAsFloat64(sub)
		} else {
			anyVal, err = eng.DecodeAnyFromSource(sub)
		}
		if err != nil {
			return nil, sortedskema.Issues{sortedskema.Issue{Path: "/" + k, Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
		}
		vv, perr := s.elem.Parse(ctx, anyVal)
		if perr != nil {
			return nil, sortedskema.PrefixIssues("/"+k, perr)
		}
		out.Set(k, vv)
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedMap[string, V]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedMap[string, V]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedMapSchema[V]) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[*sc.SortedMap[string, V]], error) {
	m, err := s.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[*sc.SortedMap[string, V]]{Value: m, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (s *sortedMapSchema[V]) checkLen(n int) error {
	var iss sortedskema.Issues
	if s.minLen >= 0 && n < s.minLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooShort, Message: i18n.T(sortedskema.CodeTooShort, nil), Hint: "fewer entries than min"})
	}
	if s.maxLen >= 0 && n > s.maxLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooLong, Message: i18n.T(sortedskema.CodeTooLong, nil), Hint: "more entries than max"})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *sortedMapSchema[V]) TypeCheck(ctx context.Context, v any) error {
	switch t := v.(type) {
	case *sc.SortedMap[string, V], map[string]V, map[string]any, []sc.Pair[string, V], []sc.Pair[string, any]:
		return nil
	case [][2]any:
		if _, ok := pairsFromArrays(t); ok {
			return nil
		}
	case []any:
		if _, ok := pairsFromSlice(t); ok {
			return nil
		}
	}
	return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected sorted map, object or pairs"}}
}

func (s *sortedMapSchema[V]) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *sortedMapSchema[V]) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *sortedMapSchema[V]) ValidateValue(ctx context.Context, v *sc.SortedMap[string, V]) error {
	if v == nil {
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	if err := s.checkLen(v.Len()); err != nil {
		return err
	}
	var iss sortedskema.Issues
	v.ForEach(func(k string, vv V) bool {
		if err := s.elem.ValidateValue(ctx, vv); err != nil {
			iss = append(iss, sortedskema.PrefixIssues("/"+k, err)...)
		}
		return true
	})
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *sortedMapSchema[V]) JSONSchema() (*js.Schema, error) {
	vs, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
