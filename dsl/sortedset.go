package dsl

import (
	"cmp"
	"context"
	"strconv"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	js "github.com/reoring/sortedskema/jsonschema"
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

// SortedSetBuilder exposes chaining methods for sorted set schemas while
// implementing Schema[*sortedcontainers.SortedSet[E]].
type SortedSetBuilder[E any] interface {
	sortedskema.Schema[*sc.SortedSet[E]]
	Min(n int) SortedSetBuilder[E]
	Max(n int) SortedSetBuilder[E]
}

// SortedSetOf returns a schema producing an ascending set of unique elements
// validated by elem.
//
// On the Parse path the builder accepts an existing SortedSet, a membership
// map, or a slice; duplicate slice elements collapse silently, matching
// runtime set construction. On the token-source path only a JSON array is
// accepted and duplicates are rejected with a uniqueness issue, since a
// serialized set that repeats elements indicates corrupt data.
func SortedSetOf[E cmp.Ordered](elem sortedskema.Schema[E]) SortedSetBuilder[E] {
	return &sortedSetSchema[E]{elem: elem, newSet: sc.NewSortedSet[E], minLen: -1, maxLen: -1}
}

// SortedSetAny returns a sorted set schema over heterogeneous JSON-like
// values ordered by sortedcontainers.CompareAny. It backs the zero-parameter
// registry form.
func SortedSetAny() SortedSetBuilder[any] { return SortedSetAnyOf(Any()) }

// SortedSetAnyOf is like SortedSetAny but validates elements with elem.
func SortedSetAnyOf(elem sortedskema.Schema[any]) SortedSetBuilder[any] {
	return &sortedSetSchema[any]{elem: elem, newSet: sc.NewSortedSetAny, minLen: -1, maxLen: -1}
}

// E is constrained to comparable because the membership-map shape needs a map
// key; any satisfies it as a type argument for the heterogeneous variant.
type sortedSetSchema[E comparable] struct {
	elem   sortedskema.Schema[E]
	newSet func() *sc.SortedSet[E]
	minLen int
	maxLen int
}

// Min sets the minimum number of elements.
func (s *sortedSetSchema[E]) Min(n int) SortedSetBuilder[E] { s.minLen = n; return s }

// Max sets the maximum number of elements.
func (s *sortedSetSchema[E]) Max(n int) SortedSetBuilder[E] { s.maxLen = n; return s }

func (s *sortedSetSchema[E]) alts() []shapeAlt[*sc.SortedSet[E]] {
	return []shapeAlt[*sc.SortedSet[E]]{
		{name: "sorted_set", apply: s.fromInstance},
		{name: "membership_map", apply: s.fromMembership},
		{name: "slice", apply: s.fromSlice},
	}
}

func (s *sortedSetSchema[E]) fromInstance(ctx context.Context, v any) (*sc.SortedSet[E], bool, error) {
	set, ok := v.(*sc.SortedSet[E])
	if !ok {
		return nil, false, nil
	}
	if err := s.ValidateValue(ctx, set); err != nil {
		return nil, true, err
	}
	return set, true, nil
}

func (s *sortedSetSchema[E]) fromMembership(ctx context.Context, v any) (*sc.SortedSet[E], bool, error) {
	m, ok := v.(map[E]struct{})
	if !ok {
		return nil, false, nil
	}
	out := s.newSet()
	for e := range m {
		if err := s.elem.ValidateValue(ctx, e); err != nil {
			return nil, true, sortedskema.PrefixIssues("/", err)
		}
		out.Add(e)
	}
	return out, true, nil
}

func (s *sortedSetSchema[E]) fromSlice(ctx context.Context, v any) (*sc.SortedSet[E], bool, error) {
	switch src := v.(type) {
	case []E:
		out := s.newSet()
		for i, e := range src {
			if err := s.elem.ValidateValue(ctx, e); err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)
			}
			out.Add(e)
		}
		return out, true, nil
	case []any:
		out := s.newSet()
		for i, anyVal := range src {
			e, err := s.elem.Parse(ctx, anyVal)
			if err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)
			}
			out.Add(e)
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func (s *sortedSetSchema[E]) Parse(ctx context.Context, v any) (*sc.SortedSet[E], error) {
	out, err := parseShapes(ctx, v, s.alts())
	if err != nil {
		return nil, err
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedSet[E]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedSet[E]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedSetSchema[E]) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[*sc.SortedSet[E]], error) {
	set, err := s.Parse(ctx, v)
	return sortedskema.Decoded[*sc.SortedSet[E]]{Value: set, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI: the token-source path accepts only a JSON array ----

func (s *sortedSetSchema[E]) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (*sc.SortedSet[E], error) {
	elems, err := decodeArrayElements(sortedskema.EnforceSourceIfNeeded(src, opt))
	if err != nil {
		return nil, err
	}
	out := s.newSet()
	for i, anyVal := range elems {
		e, perr := s.elem.Parse(ctx, anyVal)
		if perr != nil {
			return nil, sortedskema.PrefixIssues("/"+strconv.Itoa(i), perr)
		}
		if !out.Add(e) {
			return nil, sortedskema.Issues{sortedskema.Issue{
				Path:    "/" + strconv.Itoa(i),
				Code:    sortedskema.CodeUniqueness,
				Message: i18n.T(sortedskema.CodeUniqueness, nil),
				Hint:    "serialized set repeats an element",
			}}
		}
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedSet[E]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedSet[E]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedSetSchema[E]) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[*sc.SortedSet[E]], error) {
	set, err := s.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[*sc.SortedSet[E]]{Value: set, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (s *sortedSetSchema[E]) checkLen(n int) error {
	var iss sortedskema.Issues
	if s.minLen >= 0 && n < s.minLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooShort, Message: i18n.T(sortedskema.CodeTooShort, nil), Hint: "fewer elements than min"})
	}
	if s.maxLen >= 0 && n > s.maxLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooLong, Message: i18n.T(sortedskema.CodeTooLong, nil), Hint: "more elements than max"})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *sortedSetSchema[E]) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case *sc.SortedSet[E], map[E]struct{}, []E, []any:
		return nil
	default:
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected sorted set, membership map or array"}}
	}
}

func (s *sortedSetSchema[E]) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *sortedSetSchema[E]) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *sortedSetSchema[E]) ValidateValue(ctx context.Context, v *sc.SortedSet[E]) error {
	if v == nil {
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	if err := s.checkLen(v.Len()); err != nil {
		return err
	}
	var iss sortedskema.Issues
	i := 0
	v.ForEach(func(e E) bool {
		if err := s.elem.ValidateValue(ctx, e); err != nil {
			iss = append(iss, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)...)
		}
		i++
		return true
	})
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *sortedSetSchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	unique := true
	out := &js.Schema{Type: "array", Items: es, UniqueItems: &unique}
	if s.minLen >= 0 {
		n := s.minLen
		out.MinItems = &n
	}
	if s.maxLen >= 0 {
		n := s.maxLen
		out.MaxItems = &n
	}
	return out, nil
}
