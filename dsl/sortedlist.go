package dsl

import (
	"cmp"
	"context"
	"strconv"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	eng "github.com/reoring/sortedskema/internal/engine"
	str "github.com/reoring/sortedskema/internal/stream"
	js "github.com/reoring/sortedskema/jsonschema"
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

// SortedListBuilder exposes chaining methods for sorted list schemas while
// implementing Schema[*sortedcontainers.SortedList[E]].
type SortedListBuilder[E any] interface {
	sortedskema.Schema[*sc.SortedList[E]]
	Min(n int) SortedListBuilder[E]
	Max(n int) SortedListBuilder[E]
}

// SortedListOf returns a schema producing an ascending list whose elements
// are validated by elem. Input order does not matter; the result is sorted.
//
// On the Parse path the builder accepts an existing SortedList, a SortedSet,
// or a slice. On the token-source path only a JSON array is accepted.
func SortedListOf[E cmp.Ordered](elem sortedskema.Schema[E]) SortedListBuilder[E] {
	return &sortedListSchema[E]{elem: elem, newList: sc.NewSortedList[E], minLen: -1, maxLen: -1}
}

// SortedListAny returns a sorted list schema over heterogeneous JSON-like
// values ordered by sortedcontainers.CompareAny. It backs the zero-parameter
// registry form.
func SortedListAny() SortedListBuilder[any] { return SortedListAnyOf(Any()) }

// SortedListAnyOf is like SortedListAny but validates elements with elem.
func SortedListAnyOf(elem sortedskema.Schema[any]) SortedListBuilder[any] {
	return &sortedListSchema[any]{elem: elem, newList: sc.NewSortedListAny, minLen: -1, maxLen: -1}
}

type sortedListSchema[E any] struct {
	elem    sortedskema.Schema[E]
	newList func() *sc.SortedList[E]
	minLen  int
	maxLen  int
}

// Min sets the minimum number of elements.
func (s *sortedListSchema[E]) Min(n int) SortedListBuilder[E] { s.minLen = n; return s }

// Max sets the maximum number of elements.
func (s *sortedListSchema[E]) Max(n int) SortedListBuilder[E] { s.maxLen = n; return s }

func (s *sortedListSchema[E]) alts() []shapeAlt[*sc.SortedList[E]] {
	return []shapeAlt[*sc.SortedList[E]]{
		{name: "sorted_list", apply: s.fromInstance},
		{name: "sorted_set", apply: s.fromSet},
		{name: "slice", apply: s.fromSlice},
	}
}

func (s *sortedListSchema[E]) fromInstance(ctx context.Context, v any) (*sc.SortedList[E], bool, error) {
	l, ok := v.(*sc.SortedList[E])
	if !ok {
		return nil, false, nil
	}
	if err := s.ValidateValue(ctx, l); err != nil {
		return nil, true, err
	}
	return l, true, nil
}

func (s *sortedListSchema[E]) fromSet(ctx context.Context, v any) (*sc.SortedList[E], bool, error) {
	set, ok := v.(*sc.SortedSet[E])
	if !ok {
		return nil, false, nil
	}
	out := s.newList()
	var iss sortedskema.Issues
	i := 0
	set.ForEach(func(e E) bool {
		if err := s.elem.ValidateValue(ctx, e); err != nil {
			iss = append(iss, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)...)
			i++
			return true
		}
		out.Add(e)
		i++
		return true
	})
	if len(iss) > 0 {
		return nil, true, iss
	}
	return out, true, nil
}

func (s *sortedListSchema[E]) fromSlice(ctx context.Context, v any) (*sc.SortedList[E], bool, error) {
	switch src := v.(type) {
	case []E:
		out := s.newList()
		for i, e := range src {
			if err := s.elem.ValidateValue(ctx, e); err != nil {
				return nil, true, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)
			}
			out.Add(e)
		}
		return out, true, nil
	case []any:
		out := s.newList()
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

func (s *sortedListSchema[E]) Parse(ctx context.Context, v any) (*sc.SortedList[E], error) {
	out, err := parseShapes(ctx, v, s.alts())
	if err != nil {
		return nil, err
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedList[E]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedList[E]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedListSchema[E]) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[*sc.SortedList[E]], error) {
	l, err := s.Parse(ctx, v)
	return sortedskema.Decoded[*sc.SortedList[E]]{Value: l, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI: the token-source path accepts only a JSON array ----

func (s *sortedListSchema[E]) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (*sc.SortedList[E], error) {
	elems, err := decodeArrayElements(sortedskema.EnforceSourceIfNeeded(src, opt))
	if err != nil {
		return nil, err
	}
	out := s.newList()
	for i, anyVal := range elems {
		e, perr := s.elem.Parse(ctx, anyVal)
		if perr != nil {
			return nil, sortedskema.PrefixIssues("/"+strconv.Itoa(i), perr)
		}
		out.Add(e)
	}
	if err := s.checkLen(out.Len()); err != nil {
		return nil, err
	}
	nn, err := sortedskema.ApplyNormalize[*sc.SortedList[E]](ctx, out, s)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[*sc.SortedList[E]](ctx, nn, s); err != nil {
		return nil, err
	}
	return nn, nil
}

func (s *sortedListSchema[E]) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[*sc.SortedList[E]], error) {
	l, err := s.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[*sc.SortedList[E]]{Value: l, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (s *sortedListSchema[E]) checkLen(n int) error {
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

func (s *sortedListSchema[E]) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case *sc.SortedList[E], *sc.SortedSet[E], []E, []any:
		return nil
	default:
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected sorted list, sorted set or array"}}
	}
}

func (s *sortedListSchema[E]) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *sortedListSchema[E]) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *sortedListSchema[E]) ValidateValue(ctx context.Context, v *sc.SortedList[E]) error {
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

func (s *sortedListSchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "array", Items: es}
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

// decodeArrayElements consumes a JSON array from the source and returns the
// raw element values. Anything other than an array is an invalid_type issue.
func decodeArrayElements(src sortedskema.Source) ([]any, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return nil, tokenIssue(err)
	}
	if tok.Kind != eng.KindBeginArray {
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected array"}}
	}
	var out []any
	for {
		t, err := engSrc.NextToken()
		if err != nil {
			return nil, tokenIssue(err)
		}
		if t.Kind == eng.KindEndArray {
			return out, nil
		}
		sub := str.NewPreloadedSource(engSrc, t)
		var anyVal any
		if src.NumberMode() == sortedskema.NumberFloat64 {
			anyVal, err = eng.DecodeAnyFromSourceAsFloat64(sub)
		} else {
			anyVal, err = eng.DecodeAnyFromSource(sub)
		}
		if err != nil {
			return nil, sortedskema.Issues{sortedskema.Issue{Path: "/" + strconv.Itoa(len(out)), Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
		}
		out = append(out, anyVal)
	}
}
