package dsl

import (
	"context"
	"strconv"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	js "github.com/reoring/sortedskema/jsonschema"
)

// ArrayBuilder exposes chaining methods for plain array schemas while implementing Schema[[]E].
type ArrayBuilder[E any] interface {
	sortedskema.Schema[[]E]
	Min(n int) ArrayBuilder[E]
	Max(n int) ArrayBuilder[E]
}

// Array returns an array schema with the given element schema. The result
// preserves input order; use SortedListOf for order-normalizing decode.
func Array[E any](elem sortedskema.Schema[E]) ArrayBuilder[E] {
	return &arraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

// ArrayOf adapts Array[E] to AnyAdapter for registry-driven construction.
func ArrayOf[E any](elem sortedskema.Schema[E]) AnyAdapter {
	return anyAdapterFromSchema[[]E](Array[E](elem))
}

type arraySchema[E any] struct {
	elem   sortedskema.Schema[E]
	minLen int
	maxLen int
}

// Min sets the minimum length.
func (a *arraySchema[E]) Min(n int) ArrayBuilder[E] { a.minLen = n; return a }

// Max sets the maximum length.
func (a *arraySchema[E]) Max(n int) ArrayBuilder[E] { a.maxLen = n; return a }

func (a *arraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	switch src := v.(type) {
	case []E:
		if err := a.ValidateValue(ctx, src); err != nil {
			return nil, err
		}
		return a.finish(ctx, src)
	case []any:
		res := make([]E, 0, len(src))
		for i := range src {
			ev, err := a.elem.Parse(ctx, src[i])
			if err != nil {
				return nil, sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)
			}
			res = append(res, ev)
		}
		if err := a.ValidateValue(ctx, res); err != nil {
			return nil, err
		}
		return a.finish(ctx, res)
	default:
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected array"}}
	}
}

func (a *arraySchema[E]) finish(ctx context.Context, v []E) ([]E, error) {
	nn, err := sortedskema.ApplyNormalize[[]E](ctx, v, a)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[[]E](ctx, nn, a); err != nil {
		return nil, err
	}
	return nn, nil
}

func (a *arraySchema[E]) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[[]E], error) {
	arr, err := a.Parse(ctx, v)
	return sortedskema.Decoded[[]E]{Value: arr, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (a *arraySchema[E]) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) ([]E, error) {
	elems, err := decodeArrayElements(sortedskema.EnforceSourceIfNeeded(src, opt))
	if err != nil {
		return nil, err
	}
	res := make([]E, 0, len(elems))
	for i, anyVal := range elems {
		ev, perr := a.elem.Parse(ctx, anyVal)
		if perr != nil {
			return nil, sortedskema.PrefixIssues("/"+strconv.Itoa(i), perr)
		}
		res = append(res, ev)
	}
	if err := a.ValidateValue(ctx, res); err != nil {
		return nil, err
	}
	return a.finish(ctx, res)
}

func (a *arraySchema[E]) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[[]E], error) {
	arr, err := a.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[[]E]{Value: arr, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (a *arraySchema[E]) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case []E, []any:
		return nil
	default:
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected array"}}
	}
}

func (a *arraySchema[E]) RuleCheck(ctx context.Context, v any) error {
	var n int
	switch t := v.(type) {
	case []E:
		n = len(t)
	case []any:
		n = len(t)
	default:
		return nil
	}
	var iss sortedskema.Issues
	if a.minLen >= 0 && n < a.minLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooShort, Message: i18n.T(sortedskema.CodeTooShort, nil), Hint: "array is shorter than min"})
	}
	if a.maxLen >= 0 && n > a.maxLen {
		iss = sortedskema.AppendIssues(iss, sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooLong, Message: i18n.T(sortedskema.CodeTooLong, nil), Hint: "array is longer than max"})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (a *arraySchema[E]) Validate(ctx context.Context, v any) error {
	if err := a.TypeCheck(ctx, v); err != nil {
		return err
	}
	return a.RuleCheck(ctx, v)
}

func (a *arraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	if a.minLen >= 0 && len(v) < a.minLen {
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooShort, Message: i18n.T(sortedskema.CodeTooShort, nil), Hint: "array is shorter than min"}}
	}
	if a.maxLen >= 0 && len(v) > a.maxLen {
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeTooLong, Message: i18n.T(sortedskema.CodeTooLong, nil), Hint: "array is longer than max"}}
	}
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			return sortedskema.PrefixIssues("/"+strconv.Itoa(i), err)
		}
	}
	return nil
}

func (a *arraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: es}
	if a.minLen >= 0 {
		n := a.minLen
		s.MinItems = &n
	}
	if a.maxLen >= 0 {
		n := a.maxLen
		s.MaxItems = &n
	}
	return s, nil
}
