package dsl

import (
	"context"

	sortedskema "github.com/reoring/sortedskema"
	js "github.com/reoring/sortedskema/jsonschema"
)

// AnyAdapter adapts Schema[T] to an any-typed wrapper. Container builders in
// the kind registry take element schemas in this erased form so callers can
// assemble schemas without knowing element types at compile time.
type AnyAdapter struct {
	parse           func(context.Context, any) (any, error)
	validateValue   func(context.Context, any) error
	parseFromSource func(context.Context, sortedskema.Source, sortedskema.ParseOpt) (any, error)
	jsonSchema      func() (*js.Schema, error)
	orig            any
}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter.
func anyAdapterFromSchema[T any](s sortedskema.Schema[T]) AnyAdapter {
	ad := AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: "invalid element type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
		jsonSchema: s.JSONSchema,
		orig:       s,
	}

	type parseFromSourceLike[T any] interface {
		ParseFromSource(context.Context, sortedskema.Source, sortedskema.ParseOpt) (T, error)
	}
	if pf, ok := any(s).(parseFromSourceLike[T]); ok {
		ad.parseFromSource = func(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (any, error) {
			v, err := pf.ParseFromSource(ctx, src, opt)
			if err != nil {
				return nil, err
			}
			return any(v), nil
		}
	}

	return ad
}

// SchemaOf converts an arbitrary Schema[T] into an AnyAdapter helper.
func SchemaOf[T any](s sortedskema.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }

// Parse runs the wrapped schema against v.
func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

// ValidateValue validates an already-typed value with the wrapped schema.
func (ad AnyAdapter) ValidateValue(ctx context.Context, v any) error {
	if ad.validateValue == nil {
		return nil
	}
	return ad.validateValue(ctx, v)
}

// JSONSchema exports the wrapped schema.
func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// ParseFromSource runs the wrapped schema against a token source. Schemas
// without a streaming path fall back to decoding the document into memory
// first.
func (ad AnyAdapter) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (any, error) {
	if ad.parseFromSource != nil {
		return ad.parseFromSource(ctx, src, opt)
	}
	v, err := sortedskema.DecodeSourceToAny(src)
	if err != nil {
		return nil, err
	}
	return ad.Parse(ctx, v)
}

// Orig returns the original underlying Schema[T] used to create this adapter.
// It is intended for advanced integrations and may change.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Nullable wraps an AnyAdapter to accept nulls (JSON null) for both parse and
// validate. When the input value is nil, parsing succeeds and returns nil.
func Nullable(ad AnyAdapter) AnyAdapter {
	prevParse := ad.parse
	prevValidate := ad.validateValue
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if prevParse == nil {
			return v, nil
		}
		return prevParse(ctx, v)
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if v == nil {
			return nil
		}
		if prevValidate == nil {
			return nil
		}
		return prevValidate(ctx, v)
	}
	return out
}

// Nullable enables fluent chaining: dsl.StringOf().Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }
