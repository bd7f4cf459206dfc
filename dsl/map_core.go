package dsl

import (
	"context"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	eng "github.com/reoring/sortedskema/internal/engine"
	str "github.com/reoring/sortedskema/internal/stream"
	js "github.com/reoring/sortedskema/jsonschema"
)

// MapAny returns a minimal Schema[map[string]any] useful for passthrough targets or loose maps.
func MapAny() sortedskema.Schema[map[string]any] { return mapAnySchema{} }

type mapAnySchema struct{}

func (mapAnySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected object"}}
	}
	return m, nil
}
func (mapAnySchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[map[string]any], error) {
	m, err := (mapAnySchema{}).Parse(ctx, v)
	return sortedskema.Decoded[map[string]any]{Value: m, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}
func (mapAnySchema) TypeCheck(ctx context.Context, v any) error                { return nil }
func (mapAnySchema) RuleCheck(ctx context.Context, v any) error                { return nil }
func (mapAnySchema) Validate(ctx context.Context, v any) error                 { return nil }
func (mapAnySchema) ValidateValue(ctx context.Context, v map[string]any) error { return nil }
func (mapAnySchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "object", AdditionalProperties: true}, nil
}

// Map returns a schema for JSON objects where all properties are validated by
// elem. Unlike SortedMapOf it decodes into a built-in map and keeps no order;
// it is mainly useful as an element schema inside container builders.
func Map[V any](elem sortedskema.Schema[V]) sortedskema.Schema[map[string]V] {
	return mapSchema[V]{val: elem}
}

// MapOf adapts Map[V] to AnyAdapter for registry-driven construction.
func MapOf[V any](elem sortedskema.Schema[V]) AnyAdapter {
	return anyAdapterFromSchema[map[string]V](Map[V](elem))
}

type mapSchema[V any] struct{ val sortedskema.Schema[V] }

func (m mapSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	switch src := v.(type) {
	case map[string]V:
		for k, vv := range src {
			if err := m.val.ValidateValue(ctx, vv); err != nil {
				return nil, sortedskema.PrefixIssues("/"+k, err)
			}
		}
		return m.finish(ctx, src)
	case map[string]any:
		out := make(map[string]V, len(src))
		for k, anyVal := range src {
			vv, err := m.val.Parse(ctx, anyVal)
			if err != nil {
				return nil, sortedskema.PrefixIssues("/"+k, err)
			}
			out[k] = vv
		}
		return m.finish(ctx, out)
	default:
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected object"}}
	}
}

func (m mapSchema[V]) finish(ctx context.Context, v map[string]V) (map[string]V, error) {
	nn, err := sortedskema.ApplyNormalize[map[string]V](ctx, v, m)
	if err != nil {
		return nil, err
	}
	if err := sortedskema.ApplyRefine[map[string]V](ctx, nn, m); err != nil {
		return nil, err
	}
	return nn, nil
}

func (m mapSchema[V]) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[map[string]V], error) {
	mv, err := m.Parse(ctx, v)
	return sortedskema.Decoded[map[string]V]{Value: mv, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (m mapSchema[V]) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (map[string]V, error) {
	src = sortedskema.EnforceSourceIfNeeded(src, opt)
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return nil, tokenIssue(err)
	}
	if tok.Kind != eng.KindBeginObject {
		return nil, sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected object"}}
	}
	out := make(map[string]V)
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
		vv, perr := m.val.Parse(ctx, anyVal)
		if perr != nil {
			return nil, sortedskema.PrefixIssues("/"+k, perr)
		}
		out[k] = vv
	}
	return m.finish(ctx, out)
}

func (m mapSchema[V]) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[map[string]V], error) {
	mv, err := m.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[map[string]V]{Value: mv, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (m mapSchema[V]) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case map[string]V, map[string]any:
		return nil
	default:
		return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected object"}}
	}
}

func (m mapSchema[V]) RuleCheck(ctx context.Context, v any) error { return nil }

func (m mapSchema[V]) Validate(ctx context.Context, v any) error {
	if err := m.TypeCheck(ctx, v); err != nil {
		return err
	}
	return m.RuleCheck(ctx, v)
}

func (m mapSchema[V]) ValidateValue(ctx context.Context, v map[string]V) error {
	for k, vv := range v {
		if err := m.val.ValidateValue(ctx, vv); err != nil {
			return sortedskema.PrefixIssues("/"+k, err)
		}
	}
	return nil
}

func (m mapSchema[V]) JSONSchema() (*js.Schema, error) {
	vs, err := m.val.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
