package dsl

import (
	"context"
	"encoding/json"
	"strconv"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	eng "github.com/reoring/sortedskema/internal/engine"
	js "github.com/reoring/sortedskema/jsonschema"
)

// String returns a minimal Schema[string].
func String() sortedskema.Schema[string] { return stringSchema{} }

// Bool returns a minimal Schema[bool].
func Bool() sortedskema.Schema[bool] { return boolSchema{} }

// Int returns a Schema[int64] that accepts JSON integer numbers.
func Int() sortedskema.Schema[int64] { return intSchema{} }

// Any returns a Schema[any] that accepts any JSON-like value unchanged.
func Any() sortedskema.Schema[any] { return anySchema{} }

// NumberBuilder exposes chaining for the json.Number wire schema.
type NumberBuilder interface {
	sortedskema.Schema[json.Number]
	// CoerceFromString accepts numeric strings ("1.5") and canonicalizes them.
	CoerceFromString() NumberBuilder
}

// NumberJSON returns a number schema that keeps values as json.Number.
func NumberJSON() NumberBuilder { return &numberJSONSchema{} }

// ---- AnyAdapter helpers for registry-driven construction ----

// StringOf returns the string schema in erased AnyAdapter form.
func StringOf() AnyAdapter { return anyAdapterFromSchema[string](String()) }

// BoolOf returns the bool schema in erased AnyAdapter form.
func BoolOf() AnyAdapter { return anyAdapterFromSchema[bool](Bool()) }

// IntOf returns the int64 schema in erased AnyAdapter form.
func IntOf() AnyAdapter { return anyAdapterFromSchema[int64](Int()) }

// NumberOf returns the json.Number schema in erased AnyAdapter form.
func NumberOf() AnyAdapter { return anyAdapterFromSchema[json.Number](NumberJSON()) }

// AnyOf returns the pass-through schema in erased AnyAdapter form.
func AnyOf() AnyAdapter { return anyAdapterFromSchema[any](Any()) }

type stringSchema struct{}

type boolSchema struct{}

type intSchema struct{}

type anySchema struct{}

// numberJSONSchema implements NumberBuilder with optional string coercion.
type numberJSONSchema struct{ coerceFromString bool }

func (n *numberJSONSchema) CoerceFromString() NumberBuilder {
	n.coerceFromString = true
	return n
}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	// Normalize -> ValidateValue -> Refine
	ns, err := sortedskema.ApplyNormalize[string](ctx, s, stringSchema{})
	if err != nil {
		return "", err
	}
	s = ns
	if err := (stringSchema{}).ValidateValue(ctx, s); err != nil {
		return "", err
	}
	if err := sortedskema.ApplyRefine[string](ctx, s, stringSchema{}); err != nil {
		return "", err
	}
	return s, nil
}

func (stringSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[string], error) {
	s, err := (stringSchema{}).Parse(ctx, v)
	return sortedskema.Decoded[string]{Value: s, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (stringSchema) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (string, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return "", sortedskema.Issues{{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	if tok.Kind != eng.KindString {
		return "", sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	return tok.String, nil
}

func (stringSchema) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[string], error) {
	v, err := (stringSchema{}).ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[string]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	return nil
}

func (stringSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (stringSchema) Validate(ctx context.Context, v any) error {
	if err := (stringSchema{}).TypeCheck(ctx, v); err != nil {
		return err
	}
	return (stringSchema{}).RuleCheck(ctx, v)
}

func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }

func (stringSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	nb, err := sortedskema.ApplyNormalize[bool](ctx, b, boolSchema{})
	if err != nil {
		return false, err
	}
	b = nb
	if err := (boolSchema{}).ValidateValue(ctx, b); err != nil {
		return false, err
	}
	if err := sortedskema.ApplyRefine[bool](ctx, b, boolSchema{}); err != nil {
		return false, err
	}
	return b, nil
}

func (boolSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[bool], error) {
	b, err := (boolSchema{}).Parse(ctx, v)
	return sortedskema.Decoded[bool]{Value: b, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (boolSchema) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (bool, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return false, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	if tok.Kind != eng.KindBool {
		return false, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	return tok.Bool, nil
}

func (boolSchema) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[bool], error) {
	v, err := (boolSchema{}).ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[bool]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (boolSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(bool); !ok {
		return sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	return nil
}

func (boolSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (boolSchema) Validate(ctx context.Context, v any) error {
	if err := (boolSchema{}).TypeCheck(ctx, v); err != nil {
		return err
	}
	return (boolSchema{}).RuleCheck(ctx, v)
}

func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

func (numberJSONSchema) zeroNum() json.Number { return json.Number("") }

func (n *numberJSONSchema) Parse(ctx context.Context, v any) (json.Number, error) {
	switch t := v.(type) {
	case json.Number:
		num := t
		nn, err := sortedskema.ApplyNormalize[json.Number](ctx, num, n)
		if err != nil {
			return n.zeroNum(), err
		}
		num = nn
		if err := n.ValidateValue(ctx, num); err != nil {
			return n.zeroNum(), err
		}
		if err := sortedskema.ApplyRefine[json.Number](ctx, num, n); err != nil {
			return n.zeroNum(), err
		}
		return num, nil
	case float64:
		return json.Number(formatFloat(t)), nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case string:
		if n.coerceFromString {
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Cause: err}}
			}
			// Canonicalize via float64 formatting for consistency with float64 input.
			return json.Number(formatFloat(f)), nil
		}
		return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	default:
		return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
}

func (n *numberJSONSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[json.Number], error) {
	num, err := n.Parse(ctx, v)
	return sortedskema.Decoded[json.Number]{Value: num, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (n *numberJSONSchema) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (json.Number, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	switch tok.Kind {
	case eng.KindNumber:
		if src.NumberMode() == sortedskema.NumberFloat64 {
			// format float back to a canonical string to preserve the contract
			if f, perr := strconv.ParseFloat(tok.Number, 64); perr == nil {
				return json.Number(formatFloat(f)), nil
			}
		}
		return json.Number(tok.Number), nil
	case eng.KindString:
		if n.coerceFromString {
			f, perr := strconv.ParseFloat(tok.String, 64)
			if perr != nil {
				return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Cause: perr}}
			}
			return json.Number(formatFloat(f)), nil
		}
		return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	default:
		return n.zeroNum(), sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
}

func (n *numberJSONSchema) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[json.Number], error) {
	v, err := n.ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[json.Number]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (n *numberJSONSchema) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case json.Number, float64, int, int64:
		return nil
	case string:
		if n.coerceFromString {
			return nil
		}
		return sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	default:
		return sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
}

func (n *numberJSONSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (n *numberJSONSchema) Validate(ctx context.Context, v any) error {
	if err := n.TypeCheck(ctx, v); err != nil {
		return err
	}
	return n.RuleCheck(ctx, v)
}

func (n *numberJSONSchema) ValidateValue(ctx context.Context, v json.Number) error { return nil }

func (n *numberJSONSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

func (intSchema) Parse(ctx context.Context, v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case json.Number:
		i, err := strconv.ParseInt(string(t), 10, 64)
		if err != nil {
			return 0, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Cause: err}}
		}
		return i, nil
	case float64:
		i := int64(t)
		if float64(i) != t {
			return 0, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil), Hint: "expected integer"}}
		}
		return i, nil
	default:
		return 0, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
}

func (intSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[int64], error) {
	i, err := (intSchema{}).Parse(ctx, v)
	return sortedskema.Decoded[int64]{Value: i, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

// ---- streaming SPI ----
func (intSchema) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (int64, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	tok, err := engSrc.NextToken()
	if err != nil {
		return 0, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	if tok.Kind != eng.KindNumber {
		return 0, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
	return (intSchema{}).Parse(ctx, json.Number(tok.Number))
}

func (intSchema) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[int64], error) {
	v, err := (intSchema{}).ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[int64]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (intSchema) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case int, int64, json.Number, float64:
		return nil
	default:
		return sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: i18n.T(sortedskema.CodeInvalidType, nil)}}
	}
}

func (intSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (intSchema) Validate(ctx context.Context, v any) error {
	if err := (intSchema{}).TypeCheck(ctx, v); err != nil {
		return err
	}
	return (intSchema{}).RuleCheck(ctx, v)
}

func (intSchema) ValidateValue(ctx context.Context, v int64) error { return nil }

func (intSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

func (anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }

func (anySchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[any], error) {
	return sortedskema.Decoded[any]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, nil
}

// ---- streaming SPI ----
func (anySchema) ParseFromSource(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (any, error) {
	engSrc := sortedskema.EngineTokenSource(src)
	var v any
	var err error
	if src.NumberMode() == sortedskema.NumberFloat64 {
		v, err = eng.DecodeAnyFromSourceAsFloat64(engSrc)
	} else {
		v, err = eng.DecodeAnyFromSource(engSrc)
	}
	if err != nil {
		return nil, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}

func (anySchema) ParseFromSourceWithMeta(ctx context.Context, src sortedskema.Source, opt sortedskema.ParseOpt) (sortedskema.Decoded[any], error) {
	v, err := (anySchema{}).ParseFromSource(ctx, src, opt)
	return sortedskema.Decoded[any]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (anySchema) TypeCheck(ctx context.Context, v any) error       { return nil }
func (anySchema) RuleCheck(ctx context.Context, v any) error       { return nil }
func (anySchema) Validate(ctx context.Context, v any) error        { return nil }
func (anySchema) ValidateValue(ctx context.Context, v any) error   { return nil }
func (anySchema) JSONSchema() (*js.Schema, error)                  { return &js.Schema{}, nil }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
