package codec

import (
	"context"
	"time"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/dsl"
	js "github.com/reoring/sortedskema/jsonschema"
)

// TimeRFC3339 returns a Codec between RFC3339 strings on the wire and
// time.Time in the domain. Encode emits the canonical UTC RFC3339Nano form.
func TimeRFC3339() sortedskema.Codec[string, time.Time] {
	return &rfc3339Codec{in: dsl.String(), out: timeSchema{}}
}

type rfc3339Codec struct {
	in  sortedskema.Schema[string]
	out sortedskema.Schema[time.Time]
}

func (c *rfc3339Codec) In() sortedskema.Schema[string]     { return c.in }
func (c *rfc3339Codec) Out() sortedskema.Schema[time.Time] { return c.out }

func (c *rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidFormat, Message: "invalid RFC3339 time", Cause: err}}
	}
	if err := c.out.ValidateValue(ctx, t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (c *rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return "", err
	}
	s := b.UTC().Format(time.RFC3339Nano)
	if _, err := c.in.Parse(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

func (c *rfc3339Codec) DecodeWithMeta(ctx context.Context, a string) (sortedskema.Decoded[time.Time], error) {
	t, err := c.Decode(ctx, a)
	return sortedskema.Decoded[time.Time]{Value: t, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (c *rfc3339Codec) EncodePreserving(ctx context.Context, db sortedskema.Decoded[time.Time]) (string, error) {
	// A top-level scalar cannot carry null or absent through preserving encode.
	if db.Presence != nil {
		if p, ok := db.Presence["/"]; ok {
			if p&sortedskema.PresenceWasNull != 0 {
				return "", sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: "cannot encode null as RFC3339 string"}}
			}
			if p&sortedskema.PresenceSeen == 0 {
				return "", sortedskema.Issues{{Path: "/", Code: sortedskema.CodeRequired, Message: "missing value (preserving)"}}
			}
		}
	}
	return c.Encode(ctx, db.Value)
}

type timeSchema struct{}

func (timeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, sortedskema.Issues{{Path: "/", Code: sortedskema.CodeInvalidType, Message: "expected time.Time"}}
}

func (timeSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[time.Time], error) {
	t, err := (timeSchema{}).Parse(ctx, v)
	return sortedskema.Decoded[time.Time]{Value: t, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}
func (timeSchema) TypeCheck(ctx context.Context, v any) error           { return nil }
func (timeSchema) RuleCheck(ctx context.Context, v any) error           { return nil }
func (timeSchema) Validate(ctx context.Context, v any) error            { return nil }
func (timeSchema) ValidateValue(ctx context.Context, v time.Time) error { return nil }
func (timeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
