// Package codec provides bidirectional wire/domain transformations built on
// top of Schema values. The sorted-container codecs decode plain JSON shapes
// into ordered containers and encode them back to their plain form.
package codec

import (
	"context"

	sortedskema "github.com/reoring/sortedskema"
)

// Identity returns a Codec[T,T] whose In and Out sides are the same schema.
// Decode and Encode only validate; no conversion happens.
func Identity[T any](s sortedskema.Schema[T]) sortedskema.Codec[T, T] {
	return &identityCodec[T]{schema: s}
}

type identityCodec[T any] struct {
	schema sortedskema.Schema[T]
}

func (c *identityCodec[T]) In() sortedskema.Schema[T]  { return c.schema }
func (c *identityCodec[T]) Out() sortedskema.Schema[T] { return c.schema }

func (c *identityCodec[T]) Decode(ctx context.Context, a T) (T, error) {
	if err := c.schema.ValidateValue(ctx, a); err != nil {
		var zero T
		return zero, err
	}
	return a, nil
}

func (c *identityCodec[T]) Encode(ctx context.Context, b T) (T, error) {
	if err := c.schema.ValidateValue(ctx, b); err != nil {
		var zero T
		return zero, err
	}
	return b, nil
}

func (c *identityCodec[T]) DecodeWithMeta(ctx context.Context, a T) (sortedskema.Decoded[T], error) {
	v, err := c.Decode(ctx, a)
	return sortedskema.Decoded[T]{Value: v, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (c *identityCodec[T]) EncodePreserving(ctx context.Context, db sortedskema.Decoded[T]) (T, error) {
	// Identity carries no structural presence; preserving equals canonical.
	return c.Encode(ctx, db.Value)
}
