package codec

import (
	"cmp"
	"context"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/dsl"
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

// SortedMap returns a Codec between a plain built-in map on the wire and a
// SortedMap in the domain. Decode orders the entries; Encode flattens back to
// the plain map form.
func SortedMap[V any](elem sortedskema.Schema[V]) sortedskema.Codec[map[string]V, *sc.SortedMap[string, V]] {
	return &sortedMapCodec[V]{in: dsl.Map[V](elem), out: dsl.SortedMapOf[V](elem)}
}

type sortedMapCodec[V any] struct {
	in  sortedskema.Schema[map[string]V]
	out sortedskema.Schema[*sc.SortedMap[string, V]]
}

func (c *sortedMapCodec[V]) In() sortedskema.Schema[map[string]V]             { return c.in }
func (c *sortedMapCodec[V]) Out() sortedskema.Schema[*sc.SortedMap[string, V]] { return c.out }

func (c *sortedMapCodec[V]) Decode(ctx context.Context, a map[string]V) (*sc.SortedMap[string, V], error) {
	return c.out.Parse(ctx, a)
}

func (c *sortedMapCodec[V]) Encode(ctx context.Context, b *sc.SortedMap[string, V]) (map[string]V, error) {
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return nil, err
	}
	plain := sc.PlainMap(b)
	if err := c.in.ValidateValue(ctx, plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func (c *sortedMapCodec[V]) DecodeWithMeta(ctx context.Context, a map[string]V) (sortedskema.Decoded[*sc.SortedMap[string, V]], error) {
	m, err := c.Decode(ctx, a)
	return sortedskema.Decoded[*sc.SortedMap[string, V]]{Value: m, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (c *sortedMapCodec[V]) EncodePreserving(ctx context.Context, db sortedskema.Decoded[*sc.SortedMap[string, V]]) (map[string]V, error) {
	// The container holds every surviving entry, so preserving equals canonical.
	return c.Encode(ctx, db.Value)
}

// SortedList returns a Codec between a plain slice on the wire and a
// SortedList in the domain. Encode emits elements in ascending order.
func SortedList[E cmp.Ordered](elem sortedskema.Schema[E]) sortedskema.Codec[[]E, *sc.SortedList[E]] {
	return &sortedListCodec[E]{in: dsl.Array[E](elem), out: dsl.SortedListOf[E](elem)}
}

type sortedListCodec[E cmp.Ordered] struct {
	in  sortedskema.Schema[[]E]
	out sortedskema.Schema[*sc.SortedList[E]]
}

func (c *sortedListCodec[E]) In() sortedskema.Schema[[]E]                { return c.in }
func (c *sortedListCodec[E]) Out() sortedskema.Schema[*sc.SortedList[E]] { return c.out }

func (c *sortedListCodec[E]) Decode(ctx context.Context, a []E) (*sc.SortedList[E], error) {
	return c.out.Parse(ctx, a)
}

func (c *sortedListCodec[E]) Encode(ctx context.Context, b *sc.SortedList[E]) ([]E, error) {
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return nil, err
	}
	plain := b.Slice()
	if err := c.in.ValidateValue(ctx, plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func (c *sortedListCodec[E]) DecodeWithMeta(ctx context.Context, a []E) (sortedskema.Decoded[*sc.SortedList[E]], error) {
	l, err := c.Decode(ctx, a)
	return sortedskema.Decoded[*sc.SortedList[E]]{Value: l, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (c *sortedListCodec[E]) EncodePreserving(ctx context.Context, db sortedskema.Decoded[*sc.SortedList[E]]) ([]E, error) {
	return c.Encode(ctx, db.Value)
}

// SortedSet returns a Codec between a plain slice on the wire and a SortedSet
// in the domain. Decode collapses duplicate elements; Encode emits the unique
// elements in ascending order.
func SortedSet[E cmp.Ordered](elem sortedskema.Schema[E]) sortedskema.Codec[[]E, *sc.SortedSet[E]] {
	return &sortedSetCodec[E]{in: dsl.Array[E](elem), out: dsl.SortedSetOf[E](elem)}
}

type sortedSetCodec[E cmp.Ordered] struct {
	in  sortedskema.Schema[[]E]
	out sortedskema.Schema[*sc.SortedSet[E]]
}

func (c *sortedSetCodec[E]) In() sortedskema.Schema[[]E]               { return c.in }
func (c *sortedSetCodec[E]) Out() sortedskema.Schema[*sc.SortedSet[E]] { return c.out }

func (c *sortedSetCodec[E]) Decode(ctx context.Context, a []E) (*sc.SortedSet[E], error) {
	return c.out.Parse(ctx, a)
}

func (c *sortedSetCodec[E]) Encode(ctx context.Context, b *sc.SortedSet[E]) ([]E, error) {
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return nil, err
	}
	plain := b.Slice()
	if err := c.in.ValidateValue(ctx, plain); err != nil {
		return nil, err
	}
	return plain, nil
}

func (c *sortedSetCodec[E]) DecodeWithMeta(ctx context.Context, a []E) (sortedskema.Decoded[*sc.SortedSet[E]], error) {
	s, err := c.Decode(ctx, a)
	return sortedskema.Decoded[*sc.SortedSet[E]]{Value: s, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (c *sortedSetCodec[E]) EncodePreserving(ctx context.Context, db sortedskema.Decoded[*sc.SortedSet[E]]) ([]E, error) {
	return c.Encode(ctx, db.Value)
}
