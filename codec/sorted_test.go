package codec_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/reoring/sortedskema/codec"
	"github.com/reoring/sortedskema/dsl"
)

func TestSortedMapCodec_DecodeOrdersEntries(t *testing.T) {
	ctx := context.Background()
	c := codec.SortedMap[string](dsl.String())

	m, err := c.Decode(ctx, map[string]string{"b": "2", "a": "1"})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys=%v", got)
	}

	plain, err := c.Encode(ctx, m)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if !reflect.DeepEqual(plain, map[string]string{"a": "1", "b": "2"}) {
		t.Fatalf("plain=%v", plain)
	}
}

func TestSortedListCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := codec.SortedList[string](dsl.String())

	l, err := c.Decode(ctx, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	plain, err := c.Encode(ctx, l)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if !reflect.DeepEqual(plain, []string{"a", "b", "c"}) {
		t.Fatalf("plain=%v", plain)
	}
}

func TestSortedSetCodec_DecodeCollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	c := codec.SortedSet[string](dsl.String())

	s, err := c.Decode(ctx, []string{"b", "a", "b"})
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	plain, err := c.Encode(ctx, s)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if !reflect.DeepEqual(plain, []string{"a", "b"}) {
		t.Fatalf("plain=%v", plain)
	}
}

func TestSortedSetCodec_EncodePreservingMatchesCanonical(t *testing.T) {
	ctx := context.Background()
	c := codec.SortedSet[string](dsl.String())

	dx, err := c.DecodeWithMeta(ctx, []string{"b", "a"})
	if err != nil {
		t.Fatalf("decode with meta err: %v", err)
	}
	plain, err := c.EncodePreserving(ctx, dx)
	if err != nil {
		t.Fatalf("encode preserving err: %v", err)
	}
	if !reflect.DeepEqual(plain, []string{"a", "b"}) {
		t.Fatalf("plain=%v", plain)
	}
}
