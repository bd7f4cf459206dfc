package sortedskema_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/codec"
	g "github.com/reoring/sortedskema/dsl"
)

func TestEncodeWithMode_Canonical(t *testing.T) {
	ctx := context.Background()
	c := codec.Identity[string](g.String())
	out, err := sortedskema.EncodeWithMode(ctx, c, "alice", sortedskema.EncodeCanonical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "alice" {
		t.Fatalf("want alice, got %q", out)
	}
}

func TestEncodeWithMode_PreserveRequiresPresence(t *testing.T) {
	ctx := context.Background()
	c := codec.Identity[string](g.String())
	_, err := sortedskema.EncodeWithMode(ctx, c, "alice", sortedskema.EncodePreserve)
	if !errors.Is(err, sortedskema.ErrEncodePreserveRequiresPresence) {
		t.Fatalf("expected ErrEncodePreserveRequiresPresence, got: %v", err)
	}
}

func TestEncodeWithDecoded_SortedSet_Preserve(t *testing.T) {
	ctx := context.Background()
	c := codec.SortedSet[string](g.String())

	dx, err := c.DecodeWithMeta(ctx, []string{"b", "a"})
	if err != nil {
		t.Fatalf("decode with meta err: %v", err)
	}
	out, err := sortedskema.EncodeWithDecoded(ctx, c, dx, sortedskema.EncodePreserve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, []string{"a", "b"}) {
		t.Fatalf("out=%v", out)
	}
}
