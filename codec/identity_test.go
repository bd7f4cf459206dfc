package codec_test

import (
	"context"
	"encoding/json"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/codec"
	"github.com/reoring/sortedskema/dsl"
)

func TestIdentity_String_Decode_Encode(t *testing.T) {
	ctx := context.Background()
	id := codec.Identity(dsl.String())

	dv, err := id.Decode(ctx, "asdf")
	if err != nil || dv != "asdf" {
		t.Fatalf("decode err=%v v=%q", err, dv)
	}
	ev, err := id.Encode(ctx, dv)
	if err != nil || ev != "asdf" {
		t.Fatalf("encode err=%v v=%q", err, ev)
	}
}

func TestIdentity_NumberJSON_Decode_Encode(t *testing.T) {
	ctx := context.Background()
	id := codec.Identity[json.Number](dsl.NumberJSON())

	n := json.Number("123.45")
	dv, err := id.Decode(ctx, n)
	if err != nil || dv != n {
		t.Fatalf("decode err=%v v=%v", err, dv)
	}
	ev, err := id.Encode(ctx, dv)
	if err != nil || ev != n {
		t.Fatalf("encode err=%v v=%v", err, ev)
	}
}

func TestIdentity_WithMeta_Decode_EncodePreserving(t *testing.T) {
	ctx := context.Background()
	id := codec.Identity(dsl.String())

	dm, err := id.DecodeWithMeta(ctx, "x")
	if err != nil || dm.Value != "x" {
		t.Fatalf("decodeWithMeta err=%v v=%v", err, dm.Value)
	}
	if dm.Presence == nil || dm.Presence["/"]&sortedskema.PresenceSeen == 0 {
		t.Fatalf("expected presence seen at root")
	}
	out, err := id.EncodePreserving(ctx, dm)
	if err != nil || out != "x" {
		t.Fatalf("encodePreserving err=%v v=%v", err, out)
	}
}
