package codec_test

import (
	"context"
	"testing"
	"time"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/codec"
)

func TestTimeRFC3339_DecodeEncodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := codec.TimeRFC3339()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeRFC3339_DecodeRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	c := codec.TimeRFC3339()

	_, err := c.Decode(ctx, "not a time")
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", err)
	}
}

func TestTimeRFC3339_EncodePreserving_NullPresenceRejected(t *testing.T) {
	ctx := context.Background()
	c := codec.TimeRFC3339()

	dx := sortedskema.Decoded[time.Time]{
		Value:    time.Time{},
		Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceWasNull | sortedskema.PresenceSeen},
	}
	if _, err := c.EncodePreserving(ctx, dx); err == nil {
		t.Fatalf("expected error when PresenceWasNull is set")
	}
}

func TestTimeRFC3339_EncodePreserving_NotSeenRejected(t *testing.T) {
	ctx := context.Background()
	c := codec.TimeRFC3339()

	dx := sortedskema.Decoded[time.Time]{
		Value:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Presence: sortedskema.PresenceMap{"/": 0},
	}
	if _, err := c.EncodePreserving(ctx, dx); err == nil {
		t.Fatalf("expected required error when PresenceSeen is not set")
	}
}
