package dsl_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/dsl"
	sc "github.com/reoring/sortedskema/sortedcontainers"
)

func TestSortedSet_ParseCollapsesDuplicatesOnNativePath(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[int64](dsl.Int())

	set, err := s.Parse(ctx, []any{json.Number("2"), json.Number("1"), json.Number("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Slice(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedSet_ParseFromMembershipMap(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	set, err := s.Parse(ctx, map[string]struct{}{"b": {}, "a": {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Slice(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedSet_ExistingInstancePassesThrough(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	in := sc.NewSortedSet[string]()
	in.Add("x")
	out, err := s.Parse(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("expected the same instance back")
	}
}

func TestSortedSet_TokenPathRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[int64](dsl.Int())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`[1,2,1]`)))
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected a single issue, got %v", err)
	}
	if iss[0].Code != sortedskema.CodeUniqueness {
		t.Fatalf("code=%s", iss[0].Code)
	}
	if iss[0].Path != "/2" {
		t.Fatalf("path=%s", iss[0].Path)
	}
}

func TestSortedSet_ParseFromJSONArray(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	set, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`["b","a"]`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Slice(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedSet_ShapeMismatch(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	_, err := s.Parse(ctx, "not a set")
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeShapeMismatch {
		t.Fatalf("expected shape_mismatch, got %v", err)
	}
}

func TestSortedSet_ElementErrorCarriesIndexPath(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[int64](dsl.Int())

	_, err := s.Parse(ctx, []any{json.Number("1"), false})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Path != "/1" || iss[0].Code != sortedskema.CodeInvalidType {
		t.Fatalf("issue=%v", err)
	}
}

func TestSortedSet_JSONSchemaDeclaresUniqueItems(t *testing.T) {
	s := dsl.SortedSetOf[string](dsl.String())
	js, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if js.Type != "array" || js.UniqueItems == nil || !*js.UniqueItems {
		t.Fatalf("schema=%+v", js)
	}
}

func TestSortedSet_MarshalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	set, err := s.Parse(ctx, []any{"b", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["a","b"]` {
		t.Fatalf("json=%s", b)
	}
	set2, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes(b))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(set.Slice(), set2.Slice()) {
		t.Fatalf("round trip changed elements")
	}
}

func TestSortedSetAny_CanonicalOrderAcrossTypes(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetAny()

	set, err := s.Parse(ctx, []any{"x", json.Number("1"), nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := set.Slice()
	want := []any{nil, json.Number("1"), "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slice=%v", got)
	}
}
