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

func TestSortedList_ParseSortsSlice(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	l, err := s.Parse(ctx, []any{json.Number("3"), json.Number("1"), json.Number("2"), json.Number("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Slice(); !reflect.DeepEqual(got, []int64{1, 2, 2, 3}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedList_ParseTypedSlice(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[string](dsl.String())

	l, err := s.Parse(ctx, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Slice(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedList_ParseFromSortedSet(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	set := sc.NewSortedSet[int64]()
	set.Add(2)
	set.Add(1)
	l, err := s.Parse(ctx, set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Slice(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedList_ExistingInstancePassesThrough(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	in := sc.NewSortedList[int64]()
	in.AddAll(2, 1)
	out, err := s.Parse(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("expected the same instance back")
	}
}

func TestSortedList_ElementErrorCarriesIndexPath(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	_, err := s.Parse(ctx, []any{json.Number("1"), "nope"})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Path != "/1" || iss[0].Code != sortedskema.CodeInvalidType {
		t.Fatalf("issue=%+v", iss[0])
	}
}

func TestSortedList_ShapeMismatch(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	_, err := s.Parse(ctx, map[string]any{"not": "a list"})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeShapeMismatch {
		t.Fatalf("expected shape_mismatch, got %v", err)
	}
}

func TestSortedList_ParseFromJSONArray(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	l, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`[3,1,2]`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Slice(); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedList_TokenPathRejectsObject(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`{"a":1}`)))
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestSortedList_NestedElements(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[string](dsl.String())

	// nested arrays are not ordered element types for a string list
	_, err := s.Parse(ctx, []any{[]any{"x"}})
	if err == nil {
		t.Fatalf("expected element type error")
	}
}

func TestSortedListAny_MixedTypesUseCanonicalOrder(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListAny()

	l, err := s.Parse(ctx, []any{"s", json.Number("2"), true, nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := l.Slice()
	want := []any{nil, true, json.Number("2"), "s"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedList_MinMax(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int()).Max(1)

	_, err := s.Parse(ctx, []any{json.Number("1"), json.Number("2")})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeTooLong {
		t.Fatalf("expected too_long, got %v", err)
	}
}

func TestSortedList_MarshalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedListOf[int64](dsl.Int())

	l, err := s.Parse(ctx, []any{json.Number("2"), json.Number("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[1,2]` {
		t.Fatalf("json=%s", b)
	}
	l2, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes(b))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(l.Slice(), l2.Slice()) {
		t.Fatalf("round trip changed elements")
	}
}
