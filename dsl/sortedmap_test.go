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

func TestSortedMap_ParseFromBuiltinMap(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	m, err := s.Parse(ctx, map[string]any{"b": json.Number("2"), "a": json.Number("1"), "c": json.Number("3")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("keys=%v", got)
	}
	if v, ok := m.Get("b"); !ok || v != 2 {
		t.Fatalf("get b=%v,%v", v, ok)
	}
}

func TestSortedMap_ParseFromTypedMap(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[string](dsl.String())

	m, err := s.Parse(ctx, map[string]string{"z": "last", "a": "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "z"}) {
		t.Fatalf("keys=%v", got)
	}
}

func TestSortedMap_ParseFromPairs(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[string](dsl.String())

	pairs := []sc.Pair[string, string]{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}
	m, err := s.Parse(ctx, pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys=%v", got)
	}

	// generic pair slice: later pairs win on duplicate keys
	m2, err := s.Parse(ctx, []any{
		[]any{"k", "one"},
		[]any{"k", "two"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := m2.Get("k"); v != "two" {
		t.Fatalf("expected later pair to win, got %q", v)
	}

	m3, err := s.Parse(ctx, [][2]any{{"b", "2"}, {"a", "1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m3.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys=%v", got)
	}
}

func TestSortedMap_ParseExistingInstancePassesThrough(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[string](dsl.String())

	in := sc.NewSortedMap[string, string]()
	in.Set("a", "x")
	out, err := s.Parse(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("expected the same instance back")
	}
}

func TestSortedMap_ShapeMismatch(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[string](dsl.String())

	_, err := s.Parse(ctx, 42)
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected a single issue, got %v", err)
	}
	if iss[0].Code != sortedskema.CodeShapeMismatch {
		t.Fatalf("code=%s", iss[0].Code)
	}
	if _, ok := iss[0].Params["shapes"]; !ok {
		t.Fatalf("expected accepted shapes in params, got %v", iss[0].Params)
	}
}

func TestSortedMap_ElementErrorCarriesKeyPath(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	_, err := s.Parse(ctx, map[string]any{"ok": json.Number("1"), "bad": "nope"})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Path != "/bad" {
		t.Fatalf("path=%s", iss[0].Path)
	}
	if iss[0].Code != sortedskema.CodeInvalidType {
		t.Fatalf("code=%s", iss[0].Code)
	}
}

func TestSortedMap_ParseFromJSONObject(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	m, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`{"b":2,"a":1}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys=%v", got)
	}
}

func TestSortedMap_TokenPathRejectsArray(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	// the token-source path takes only the canonical object shape, even though
	// Parse would accept pairs
	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`[["a",1]]`)))
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestSortedMap_TokenPathDuplicateKeyStrictness(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	opt := sortedskema.ParseOpt{Strictness: sortedskema.Strictness{OnDuplicateKey: sortedskema.Error}}
	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`{"a":1,"a":2}`)), opt)
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
	if iss[0].Path != "/a" {
		t.Fatalf("path=%s", iss[0].Path)
	}
}

func TestSortedMap_MinMaxEntries(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[string](dsl.String()).Min(2)

	_, err := s.Parse(ctx, map[string]any{"only": "one"})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeTooShort {
		t.Fatalf("expected too_short, got %v", err)
	}
}

func TestSortedMap_JSONSchemaExport(t *testing.T) {
	s := dsl.SortedMapOf[int64](dsl.Int())
	js, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if js.Type != "object" || js.AdditionalProperties == nil {
		t.Fatalf("schema=%+v", js)
	}
}

func TestSortedMap_MarshalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	m, err := s.Parse(ctx, map[string]any{"b": json.Number("2"), "a": json.Number("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":1,"b":2}` {
		t.Fatalf("json=%s", b)
	}
	m2, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes(b))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(m.Keys(), m2.Keys()) {
		t.Fatalf("round trip changed keys: %v vs %v", m.Keys(), m2.Keys())
	}
}
