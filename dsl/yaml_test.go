package dsl_test

import (
	"context"
	"reflect"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/dsl"
)

func TestSortedMap_ParseFromYAML(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	src := sortedskema.YAMLBytes([]byte("b: 2\na: 1\n"))
	m, err := sortedskema.ParseFrom(ctx, s, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys=%v", got)
	}
	if v, _ := m.Get("b"); v != 2 {
		t.Fatalf("b=%v", v)
	}
}

func TestSortedSet_ParseFromYAMLSequence(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	set, err := sortedskema.ParseFrom(ctx, s, sortedskema.YAMLBytes([]byte("- b\n- a\n")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set.Slice(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestSortedSet_YAMLDuplicatesRejected(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedSetOf[string](dsl.String())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.YAMLBytes([]byte("- a\n- a\n")))
	iss, ok := sortedskema.AsIssues(err)
	if !ok || iss[0].Code != sortedskema.CodeUniqueness {
		t.Fatalf("expected uniqueness, got %v", err)
	}
}

func TestYAML_InvalidDocumentSurfacesParseError(t *testing.T) {
	ctx := context.Background()
	s := dsl.SortedMapOf[int64](dsl.Int())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.YAMLBytes([]byte(":\n\t- broken")))
	if err == nil {
		t.Fatalf("expected an error")
	}
}
