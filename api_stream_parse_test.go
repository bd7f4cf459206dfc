package sortedskema_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	g "github.com/reoring/sortedskema/dsl"
)

func TestStreamParse_SortedList_Success(t *testing.T) {
	ctx := context.Background()
	s := g.SortedListOf[int64](g.Int())

	r := strings.NewReader(`[3,1,2]`)
	l, err := sortedskema.StreamParse(ctx, s, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Slice(); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("slice=%v", got)
	}
}

func TestStreamParse_SortedList_ElementError(t *testing.T) {
	ctx := context.Background()
	s := g.SortedListOf[int64](g.Int())

	r := strings.NewReader(`[1,"oops",3]`)
	_, err := sortedskema.StreamParse(ctx, s, r)
	if err == nil {
		t.Fatalf("expected issues, got nil")
	}
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != "/1" {
		t.Fatalf("want path=/1, got %s", iss[0].Path)
	}
}

func TestStreamParse_MaxBytes_Truncated(t *testing.T) {
	ctx := context.Background()
	s := g.SortedListOf[int64](g.Int())

	r := strings.NewReader(`[1,2,3,4,5,6,7,8]`)
	_, err := sortedskema.StreamParse(ctx, s, r, sortedskema.ParseOpt{MaxBytes: 8})
	if err == nil {
		t.Fatalf("expected truncated error")
	}
	if iss, ok := sortedskema.AsIssues(err); ok {
		if len(iss) == 0 || iss[0].Code != sortedskema.CodeTruncated {
			t.Fatalf("want truncated, got: %v", iss)
		}
	} else {
		t.Fatalf("expected Issues, got: %v", err)
	}
}
