package sortedskema_test

import (
	"context"
	"errors"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	g "github.com/reoring/sortedskema/dsl"
)

// TestErrorModel_AsIssues_AndErrorsAs checks that schema errors surface as
// Issues through both the AsIssues helper and errors.As.
func TestErrorModel_AsIssues_AndErrorsAs(t *testing.T) {
	ctx := context.Background()
	s := g.SortedMapOf[int64](g.Int())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`{"a":"not a number"}`)))
	if err == nil {
		t.Fatalf("expected issues")
	}
	var iss sortedskema.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("expected errors.As to extract Issues, got: %v", err)
	}
	iss2, ok := sortedskema.AsIssues(err)
	if !ok || len(iss2) == 0 {
		t.Fatalf("expected AsIssues to extract Issues, got: %v", err)
	}
	if iss2[0].Path != "/a" {
		t.Fatalf("path=%s", iss2[0].Path)
	}
}

// TestErrorModel_IssueCarriesMessage checks the localized message is filled in.
func TestErrorModel_IssueCarriesMessage(t *testing.T) {
	ctx := context.Background()
	s := g.SortedSetOf[string](g.String())

	_, err := s.Parse(ctx, 42)
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got: %v", err)
	}
	if iss[0].Code != sortedskema.CodeShapeMismatch {
		t.Fatalf("code=%s", iss[0].Code)
	}
	if iss[0].Message == "" {
		t.Fatalf("expected a message on the issue")
	}
}

// TestErrorModel_FailFastOption makes sure the fail-fast option still yields
// an Issues error rather than a bare error.
func TestErrorModel_FailFastOption(t *testing.T) {
	ctx := context.Background()
	s := g.SortedMapOf[int64](g.Int())

	_, err := sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes([]byte(`{"a":"x","b":"y"}`)), sortedskema.ParseOpt{FailFast: true})
	iss, ok := sortedskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected fail-fast issues, got: %v", err)
	}
}
