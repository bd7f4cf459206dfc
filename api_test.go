package sortedskema_test

import (
	"context"
	"testing"

	sortedskema "github.com/reoring/sortedskema"
	js "github.com/reoring/sortedskema/jsonschema"
)

// minimalSchema is a stub Schema that echoes input when it's a non-empty string.
type minimalSchema struct{}

func (minimalSchema) Parse(ctx context.Context, v any) (string, error) {
	s, _ := v.(string)
	if s == "" {
		return "", sortedskema.Issues{sortedskema.Issue{Code: sortedskema.CodeInvalidType, Path: "/", Message: "expected string"}}
	}
	return s, nil
}
func (minimalSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[string], error) {
	s, err := (minimalSchema{}).Parse(ctx, v)
	return sortedskema.Decoded[string]{Value: s, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}
func (minimalSchema) TypeCheck(ctx context.Context, v any) error        { return nil }
func (minimalSchema) RuleCheck(ctx context.Context, v any) error        { return nil }
func (minimalSchema) Validate(ctx context.Context, v any) error         { return nil }
func (minimalSchema) ValidateValue(ctx context.Context, v string) error { return nil }
func (minimalSchema) JSONSchema() (*js.Schema, error)                   { return &js.Schema{}, nil }

func TestParseFrom_DelegatesToSchema(t *testing.T) {
	s := minimalSchema{}
	_, err := sortedskema.ParseFrom[string](context.Background(), s, sortedskema.JSONBytes([]byte(`{}`)))
	if err == nil {
		t.Fatalf("expected error because the stub only accepts strings, got nil")
	}
}

func TestParseFrom_StringValue(t *testing.T) {
	s := minimalSchema{}
	v, err := sortedskema.ParseFrom[string](context.Background(), s, sortedskema.JSONBytes([]byte(`"hello"`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hello" {
		t.Fatalf("got %q", v)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := sortedskema.Issues{
		{Path: "/a", Code: sortedskema.CodeInvalidType},
		{Path: "/b", Code: sortedskema.CodeShapeMismatch},
		{Path: "/c", Code: sortedskema.CodeUniqueness},
		{Path: "/d", Code: sortedskema.CodeTooLong},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
}
