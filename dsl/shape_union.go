package dsl

import (
	"context"
	"errors"
	"strings"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	eng "github.com/reoring/sortedskema/internal/engine"
)

// shapeAlt is one accepted input shape for a container schema. apply reports
// whether the shape structurally matched; when it did, any returned error is
// final and later alternatives are not tried.
type shapeAlt[T any] struct {
	name  string
	apply func(ctx context.Context, v any) (T, bool, error)
}

// parseShapes tries alternatives in declaration order. The first structural
// match wins; element-level failures inside a matched shape surface as-is.
// When nothing matches, a single shape_mismatch issue lists the accepted
// shape names so callers can see what the builder would have taken.
func parseShapes[T any](ctx context.Context, v any, alts []shapeAlt[T]) (T, error) {
	for _, alt := range alts {
		out, matched, err := alt.apply(ctx, v)
		if !matched {
			continue
		}
		if err != nil {
			return out, err
		}
		return out, nil
	}
	var zero T
	names := make([]string, 0, len(alts))
	for _, alt := range alts {
		names = append(names, alt.name)
	}
	return zero, sortedskema.Issues{sortedskema.Issue{
		Path:    "/",
		Code:    sortedskema.CodeShapeMismatch,
		Message: i18n.T(sortedskema.CodeShapeMismatch, nil),
		Hint:    "accepted shapes: " + strings.Join(names, ", "),
		Params:  map[string]any{"shapes": names},
	}}
}

// tokenIssue converts a token-source error into Issues, keeping the code and
// path of enforcement issues (duplicate_key, truncated) instead of flattening
// them to parse_error.
func tokenIssue(err error) sortedskema.Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return sortedskema.Issues{sortedskema.Issue{Path: ie.Path, Code: ie.Code, Message: ie.Message}}
	}
	return sortedskema.Issues{sortedskema.Issue{Path: "/", Code: sortedskema.CodeParseError, Message: err.Error(), Cause: err}}
}
