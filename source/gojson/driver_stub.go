//go:build !gojson

package gojson

import (
	"io"

	sortedskema "github.com/reoring/sortedskema"
	jsonsrc "github.com/reoring/sortedskema/source/json"
)

// Driver returns a stub driver description when the gojson tag is not enabled.
// It delegates to the encoding/json-based source directly to avoid recursion.
func Driver() sortedskema.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) sortedskema.Source {
	return sortedskema.SourceFromEngine(jsonsrc.NewReader(r), sortedskema.NumberJSONNumber)
}
func (stub) NewBytes(b []byte) sortedskema.Source {
	return sortedskema.SourceFromEngine(jsonsrc.NewBytes(b), sortedskema.NumberJSONNumber)
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
