// Package yaml adapts YAML documents to the token-source interchange path.
// Input is decoded with gopkg.in/yaml.v3, normalized to JSON-like values, and
// replayed as tokens so schemas process YAML exactly like JSON.
package yaml

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/sortedskema/internal/engine"
)

// NewBytes wraps a YAML byte slice into an engine.TokenSource.
// Decoding errors surface on the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return &replaySource{err: err}
	}
	return newReplay(normalize(v))
}

// NewReader wraps an io.Reader carrying YAML into an engine.TokenSource.
func NewReader(r io.Reader) eng.TokenSource {
	data, err := io.ReadAll(r)
	if err != nil {
		return &replaySource{err: err}
	}
	return NewBytes(data)
}

// normalize converts yaml.v3 output into the map[string]any / []any / scalar
// shape the engine expects. Non-string mapping keys are stringified.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// replaySource walks a normalized value tree and emits tokens. Mapping keys
// are emitted in ascending order so replay is deterministic.
type replaySource struct {
	toks []eng.Token
	pos  int
	err  error
}

func newReplay(v any) *replaySource {
	s := &replaySource{}
	s.emit(v)
	return s
}

func (s *replaySource) emit(v any) {
	switch t := v.(type) {
	case map[string]any:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.toks = append(s.toks, eng.Token{Kind: eng.KindKey, String: k, Offset: -1})
			s.emit(t[k])
		}
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndObject, Offset: -1})
	case []any:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, e := range t {
			s.emit(e)
		}
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndArray, Offset: -1})
	case string:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindString, String: t, Offset: -1})
	case bool:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBool, Bool: t, Offset: -1})
	case int:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: strconv.Itoa(t), Offset: -1})
	case int64:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(t, 10), Offset: -1})
	case uint64:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: strconv.FormatUint(t, 10), Offset: -1})
	case float64:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(t, 'g', -1, 64), Offset: -1})
	case nil:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNull, Offset: -1})
	default:
		// yaml.v3 should not produce other scalar kinds after normalize;
		// fall back to the string form to avoid dropping data.
		s.toks = append(s.toks, eng.Token{Kind: eng.KindString, String: fmt.Sprint(t), Offset: -1})
	}
}

func (s *replaySource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *replaySource) Location() int64 { return -1 }
