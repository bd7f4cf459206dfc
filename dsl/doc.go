// Package dsl provides schema builders for sorted containers and the element
// schemas they compose.
//
// Container builders accept several runtime input shapes on the Parse path
// (an existing container, a built-in map or slice, key/value pairs) and a
// single canonical shape on the token-source path (JSON object for maps,
// JSON array for lists and sets). A registry maps container kind names to
// builders so integrations can construct schemas from configuration.
//
//	s := dsl.SortedMapOf[int64](dsl.Int())
//	m, err := s.Parse(ctx, map[string]any{"b": 2, "a": 1})
//	m.Keys() // ["a", "b"]
package dsl
