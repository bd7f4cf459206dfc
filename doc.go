package sortedskema

// Package sortedskema provides:
//
// - Type-safe validation and transformation based on Schema/Codec (Parse/Validate/Decode/Encode)
// - Schema builders for sorted containers (key-ordered maps, sorted lists, sorted sets)
//   that accept several runtime input shapes and a single canonical interchange shape
// - A stable error model via Issues (JSON Pointer, code, message)
// - Metadata for Presence collection and preserve-encoding through WithMeta APIs
// - Streaming validation via Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place container types under sortedcontainers/, the DSL under dsl/, codecs under codec/,
//   and the CLI under cmd/sortedskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := dsl.SortedMapOf[int64](dsl.Int())
//  m, err := s.Parse(ctx, map[string]any{"b": 2, "a": 1})
//  m, err = sortedskema.ParseFrom(ctx, s, sortedskema.JSONBytes(data))
//
//  wire, err := codec.SortedMap[int64](dsl.Int()).Encode(ctx, m)
//
