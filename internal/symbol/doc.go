// Package symbol provides the in-memory model of a library's API surface.
//
// A side under comparison is a [Library]: a flat list of namespace symbols,
// each owning its types, which in turn own nested types and members.
// Ownership flows parent to child only; [Symbol.Container] is a non-owning
// back-reference wired by [Library.Link].
//
// Key types:
//   - Kind: closed set of symbol kinds (namespace, type, method, field, property, event)
//   - Visibility: accessibility of a type or member
//   - VisibilitySet: bitmask of allowed visibilities
//   - Symbol: one node of the tree
//   - Library: one side, with a type index for attribute resolution
//
// Trees are treated as immutable once linked. Fixture files (YAML, TOML or
// JSON) can be read with [LoadFile].
package symbol
