// Package diagnostic provides structured, non-fatal findings about the
// inputs of a comparison.
//
// Diagnostics never stop a run. They carry the identity key of the affected
// element and the index of the side that produced them, for example when
// two symbols on one side normalize to the same identity key and the later
// one shadows the earlier.
package diagnostic
