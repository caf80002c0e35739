package common

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Indices returns the positions of s for which keep reports true.
func Indices[S ~[]E, E any](s S, keep func(E) bool) []int {
	var out []int

	for i, e := range s {
		if keep(e) {
			out = append(out, i)
		}
	}

	return out
}
