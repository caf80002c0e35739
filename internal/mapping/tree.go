package mapping

import "apicompat/internal/diagnostic"

// Tree is the aligned mapping of N libraries.
type Tree struct {
	// Sides is the number of libraries that were mapped.
	Sides int
	// Names holds the library names by side index.
	Names []string
	// Namespaces are sorted by key.
	Namespaces []*NamespaceMapping
	// Diagnostics collects every node diagnostic.
	Diagnostics diagnostic.Diagnostics
}

// Walk visits nodes depth-first in pre-order. Returning false from fn skips
// the node's children.
func (t *Tree) Walk(fn func(Node) bool) {
	var visit func(Node)

	visit = func(n Node) {
		if !fn(n) {
			return
		}

		for _, c := range Children(n) {
			visit(c)
		}
	}

	for _, ns := range t.Namespaces {
		visit(ns)
	}
}

// Find returns the first node with the given key in traversal order, or nil.
func (t *Tree) Find(key string) Node {
	var found Node

	t.Walk(func(n Node) bool {
		if found != nil {
			return false
		}

		if n.Base().Key == key {
			found = n
			return false
		}

		return true
	})

	return found
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	count := 0

	t.Walk(func(Node) bool {
		count++
		return true
	})

	return count
}
