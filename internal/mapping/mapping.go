package mapping

import (
	"apicompat/internal/common"
	"apicompat/internal/diagnostic"
	"apicompat/internal/symbol"
)

// Mapping is an aligned tuple of per-side symbol slots sharing one key.
type Mapping struct {
	// Key is the identity key shared by every non-nil slot.
	Key string
	// Diagnostics holds input problems found while building this node.
	Diagnostics diagnostic.Diagnostics

	elements []*symbol.Symbol
}

func newMapping(key string, sides int) Mapping {
	return Mapping{Key: key, elements: make([]*symbol.Symbol, sides)}
}

// Sides returns the number of slots.
func (m *Mapping) Sides() int {
	return len(m.elements)
}

// Element returns the symbol at side i, or nil when the side lacks it.
func (m *Mapping) Element(i int) *symbol.Symbol {
	if i < 0 || i >= len(m.elements) {
		return nil
	}

	return m.elements[i]
}

// Baseline returns the symbol at side 0.
func (m *Mapping) Baseline() *symbol.Symbol {
	return m.Element(0)
}

// Present returns the indices of the non-nil slots in ascending order.
func (m *Mapping) Present() []int {
	return common.Indices(m.elements, func(e *symbol.Symbol) bool { return e != nil })
}

// Absent returns the indices of the nil slots in ascending order.
func (m *Mapping) Absent() []int {
	return common.Indices(m.elements, func(e *symbol.Symbol) bool { return e == nil })
}

// IsWholesale reports whether the element exists on exactly one of several sides.
func (m *Mapping) IsWholesale() bool {
	return len(m.elements) > 1 && len(m.Present()) == 1
}

// Representative returns the first non-nil slot.
func (m *Mapping) Representative() *symbol.Symbol {
	for _, e := range m.elements {
		if e != nil {
			return e
		}
	}

	return nil
}

// Kind returns the symbol kind of the node.
func (m *Mapping) Kind() symbol.Kind {
	if r := m.Representative(); r != nil {
		return r.Kind
	}

	return symbol.KindNamespace
}

// Base returns the slot tuple shared by every node type.
func (m *Mapping) Base() *Mapping {
	return m
}

func (m *Mapping) set(side int, s *symbol.Symbol) (shadowed *symbol.Symbol) {
	shadowed = m.elements[side]
	m.elements[side] = s

	return shadowed
}

// Node is one of *NamespaceMapping, *TypeMapping or *MemberMapping.
type Node interface {
	Base() *Mapping
	node()
}

// NamespaceMapping aligns namespaces and owns their type mappings.
type NamespaceMapping struct {
	Mapping

	Types []*TypeMapping
}

// TypeMapping aligns types and owns nested type and member mappings.
type TypeMapping struct {
	Mapping

	Namespace   *NamespaceMapping
	Parent      *TypeMapping // enclosing type mapping for nested types
	NestedTypes []*TypeMapping
	Members     []*MemberMapping
}

// MemberMapping aligns methods, fields, properties and events.
type MemberMapping struct {
	Mapping

	Type *TypeMapping
}

func (*NamespaceMapping) node() {}
func (*TypeMapping) node()      {}
func (*MemberMapping) node()    {}

// Children returns the child nodes in traversal order: nested types, then members.
func (t *TypeMapping) Children() []Node {
	out := make([]Node, 0, len(t.NestedTypes)+len(t.Members))
	for _, n := range t.NestedTypes {
		out = append(out, n)
	}

	for _, m := range t.Members {
		out = append(out, m)
	}

	return out
}

// Children returns the namespace's type mappings.
func (n *NamespaceMapping) Children() []Node {
	out := make([]Node, 0, len(n.Types))
	for _, t := range n.Types {
		out = append(out, t)
	}

	return out
}

// Children returns the child nodes of any node; members have none.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *NamespaceMapping:
		return v.Children()
	case *TypeMapping:
		return v.Children()
	default:
		return nil
	}
}
