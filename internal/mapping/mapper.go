package mapping

import (
	"errors"
	"fmt"

	"apicompat/internal/common"
	"apicompat/internal/diagnostic"
	"apicompat/internal/filter"
	"apicompat/internal/identity"
	"apicompat/internal/symbol"
)

// ErrNoSides is returned when Map is called without libraries.
var ErrNoSides = errors.New("at least one side is required")

// Mapper aligns symbol trees using a Filter.
type Mapper struct {
	filter            filter.Filter
	alwaysDiffMembers bool
}

// NewMapper creates a mapper. A nil filter includes everything.
func NewMapper(f filter.Filter, alwaysDiffMembers bool) *Mapper {
	if f == nil {
		f = filter.Intersection()
	}

	return &Mapper{filter: f, alwaysDiffMembers: alwaysDiffMembers}
}

// Map builds the aligned tree for libs; libs[0] is the baseline side.
func (m *Mapper) Map(libs ...*symbol.Library) (*Tree, error) {
	if len(libs) == 0 {
		return nil, ErrNoSides
	}

	tree := &Tree{Sides: len(libs), Names: make([]string, len(libs))}

	for i, lib := range libs {
		if lib == nil {
			return nil, fmt.Errorf("side %d: library is nil", i)
		}

		tree.Names[i] = lib.Name
	}

	b := &builder{mapper: m, tree: tree}

	perSide := make([][]*symbol.Symbol, len(libs))
	for i, lib := range libs {
		perSide[i] = lib.Namespaces
	}

	for _, g := range b.group(perSide, m.filter.IncludeNamespace) {
		ns := &NamespaceMapping{Mapping: g}
		ns.Types = b.types(ns, nil, childTypes(&ns.Mapping))
		tree.Namespaces = append(tree.Namespaces, ns)
	}

	return tree, nil
}

type builder struct {
	mapper *Mapper
	tree   *Tree
}

func (b *builder) types(ns *NamespaceMapping, parent *TypeMapping, perSide [][]*symbol.Symbol) []*TypeMapping {
	groups := b.group(perSide, b.mapper.filter.IncludeType)
	out := make([]*TypeMapping, 0, len(groups))

	for _, g := range groups {
		t := &TypeMapping{Mapping: g, Namespace: ns, Parent: parent}

		if !t.IsWholesale() || b.mapper.alwaysDiffMembers {
			t.NestedTypes = b.types(ns, t, childTypes(&t.Mapping))
			t.Members = b.members(t)
		}

		out = append(out, t)
	}

	return out
}

func (b *builder) members(t *TypeMapping) []*MemberMapping {
	perSide := make([][]*symbol.Symbol, t.Sides())
	for i := range perSide {
		if e := t.Element(i); e != nil {
			perSide[i] = e.Members()
		}
	}

	groups := b.group(perSide, b.mapper.filter.IncludeMember)
	out := make([]*MemberMapping, 0, len(groups))

	for _, g := range groups {
		out = append(out, &MemberMapping{Mapping: g, Type: t})
	}

	return out
}

// group aligns one level: included symbols of every side keyed by identity,
// one Mapping per distinct key, sorted by key.
func (b *builder) group(perSide [][]*symbol.Symbol, include func(*symbol.Symbol) bool) []Mapping {
	byKey := make(map[string]*Mapping)

	for side, syms := range perSide {
		for _, s := range syms {
			if !include(s) {
				continue
			}

			key := identity.GetID(s)

			g, ok := byKey[key]
			if !ok {
				mm := newMapping(key, len(perSide))
				g = &mm
				byKey[key] = g
			}

			if prev := g.set(side, s); prev != nil {
				b.duplicate(g, side, prev, s)
			}
		}
	}

	out := make([]Mapping, 0, len(byKey))
	for _, key := range common.SortedKeys(byKey) {
		out = append(out, *byKey[key])
	}

	return out
}

func (b *builder) duplicate(g *Mapping, side int, prev, next *symbol.Symbol) {
	msg := fmt.Sprintf("%s %q shadows %q: both have the same identity",
		next.Kind, identity.Signature(next), identity.Signature(prev))

	g.Diagnostics.AddWarning(diagnostic.CodeDuplicateIdentity, msg, g.Key, side)
	b.tree.Diagnostics.AddWarning(diagnostic.CodeDuplicateIdentity, msg, g.Key, side)
}

func childTypes(m *Mapping) [][]*symbol.Symbol {
	perSide := make([][]*symbol.Symbol, m.Sides())
	for i := range perSide {
		if e := m.Element(i); e != nil {
			perSide[i] = e.Types()
		}
	}

	return perSide
}
