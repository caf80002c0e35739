package rules

import (
	"fmt"

	"apicompat/internal/identity"
	"apicompat/internal/mapping"
	"apicompat/internal/symbol"
)

// TypeMustExist reports namespaces and types present on the baseline but
// missing on another side.
type TypeMustExist struct{}

func (TypeMustExist) Metadata() Metadata {
	return Metadata{
		Name:        "TypeMustExist",
		Description: "namespaces and types of the baseline exist on every side",
	}
}

func (TypeMustExist) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	switch node.(type) {
	case *mapping.NamespaceMapping, *mapping.TypeMapping:
	default:
		return nil, nil
	}

	m := node.Base()

	base := m.Baseline()
	if base == nil {
		return nil, nil
	}

	label := "Type"
	if base.Kind == symbol.KindNamespace {
		label = "Namespace"
	}

	var out []Finding

	for _, side := range m.Absent() {
		out = append(out, Finding{
			Type: Removed,
			Message: fmt.Sprintf("%s '%s' does not exist in the %s but it does exist in the %s.",
				label, identity.Signature(base), ctx.SideName(side), ctx.SideName(0)),
			Sides: []int{0, side},
		})
	}

	return out, nil
}

// MemberMustExist reports members present on the baseline but missing on
// another side. Properties and events are covered through their accessor
// methods and only reported themselves when the baseline declares no
// included accessor. Explicit interface implementations are left to other rules.
type MemberMustExist struct{}

func (MemberMustExist) Metadata() Metadata {
	return Metadata{
		Name:        "MemberMustExist",
		Description: "methods and fields of the baseline exist on every side",
	}
}

func (MemberMustExist) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	mm, ok := node.(*mapping.MemberMapping)
	if !ok {
		return nil, nil
	}

	base := mm.Baseline()
	if base == nil {
		return nil, nil
	}

	switch {
	case (base.Kind == symbol.KindProperty || base.Kind == symbol.KindEvent) && hasAccessor(ctx, base):
		return nil, nil
	case base.IsExplicitInterfaceImpl():
		return nil, nil
	}

	name := identity.Signature(base)
	if owner := base.AccessorOf(); owner != nil {
		name += fmt.Sprintf(" (accessor of %s '%s')", owner.Kind, owner.Name)
	}

	var out []Finding

	for _, side := range mm.Absent() {
		out = append(out, Finding{
			Type: Removed,
			Message: fmt.Sprintf("Member '%s' does not exist in the %s but it does exist in the %s.",
				name, ctx.SideName(side), ctx.SideName(0)),
			Sides: []int{0, side},
		})
	}

	return out, nil
}

func hasAccessor(ctx *Context, owner *symbol.Symbol) bool {
	for _, m := range owner.AccessorMethods() {
		if ctx.IncludeMember(m) {
			return true
		}
	}

	return false
}

// ElementAdded reports elements that exist on a side but not on the baseline.
type ElementAdded struct{}

func (ElementAdded) Metadata() Metadata {
	return Metadata{
		Name:        "ElementAdded",
		Description: "elements missing on the baseline are reported as additions",
	}
}

func (ElementAdded) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	m := node.Base()
	if m.Baseline() != nil {
		return nil, nil
	}

	var out []Finding

	for _, side := range m.Present() {
		s := m.Element(side)

		out = append(out, Finding{
			Type: Added,
			Message: fmt.Sprintf("%s '%s' exists in the %s but not in the %s.",
				s.Kind, identity.Signature(s), ctx.SideName(side), ctx.SideName(0)),
			Sides: []int{0, side},
		})
	}

	return out, nil
}
