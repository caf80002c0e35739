package rules

import (
	"fmt"
	"slices"
	"strings"

	"apicompat/internal/common"
	"apicompat/internal/identity"
	"apicompat/internal/mapping"
	"apicompat/internal/symbol"
)

// CannotAddAttribute reports attributes applied on a side but not on the
// baseline. Only attributes accepted by the context filter are compared.
type CannotAddAttribute struct{}

func (CannotAddAttribute) Metadata() Metadata {
	return Metadata{
		Name:        "CannotAddAttribute",
		Description: "no attribute is applied on a side unless the baseline applies it",
	}
}

func (CannotAddAttribute) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	if _, ok := node.(*mapping.NamespaceMapping); ok {
		return nil, nil
	}

	m := node.Base()

	base := m.Baseline()
	if base == nil {
		return nil, nil
	}

	have := make(map[string]bool, len(base.Attributes))
	for _, a := range base.Attributes {
		have[a.Type] = true
	}

	var out []Finding

	for _, side := range m.Present() {
		if side == 0 {
			continue
		}

		s := m.Element(side)
		reported := map[string]bool{}

		for _, a := range s.Attributes {
			if have[a.Type] || reported[a.Type] || ignorableAttributes[a.Type] {
				continue
			}

			if !ctx.IncludeAttribute(s, a) {
				continue
			}

			reported[a.Type] = true

			out = append(out, Finding{
				Type: Incompatible,
				Message: fmt.Sprintf("Attribute '%s' exists on '%s' in the %s but not in the %s.",
					a.Type, identity.Signature(s), ctx.SideName(side), ctx.SideName(0)),
				Sides: []int{0, side},
			})
		}
	}

	return out, nil
}

// CannotRemoveAttribute reports attributes applied on the baseline but
// missing on another side.
type CannotRemoveAttribute struct{}

func (CannotRemoveAttribute) Metadata() Metadata {
	return Metadata{
		Name:        "CannotRemoveAttribute",
		Description: "attributes applied on the baseline stay applied on every side",
	}
}

func (CannotRemoveAttribute) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	base, sides := attributeSlots(node)
	if base == nil {
		return nil, nil
	}

	baseAttrs := attributeArgs(ctx, base)

	var out []Finding

	for _, side := range sides {
		have := attributeArgs(ctx, node.Base().Element(side))

		for _, typ := range common.SortedKeys(baseAttrs) {
			if _, ok := have[typ]; ok {
				continue
			}

			out = append(out, Finding{
				Type: Incompatible,
				Message: fmt.Sprintf("Attribute '%s' exists on '%s' in the %s but not in the %s.",
					typ, identity.Signature(base), ctx.SideName(0), ctx.SideName(side)),
				Sides: []int{0, side},
			})
		}
	}

	return out, nil
}

// CannotChangeAttribute reports attributes applied on both the baseline and
// another side whose typeof arguments differ.
type CannotChangeAttribute struct{}

func (CannotChangeAttribute) Metadata() Metadata {
	return Metadata{
		Name:        "CannotChangeAttribute",
		Description: "attributes keep their typeof arguments",
	}
}

func (CannotChangeAttribute) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	base, sides := attributeSlots(node)
	if base == nil {
		return nil, nil
	}

	baseAttrs := attributeArgs(ctx, base)

	var out []Finding

	for _, side := range sides {
		have := attributeArgs(ctx, node.Base().Element(side))

		for _, typ := range common.SortedKeys(baseAttrs) {
			got, ok := have[typ]
			if !ok || slices.Equal(baseAttrs[typ], got) {
				continue
			}

			out = append(out, Finding{
				Type: Incompatible,
				Message: fmt.Sprintf("Attribute '%s' on '%s' changed from '%s' in the %s to '%s' in the %s.",
					typ, identity.Signature(base),
					strings.Join(baseAttrs[typ], "; "), ctx.SideName(0),
					strings.Join(got, "; "), ctx.SideName(side)),
				Sides: []int{0, side},
			})
		}
	}

	return out, nil
}

// attributeSlots returns the baseline element of a type or member node and
// the other sides where it is present.
func attributeSlots(node mapping.Node) (*symbol.Symbol, []int) {
	if _, ok := node.(*mapping.NamespaceMapping); ok {
		return nil, nil
	}

	m := node.Base()

	base := m.Baseline()
	if base == nil {
		return nil, nil
	}

	var sides []int

	for _, side := range m.Present() {
		if side != 0 {
			sides = append(sides, side)
		}
	}

	return base, sides
}

// attributeArgs groups the compared attributes of s by type. Each value
// lists the rendered applications of that type, sorted.
func attributeArgs(ctx *Context, s *symbol.Symbol) map[string][]string {
	out := map[string][]string{}

	for _, a := range s.Attributes {
		if ignorableAttributes[a.Type] || !ctx.IncludeAttribute(s, a) {
			continue
		}

		out[a.Type] = append(out[a.Type], renderAttribute(a))
	}

	for _, apps := range out {
		slices.Sort(apps)
	}

	return out
}

// renderAttribute formats an application, e.g. "Acme.UsesAttribute(typeof(Acme.Widget))".
func renderAttribute(a symbol.Attribute) string {
	args := make([]string, len(a.TypeOfArgs))
	for i, t := range a.TypeOfArgs {
		args[i] = "typeof(" + t + ")"
	}

	return a.Type + "(" + strings.Join(args, ", ") + ")"
}

// ignorableAttributes may be added freely without breaking consumers.
var ignorableAttributes = map[string]bool{
	"System.Reflection.AssemblyFileVersionAttribute":               true,
	"System.Reflection.AssemblyInformationalVersionAttribute":      true,
	"System.Reflection.AssemblyKeyFileAttribute":                   true,
	"System.Runtime.AssemblyTargetedPatchBandAttribute":            true,
	"System.ObsoleteAttribute":                                     true,
	"System.SupportedPlatformsAttribute":                           true,
	"System.Reflection.AssemblyProductAttribute":                   true,
	"System.Resources.SatelliteContractVersionAttribute":           true,
	"System.Runtime.CompilerServices.TypeForwardedFromAttribute":   true,
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute":   true,
	"System.Runtime.TargetedPatchingOptOutAttribute":               true,
	"System.ComponentModel.EditorBrowsableAttribute":               true,
	"System.Diagnostics.DebuggerDisplayAttribute":                  true,
	"System.Diagnostics.DebuggerTypeProxyAttribute":                true,
	"System.Diagnostics.DebuggerBrowsableAttribute":                true,
	"System.Runtime.CompilerServices.FriendAccessAllowedAttribute": true,
	"System.Runtime.CompilerServices.InternalsVisibleToAttribute":  true,
	"System.Runtime.CompilerServices.ReferenceAssemblyAttribute":   true,
	"System.Security.UnverifiableCodeAttribute":                    true,
	"System.Runtime.CompilerServices.ExtensionAttribute":           true,
	"System.Security.SecuritySafeCriticalAttribute":                true,
	"System.Security.SecurityCriticalAttribute":                    true,
	"System.Security.AllowPartiallyTrustedCallersAttribute":        true,
	"System.Security.SecurityRulesAttribute":                       true,
}

