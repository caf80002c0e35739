package rules

import (
	"fmt"

	"apicompat/internal/identity"
	"apicompat/internal/mapping"
)

// CannotReduceVisibility reports types and members that are less accessible
// on a side than on the baseline.
type CannotReduceVisibility struct{}

func (CannotReduceVisibility) Metadata() Metadata {
	return Metadata{
		Name:        "CannotReduceVisibility",
		Description: "types and members keep at least their baseline accessibility",
	}
}

func (CannotReduceVisibility) Diff(ctx *Context, node mapping.Node) ([]Finding, error) {
	if _, ok := node.(*mapping.NamespaceMapping); ok {
		return nil, nil
	}

	m := node.Base()

	base := m.Baseline()
	if base == nil {
		return nil, nil
	}

	var out []Finding

	for _, side := range m.Present() {
		s := m.Element(side)
		if !s.Visibility.IsValid() {
			return nil, &SideError{Side: side, Err: fmt.Errorf("invalid visibility %d", s.Visibility)}
		}

		if side == 0 || s.Visibility.Exposure() >= base.Visibility.Exposure() {
			continue
		}

		out = append(out, Finding{
			Type: Incompatible,
			Message: fmt.Sprintf("Visibility of %s '%s' is reduced from '%s' in the %s to '%s' in the %s.",
				s.Kind, identity.Signature(s), base.Visibility, ctx.SideName(0), s.Visibility, ctx.SideName(side)),
			Sides: []int{0, side},
		})
	}

	return out, nil
}
