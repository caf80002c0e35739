package rules

import (
	"fmt"

	"apicompat/internal/filter"
	"apicompat/internal/mapping"
	"apicompat/internal/symbol"
)

// Finding is one classified result of a rule on a node.
type Finding struct {
	Type    DifferenceType
	Message string
	// Sides lists the side indices involved, ascending.
	Sides []int
}

// Metadata describes a rule for selection and listing.
type Metadata struct {
	Name string
	// Advisory rules are non-blocking heuristics.
	Advisory    bool
	Description string
}

// Rule compares the slots of one mapping node.
type Rule interface {
	Metadata() Metadata
	// Diff inspects node and returns its findings. A returned error aborts the run.
	Diff(ctx *Context, node mapping.Node) ([]Finding, error)
}

// Context carries what rules may consult besides the node itself.
type Context struct {
	Filter    filter.Filter
	SideNames []string
	Sides     int
}

// SideName returns the display name of side i. Unnamed sides are "contract"
// for the baseline and "implementation" otherwise, numbered when there are
// several implementations.
func (c *Context) SideName(i int) string {
	if c != nil && i >= 0 && i < len(c.SideNames) && c.SideNames[i] != "" {
		return c.SideNames[i]
	}

	switch {
	case i == 0:
		return "contract"
	case c == nil || c.Sides <= 2:
		return "implementation"
	default:
		return fmt.Sprintf("implementation %d", i)
	}
}

// IncludeAttribute applies the context filter; without one every attribute counts.
func (c *Context) IncludeAttribute(owner *symbol.Symbol, a symbol.Attribute) bool {
	if c == nil || c.Filter == nil {
		return true
	}

	return c.Filter.IncludeAttribute(owner, a)
}

// IncludeMember reports whether the filter keeps member m.
func (c *Context) IncludeMember(m *symbol.Symbol) bool {
	if c == nil || c.Filter == nil {
		return true
	}

	return c.Filter.IncludeMember(m)
}

// SideError reports a rule failure tied to one side of a node.
type SideError struct {
	Side int
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("side %d: %v", e.Side, e.Err)
}

func (e *SideError) Unwrap() error {
	return e.Err
}
