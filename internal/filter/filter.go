package filter

import (
	"apicompat/internal/symbol"
)

// Filter selects the symbols that make up an API surface.
type Filter interface {
	IncludeNamespace(ns *symbol.Symbol) bool
	IncludeType(t *symbol.Symbol) bool
	IncludeMember(m *symbol.Symbol) bool
	// IncludeAttribute reports whether attribute a, applied to owner, is compared.
	IncludeAttribute(owner *symbol.Symbol, a symbol.Attribute) bool
}

// AccessibilityFilter is the standard Filter driven by a Config.
type AccessibilityFilter struct {
	cfg     Config
	skipped map[string]struct{}
}

var _ Filter = (*AccessibilityFilter)(nil)

// New validates cfg and returns a filter for it.
func New(cfg Config) (*AccessibilityFilter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	skipped := make(map[string]struct{}, len(skippedAttributes)+len(cfg.IgnoredAttributes))
	for _, name := range skippedAttributes {
		skipped[name] = struct{}{}
	}

	for _, name := range cfg.IgnoredAttributes {
		skipped[name] = struct{}{}
	}

	cfg.IgnoredAttributes = append([]string(nil), cfg.IgnoredAttributes...)

	return &AccessibilityFilter{cfg: cfg, skipped: skipped}, nil
}

// Config returns the configuration the filter was built with.
func (f *AccessibilityFilter) Config() Config {
	return f.cfg
}

// IncludeNamespace reports whether ns holds at least one included type.
func (f *AccessibilityFilter) IncludeNamespace(ns *symbol.Symbol) bool {
	for _, t := range ns.Types() {
		if f.IncludeType(t) {
			return true
		}
	}

	return false
}

// IncludeType reports whether t is part of the surface. A nested type also
// requires its enclosing type to be included.
func (f *AccessibilityFilter) IncludeType(t *symbol.Symbol) bool {
	if t == nil || t.Kind != symbol.KindType {
		return false
	}

	if t.Forwarded && !f.cfg.IncludeForwardedTypes {
		return false
	}

	if t.CompilerGenerated && f.cfg.ExcludeCompilerGenerated {
		return false
	}

	if t.IsNestedType() {
		return f.IncludeType(t.Container) && f.visible(t.Visibility)
	}

	return f.cfg.AllowedAccessibilities.Has(t.Visibility)
}

// IncludeMember reports whether m is part of the surface.
func (f *AccessibilityFilter) IncludeMember(m *symbol.Symbol) bool {
	if m == nil || !m.Kind.IsMember() {
		return false
	}

	if !f.IncludeType(m.ContainingType()) {
		return false
	}

	if m.CompilerGenerated && f.cfg.ExcludeCompilerGenerated && m.AccessorOf() == nil {
		return false
	}

	return f.visible(m.Visibility)
}

// IncludeAttribute reports whether a takes part in the comparison. Attribute
// and typeof argument types that cannot be resolved in owner's library are
// treated as visible.
func (f *AccessibilityFilter) IncludeAttribute(owner *symbol.Symbol, a symbol.Attribute) bool {
	if f.cfg.ExcludeAttributes {
		return false
	}

	if _, ok := f.skipped[a.Type]; ok {
		return false
	}

	if !f.typeVisible(owner, a.Type) {
		return false
	}

	for _, arg := range a.TypeOfArgs {
		if !f.typeVisible(owner, arg) {
			return false
		}
	}

	return true
}

// visible applies the member rule: protected access is always part of the
// contract for derived types.
func (f *AccessibilityFilter) visible(v symbol.Visibility) bool {
	if v == symbol.Protected || v == symbol.ProtectedOrInternal {
		return true
	}

	return f.cfg.AllowedAccessibilities.Has(v)
}

func (f *AccessibilityFilter) typeVisible(owner *symbol.Symbol, fullName string) bool {
	if owner == nil || owner.Library() == nil {
		return true
	}

	t := owner.Library().LookupType(fullName)
	if t == nil {
		return true
	}

	return f.IncludeType(t)
}
