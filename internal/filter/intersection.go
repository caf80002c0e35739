package filter

import "apicompat/internal/symbol"

// IntersectionFilter includes a symbol only when every wrapped filter does.
// An empty intersection includes everything.
type IntersectionFilter struct {
	filters []Filter
}

var _ Filter = (*IntersectionFilter)(nil)

// Intersection combines filters with logical AND.
func Intersection(filters ...Filter) *IntersectionFilter {
	return &IntersectionFilter{filters: append([]Filter(nil), filters...)}
}

func (f *IntersectionFilter) IncludeNamespace(ns *symbol.Symbol) bool {
	return f.all(func(x Filter) bool { return x.IncludeNamespace(ns) })
}

func (f *IntersectionFilter) IncludeType(t *symbol.Symbol) bool {
	return f.all(func(x Filter) bool { return x.IncludeType(t) })
}

func (f *IntersectionFilter) IncludeMember(m *symbol.Symbol) bool {
	return f.all(func(x Filter) bool { return x.IncludeMember(m) })
}

func (f *IntersectionFilter) IncludeAttribute(owner *symbol.Symbol, a symbol.Attribute) bool {
	return f.all(func(x Filter) bool { return x.IncludeAttribute(owner, a) })
}

func (f *IntersectionFilter) all(pred func(Filter) bool) bool {
	for _, x := range f.filters {
		if !pred(x) {
			return false
		}
	}

	return true
}

// Include dispatches on the symbol kind. Namespaces, types and members each
// go to their own predicate.
func Include(f Filter, s *symbol.Symbol) bool {
	switch {
	case s == nil:
		return false
	case s.Kind == symbol.KindNamespace:
		return f.IncludeNamespace(s)
	case s.Kind == symbol.KindType:
		return f.IncludeType(s)
	default:
		return f.IncludeMember(s)
	}
}
