package symbol

import "strings"

// Parameter is one entry of a method's ordered parameter list.
type Parameter struct {
	Name string // informational, not part of identity
	Type string // fully qualified type name, e.g. "System.Int32"
}

// Attribute is a reference to a custom attribute applied to a symbol.
type Attribute struct {
	Type       string   // fully qualified attribute type name
	TypeOfArgs []string // types referenced by typeof-valued arguments
}

// Symbol is one node of an API tree.
type Symbol struct {
	Name       string     // simple name; fully qualified for namespaces
	Kind       Kind       // symbol kind
	Visibility Visibility // accessibility; unused for namespaces

	// Container is the symbol this one is declared in (nil for namespaces).
	// It is a back-reference; ownership flows through Children.
	Container *Symbol

	Children []*Symbol // types of a namespace; nested types and members of a type

	Parameters   []Parameter // methods, indexers
	ReturnType   string      // methods; property, field and event type
	GenericArity int         // generic parameter count of a type or method

	Attributes []Attribute

	Forwarded         bool     // type re-exported from another library
	CompilerGenerated bool     // emitted by a compiler rather than declared
	Constructor       bool     // instance or static constructor
	ExplicitInterface string   // interface qualifying an explicit implementation, e.g. "System.IDisposable"
	Accessors         []string // property/event accessor method names, e.g. "get_Count"

	library  *Library
	accessor *Symbol // owning property or event when this method is one of its accessors
}

// Library returns the side this symbol belongs to, once linked.
func (s *Symbol) Library() *Library {
	return s.library
}

// IsType reports whether the symbol is a type (top-level or nested).
func (s *Symbol) IsType() bool {
	return s.Kind == KindType
}

// IsNestedType reports whether the symbol is a type declared inside another type.
func (s *Symbol) IsNestedType() bool {
	return s.Kind == KindType && s.Container != nil && s.Container.Kind == KindType
}

// IsExplicitInterfaceImpl reports whether the method explicitly implements an interface member.
func (s *Symbol) IsExplicitInterfaceImpl() bool {
	return s.Kind == KindMethod && s.ExplicitInterface != ""
}

// AccessorOf returns the property or event owning this accessor method, or nil.
func (s *Symbol) AccessorOf() *Symbol {
	return s.accessor
}

// AccessorMethods returns the sibling methods owned by this property or
// event, in declaration order.
func (s *Symbol) AccessorMethods() []*Symbol {
	if s.Container == nil {
		return nil
	}

	var out []*Symbol

	for _, c := range s.Container.Children {
		if c.Kind == KindMethod && c.accessor == s {
			out = append(out, c)
		}
	}

	return out
}

// ContainingType returns the nearest enclosing type, or nil.
func (s *Symbol) ContainingType() *Symbol {
	for c := s.Container; c != nil; c = c.Container {
		if c.Kind == KindType {
			return c
		}
	}

	return nil
}

// Namespace returns the enclosing namespace, or the symbol itself for namespaces.
func (s *Symbol) Namespace() *Symbol {
	for c := s; c != nil; c = c.Container {
		if c.Kind == KindNamespace {
			return c
		}
	}

	return nil
}

// Types returns the type children (top-level types of a namespace, nested types of a type).
func (s *Symbol) Types() []*Symbol {
	var out []*Symbol

	for _, c := range s.Children {
		if c.Kind == KindType {
			out = append(out, c)
		}
	}

	return out
}

// Members returns the non-type children of a type.
func (s *Symbol) Members() []*Symbol {
	var out []*Symbol

	for _, c := range s.Children {
		if c.Kind.IsMember() {
			out = append(out, c)
		}
	}

	return out
}

// FullName returns the dotted name of a namespace or type without generic arity,
// e.g. "System.Collections.Generic.Dictionary.Enumerator". Members return the
// full name of their type followed by their own name.
func (s *Symbol) FullName() string {
	var parts []string

	for c := s; c != nil; c = c.Container {
		if c.Name != "" {
			parts = append(parts, c.Name)
		}
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, ".")
}

// Library is one side of a comparison: a named, linked set of namespace trees.
type Library struct {
	Name       string
	Namespaces []*Symbol

	types map[string]*Symbol
}

// NewLibrary creates a linked library from namespace trees.
func NewLibrary(name string, namespaces ...*Symbol) *Library {
	lib := &Library{Name: name, Namespaces: namespaces}
	lib.Link()

	return lib
}

// Link wires Container back-references, accessor ownership and the type index.
// It must be called after the tree is built and before it is compared.
func (l *Library) Link() {
	l.types = make(map[string]*Symbol)

	for _, ns := range l.Namespaces {
		ns.Container = nil
		l.link(ns)
	}
}

func (l *Library) link(s *Symbol) {
	s.library = l

	if s.Kind == KindType {
		l.types[s.FullName()] = s
	}

	accessors := map[string]*Symbol{}

	for _, c := range s.Children {
		c.Container = s
		c.accessor = nil

		if c.Kind == KindProperty || c.Kind == KindEvent {
			for _, a := range c.Accessors {
				accessors[a] = c
			}
		}
	}

	for _, c := range s.Children {
		if c.Kind == KindMethod {
			c.accessor = accessors[c.Name]
		}

		l.link(c)
	}
}

// LookupType returns the type declared in this library with the given dotted
// full name, or nil when the name refers to a type outside the library.
func (l *Library) LookupType(fullName string) *Symbol {
	return l.types[fullName]
}

// Walk visits every symbol of the library depth-first, parents before children.
// Returning false from fn skips the symbol's children.
func (l *Library) Walk(fn func(*Symbol) bool) {
	var visit func(*Symbol)

	visit = func(s *Symbol) {
		if !fn(s) {
			return
		}

		for _, c := range s.Children {
			visit(c)
		}
	}

	for _, ns := range l.Namespaces {
		visit(ns)
	}
}
