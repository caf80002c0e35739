package symbol

import (
	"slices"
	"strings"
)

// NewNamespace creates a namespace symbol. An empty name is the global namespace.
func NewNamespace(name string) *Symbol {
	return &Symbol{Name: name, Kind: KindNamespace, Visibility: Public}
}

func (s *Symbol) add(c *Symbol) *Symbol {
	c.Container = s
	s.Children = append(s.Children, c)

	return c
}

// AddType declares a type (or a nested type when s is a type) and returns it.
func (s *Symbol) AddType(name string, vis Visibility) *Symbol {
	return s.add(&Symbol{Name: name, Kind: KindType, Visibility: vis})
}

// AddMethod declares a method with the given parameter types and returns it.
func (s *Symbol) AddMethod(name string, vis Visibility, params ...string) *Symbol {
	return s.add(&Symbol{Name: name, Kind: KindMethod, Visibility: vis, Parameters: toParameters(params)})
}

// AddConstructor declares a constructor with the given parameter types and returns it.
func (s *Symbol) AddConstructor(vis Visibility, params ...string) *Symbol {
	return s.add(&Symbol{
		Name:        ".ctor",
		Kind:        KindMethod,
		Visibility:  vis,
		Parameters:  toParameters(params),
		Constructor: true,
	})
}

// AddField declares a field of the given type and returns it.
func (s *Symbol) AddField(name, typ string, vis Visibility) *Symbol {
	return s.add(&Symbol{Name: name, Kind: KindField, Visibility: vis, ReturnType: typ})
}

// DefaultAccessors returns the accessor names of a property or event that
// lists none: get_X for properties, add_X and remove_X for events.
func DefaultAccessors(kind Kind, name string) []string {
	switch kind {
	case KindProperty:
		return []string{"get_" + name}
	case KindEvent:
		return []string{"add_" + name, "remove_" + name}
	default:
		return nil
	}
}

// AddProperty declares a property together with its accessor methods.
// Without accessor names the property gets a getter.
func (s *Symbol) AddProperty(name, typ string, vis Visibility, accessors ...string) *Symbol {
	if len(accessors) == 0 {
		accessors = DefaultAccessors(KindProperty, name)
	}

	p := s.add(&Symbol{Name: name, Kind: KindProperty, Visibility: vis, ReturnType: typ, Accessors: accessors})

	for _, a := range accessors {
		s.AddMethod(a, vis, accessorParams(a, typ)...)
	}

	return p
}

// AddEvent declares an event together with its add/remove accessor methods.
func (s *Symbol) AddEvent(name, typ string, vis Visibility) *Symbol {
	accessors := DefaultAccessors(KindEvent, name)
	e := s.add(&Symbol{Name: name, Kind: KindEvent, Visibility: vis, ReturnType: typ, Accessors: accessors})

	for _, a := range accessors {
		s.AddMethod(a, vis, accessorParams(a, typ)...)
	}

	return e
}

// addMissingAccessors gives every property and event of s its accessor
// methods: listed names, or the defaults when none are listed. Methods that
// are already declared are left alone.
func (s *Symbol) addMissingAccessors() {
	declared := map[string]bool{}

	for _, c := range s.Children {
		if c.Kind == KindMethod {
			declared[c.Name] = true
		}
	}

	owners := slices.Clone(s.Children)

	for _, c := range owners {
		if c.Kind != KindProperty && c.Kind != KindEvent {
			continue
		}

		if len(c.Accessors) == 0 {
			c.Accessors = DefaultAccessors(c.Kind, c.Name)
		}

		for _, a := range c.Accessors {
			if declared[a] {
				continue
			}

			declared[a] = true

			m := s.AddMethod(a, c.Visibility, accessorParams(a, c.ReturnType)...)
			m.CompilerGenerated = c.CompilerGenerated
		}
	}
}

// accessorParams returns the parameter list of an accessor: setters and
// event add/remove accessors take the member type.
func accessorParams(accessor, typ string) []string {
	for _, prefix := range []string{"set_", "add_", "remove_"} {
		if strings.HasPrefix(accessor, prefix) && typ != "" {
			return []string{typ}
		}
	}

	return nil
}

// WithAttributes appends attributes to the symbol and returns it.
func (s *Symbol) WithAttributes(attrs ...Attribute) *Symbol {
	s.Attributes = append(s.Attributes, attrs...)

	return s
}

// WithGenericArity sets the generic parameter count and returns the symbol.
func (s *Symbol) WithGenericArity(n int) *Symbol {
	s.GenericArity = n

	return s
}

// WithReturnType sets the return type and returns the symbol.
func (s *Symbol) WithReturnType(typ string) *Symbol {
	s.ReturnType = typ

	return s
}

func toParameters(types []string) []Parameter {
	if len(types) == 0 {
		return nil
	}

	out := make([]Parameter, len(types))
	for i, t := range types {
		out[i] = Parameter{Type: t}
	}

	return out
}
