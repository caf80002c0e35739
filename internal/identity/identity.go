// Package identity computes canonical identity keys for API symbols.
//
// Two symbols, possibly from different libraries, denote the same API
// element exactly when their keys are equal. Keys follow the documentation
// comment ID scheme:
//
//	N:System.Collections                      namespace
//	T:System.Collections.Generic.List`1       type (generic arity suffix)
//	T:Outer.Inner                             nested type
//	M:Acme.Widget.#ctor(System.String)        constructor
//	M:Acme.Widget.Render(System.Int32)        method
//	M:Acme.Widget.Map``1(System.Object)       generic method
//	M:Acme.Widget.System#IDisposable#Dispose() explicit implementation
//	F:Acme.Widget.count                       field
//	P:Acme.Widget.Size                        property
//	E:Acme.Widget.Changed                     event
//
// Keys depend only on the shape of a symbol and its containers, never on
// the tree instance that holds it.
package identity

import (
	"strconv"
	"strings"

	"apicompat/internal/symbol"
)

// ConstructorName is the reserved method name used for constructors.
const ConstructorName = "#ctor"

// GetID returns the identity key of s.
func GetID(s *symbol.Symbol) string {
	switch s.Kind {
	case symbol.KindNamespace:
		return "N:" + s.Name
	case symbol.KindType:
		return "T:" + TypeName(s)
	case symbol.KindMethod:
		return "M:" + memberPrefix(s) + methodName(s) + "(" + parameterList(s) + ")"
	case symbol.KindField:
		return "F:" + memberPrefix(s) + s.Name
	case symbol.KindProperty:
		if len(s.Parameters) > 0 {
			return "P:" + memberPrefix(s) + s.Name + "(" + parameterList(s) + ")"
		}

		return "P:" + memberPrefix(s) + s.Name
	case symbol.KindEvent:
		return "E:" + memberPrefix(s) + s.Name
	default:
		return "?:" + s.FullName()
	}
}

// TypeName returns the qualified name of a type: namespace, enclosing types
// dot-joined and each generic type carrying its "`N" arity suffix.
func TypeName(t *symbol.Symbol) string {
	if t == nil {
		return ""
	}

	var chain []*symbol.Symbol

	c := t
	for ; c != nil && c.Kind == symbol.KindType; c = c.Container {
		chain = append(chain, c)
	}

	root := ""
	if c != nil && c.Kind == symbol.KindNamespace {
		root = c.Name
	}

	path := newTypePath(root)
	for i := len(chain) - 1; i >= 0; i-- {
		path = path.nested(chain[i].Name, chain[i].GenericArity)
	}

	return path.String()
}

// Signature returns a readable signature for messages, e.g. "Acme.Widget.Render(System.Int32)".
// Types and namespaces return their qualified names.
func Signature(s *symbol.Symbol) string {
	switch s.Kind {
	case symbol.KindNamespace:
		return s.Name
	case symbol.KindType:
		return TypeName(s)
	case symbol.KindMethod:
		name := s.Name
		if s.IsExplicitInterfaceImpl() {
			name = s.ExplicitInterface + "." + name
		}

		return memberPrefix(s) + name + "(" + parameterListWith(s, ", ") + ")"
	default:
		return memberPrefix(s) + s.Name
	}
}

func memberPrefix(s *symbol.Symbol) string {
	if t := s.ContainingType(); t != nil {
		return TypeName(t) + "."
	}

	return ""
}

func methodName(s *symbol.Symbol) string {
	name := s.Name
	if s.Constructor {
		name = ConstructorName
	}

	if s.IsExplicitInterfaceImpl() {
		name = strings.ReplaceAll(s.ExplicitInterface, ".", "#") + "#" + name
	}

	if s.GenericArity > 0 {
		name += "``" + strconv.Itoa(s.GenericArity)
	}

	return name
}

func parameterList(s *symbol.Symbol) string {
	return parameterListWith(s, ",")
}

func parameterListWith(s *symbol.Symbol, sep string) string {
	types := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		types[i] = p.Type
	}

	return strings.Join(types, sep)
}
