package identity

import (
	"strconv"
	"strings"
)

// typePath builds a qualified type name part by part.
// Examples:
//   - "System.String"
//   - "System.Collections.Generic.List`1"
//   - "System.Collections.Generic.Dictionary`2.Enumerator"
type typePath struct {
	parts []string
}

func newTypePath(root string) *typePath {
	if root == "" {
		return &typePath{}
	}

	return &typePath{parts: []string{root}}
}

// nested appends a type name, with the generic arity suffix when arity > 0.
func (p *typePath) nested(name string, arity int) *typePath {
	if arity > 0 {
		name += "`" + strconv.Itoa(arity)
	}

	return &typePath{parts: append(append([]string{}, p.parts...), name)}
}

func (p *typePath) String() string {
	return strings.Join(p.parts, ".")
}
