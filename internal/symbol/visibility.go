package symbol

import (
	"fmt"
	"strings"

	"apicompat/internal/common"
)

// Visibility is the accessibility of a type or member.
// Values are single bits so they combine into a VisibilitySet.
type Visibility uint8

const (
	Private              Visibility = 1 << iota // private
	ProtectedAndInternal                        // private protected: derived types in the same library
	Internal                                    // internal: same library only
	Protected                                   // protected: derived types
	ProtectedOrInternal                         // protected internal: derived types or same library
	Public                                      // public

	visibilityMask = (1 << iota) - 1
)

var visibilityNames = []struct {
	v    Visibility
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{ProtectedOrInternal, "protectedorinternal"},
	{Internal, "internal"},
	{ProtectedAndInternal, "protectedandinternal"},
	{Private, "private"},
}

// String returns the lower-case visibility name.
func (v Visibility) String() string {
	for _, n := range visibilityNames {
		if n.v == v {
			return n.name
		}
	}

	return common.UnknownStr
}

// IsValid reports whether v is exactly one known visibility.
func (v Visibility) IsValid() bool {
	return v != 0 && v&visibilityMask == v && v&(v-1) == 0
}

// Exposure orders visibilities by how widely they expose a symbol.
// Internal and ProtectedAndInternal share a rank: neither is reachable
// from outside the library.
func (v Visibility) Exposure() int {
	switch v {
	case Public:
		return 4
	case ProtectedOrInternal:
		return 3
	case Protected:
		return 2
	case Internal, ProtectedAndInternal:
		return 1
	default:
		return 0
	}
}

// ParseVisibility accepts the names produced by String as well as the
// C# spellings ("protected internal", "private protected").
func ParseVisibility(s string) (Visibility, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)

	switch norm {
	case "public":
		return Public, nil
	case "protected", "family":
		return Protected, nil
	case "protectedorinternal", "protectedinternal", "familyorassembly":
		return ProtectedOrInternal, nil
	case "internal", "assembly":
		return Internal, nil
	case "protectedandinternal", "privateprotected", "familyandassembly":
		return ProtectedAndInternal, nil
	case "private":
		return Private, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", s)
	}
}

// VisibilitySet is a bitmask of visibilities.
type VisibilitySet uint8

// DefaultVisibilities is the set of accessibilities that form a public contract.
const DefaultVisibilities = VisibilitySet(Public | Protected | ProtectedOrInternal)

// NewVisibilitySet creates a set with the given visibilities.
func NewVisibilitySet(vs ...Visibility) VisibilitySet {
	var s VisibilitySet
	for _, v := range vs {
		s = s.With(v)
	}

	return s
}

// ParseVisibilitySet parses a list of visibility names.
func ParseVisibilitySet(names []string) (VisibilitySet, error) {
	var s VisibilitySet

	for _, name := range names {
		v, err := ParseVisibility(name)
		if err != nil {
			return 0, err
		}

		s = s.With(v)
	}

	return s, nil
}

// With returns a copy of the set that also contains v.
func (s VisibilitySet) With(v Visibility) VisibilitySet {
	return s | VisibilitySet(v)
}

// Has reports whether v is in the set.
func (s VisibilitySet) Has(v Visibility) bool {
	return v != 0 && s&VisibilitySet(v) == VisibilitySet(v)
}

// IsEmpty reports whether no visibility is set.
func (s VisibilitySet) IsEmpty() bool {
	return s&visibilityMask == 0
}

// Valid reports whether the set only holds known visibility bits.
func (s VisibilitySet) Valid() bool {
	return s&^visibilityMask == 0
}

// Slice lists the members of the set, widest exposure first.
func (s VisibilitySet) Slice() []Visibility {
	var out []Visibility

	for _, n := range visibilityNames {
		if s.Has(n.v) {
			out = append(out, n.v)
		}
	}

	return out
}

// String returns a comma separated list of the set's visibilities.
func (s VisibilitySet) String() string {
	vs := s.Slice()
	parts := make([]string, len(vs))

	for i, v := range vs {
		parts[i] = v.String()
	}

	return strings.Join(parts, ",")
}
