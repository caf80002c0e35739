package symbol

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the closed set of symbol kinds.
type Kind int

const (
	KindNamespace Kind = iota // namespace
	KindType                  // type
	KindMethod                // method
	KindField                 // field
	KindProperty              // property
	KindEvent                 // event
)

// IsMember reports whether symbols of this kind live inside a type.
// Nested types are KindType and therefore not members in this sense.
func (k Kind) IsMember() bool {
	switch k {
	case KindMethod, KindField, KindProperty, KindEvent:
		return true
	default:
		return false
	}
}

// ParseKind converts a fixture kind name into a Kind.
// "constructor" and "ctor" map to KindMethod; the caller marks the symbol.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "namespace":
		return KindNamespace, nil
	case "type", "class", "struct", "interface", "enum", "delegate":
		return KindType, nil
	case "method", "constructor", "ctor":
		return KindMethod, nil
	case "field":
		return KindField, nil
	case "property":
		return KindProperty, nil
	case "event":
		return KindEvent, nil
	default:
		return 0, fmt.Errorf("unknown symbol kind %q", s)
	}
}
