package rules

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=DifferenceType -output=differencetype_string.go

// DifferenceType classifies a difference. Values are ordered by severity.
type DifferenceType int

const (
	Unknown DifferenceType = iota
	Identical
	Added
	Removed
	Changed
	Incompatible
)

// IsReportable reports whether findings of this type become differences.
func (t DifferenceType) IsReportable() bool {
	return t > Identical && t <= Incompatible
}

// ParseDifferenceType converts a name, case-insensitively, into a DifferenceType.
func ParseDifferenceType(s string) (DifferenceType, error) {
	for t := Unknown; t <= Incompatible; t++ {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, nil
		}
	}

	return Unknown, fmt.Errorf("unknown difference type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t DifferenceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DifferenceType) UnmarshalText(text []byte) error {
	v, err := ParseDifferenceType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}
