package engine

import (
	"apicompat/internal/diagnostic"
	"apicompat/internal/rules"
)

// Difference is one reported discrepancy of a mapping node.
type Difference struct {
	Rule    string               `json:"rule"    msgpack:"rule"`
	Type    rules.DifferenceType `json:"type"    msgpack:"type"`
	Message string               `json:"message" msgpack:"message"`
	Key     string               `json:"key"     msgpack:"key"`
	Sides   []int                `json:"sides"   msgpack:"sides"`
}

// Result is the outcome of a successful run.
type Result struct {
	// Sides holds the library names by side index.
	Sides       []string               `json:"sides"       msgpack:"sides"`
	Differences []Difference           `json:"differences" msgpack:"differences"`
	Diagnostics diagnostic.Diagnostics `json:"-"           msgpack:"-"`
}

// Max returns the highest classification among the differences.
func (r *Result) Max() rules.DifferenceType {
	maxType := rules.Unknown

	for _, d := range r.Differences {
		maxType = max(maxType, d.Type)
	}

	return maxType
}

// Count returns the number of differences classified as t.
func (r *Result) Count(t rules.DifferenceType) int {
	n := 0

	for _, d := range r.Differences {
		if d.Type == t {
			n++
		}
	}

	return n
}

// HasIncompatibilities reports whether any difference breaks compatibility.
// Added differences do not.
func (r *Result) HasIncompatibilities() bool {
	return r.Max() > rules.Added
}
