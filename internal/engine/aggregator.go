package engine

import (
	"slices"

	"apicompat/internal/rules"
)

// Fired is a finding together with the rule that produced it.
type Fired struct {
	Rule    string
	Finding rules.Finding
}

// Aggregator collects the differences of a run, one node at a time.
type Aggregator struct {
	differences []Difference
}

// Add resolves the findings of one node. Only findings of the highest
// reportable classification are kept, all of them, in the order they fired.
func (a *Aggregator) Add(key string, fired []Fired) {
	a.differences = append(a.differences, Aggregate(key, fired)...)
}

// Differences returns the differences collected so far.
func (a *Aggregator) Differences() []Difference {
	return slices.Clone(a.differences)
}

// Len returns the number of differences collected so far.
func (a *Aggregator) Len() int {
	return len(a.differences)
}

// Aggregate resolves the findings of one node into differences.
// Unknown and Identical findings are never reported.
func Aggregate(key string, fired []Fired) []Difference {
	top := rules.Unknown

	for _, f := range fired {
		if f.Finding.Type.IsReportable() {
			top = max(top, f.Finding.Type)
		}
	}

	if !top.IsReportable() {
		return nil
	}

	var out []Difference

	for _, f := range fired {
		if f.Finding.Type != top {
			continue
		}

		out = append(out, Difference{
			Rule:    f.Rule,
			Type:    top,
			Message: f.Finding.Message,
			Key:     key,
			Sides:   slices.Clone(f.Finding.Sides),
		})
	}

	return out
}
