package match

import (
	"sort"

	"apicompat/internal/identity"
	"apicompat/internal/symbol"
)

// Candidate is a possible replacement for a method that disappeared.
type Candidate struct {
	Symbol *symbol.Symbol
	Key    string

	// Distance is the edit distance between the parameter type lists.
	Distance int
	// Similarity averages the per-position type name similarity (0-1).
	Similarity float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankSignatures ranks candidates as replacements for target.
// Returns candidates sorted by parameter distance ascending, then similarity
// descending, then key.
func RankSignatures(target *symbol.Symbol, candidates []*symbol.Symbol) CandidateList {
	want := parameterTypes(target)
	out := make(CandidateList, 0, len(candidates))

	for _, c := range candidates {
		got := parameterTypes(c)

		out = append(out, Candidate{
			Symbol:     c,
			Key:        identity.GetID(c),
			Distance:   Distance(want, got),
			Similarity: similarity(want, got),
		})
	}

	sort.Sort(out)

	return out
}

func parameterTypes(s *symbol.Symbol) []string {
	types := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		types[i] = p.Type
	}

	return types
}

func similarity(a, b []string) float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return 1.0
	}

	total := 0.0

	for i := range min(len(a), len(b)) {
		total += LevenshteinNormalized(a[i], b[i])
	}

	return total / float64(n)
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	if c[i].Similarity != c[j].Similarity {
		return c[i].Similarity > c[j].Similarity
	}
	// Tie-breaker: ordinal by key for determinism
	return c[i].Key < c[j].Key
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates rank equally apart from the key.
func (c CandidateList) IsAmbiguous() bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Distance == c[1].Distance && c[0].Similarity == c[1].Similarity
}
