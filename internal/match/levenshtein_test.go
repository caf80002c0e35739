package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"hello", "hello", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"Hello", "hello", 1},

		// Type names
		{"System.Int32", "System.Int64", 2},
		{"System.String", "System.Int32", 6},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetric")
		})
	}
}

func TestDistance_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected int
	}{
		{"equal", []string{"int", "string"}, []string{"int", "string"}, 0},
		{"substitution", []string{"int"}, []string{"string"}, 1},
		{"insertion", []string{"int"}, []string{"int", "bool"}, 1},
		{"both empty", nil, nil, 0},
		{"one empty", nil, []string{"int", "int"}, 2},
		{"swap", []string{"int", "string"}, []string{"string", "int"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 1e-9)
	assert.InDelta(t, 1.0, LevenshteinNormalized("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.5, LevenshteinNormalized("ab", "ax"), 1e-9)
}
