package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSimilar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		candidates []string
		maxResults int
		expected   []string
	}{
		{
			name:       "typo in command",
			target:     "sqr",
			candidates: []string{"add", "sub", "sqrt", "calc", "date"},
			maxResults: 3,
			expected:   []string{"sqrt"},
		},
		{
			name:       "transposed flag",
			target:     "--rigth",
			candidates: []string{"--left", "--right"},
			maxResults: 3,
			expected:   []string{"--right"},
		},
		{
			name:       "ties sorted by name",
			target:     "ad",
			candidates: []string{"adz", "ada", "sub"},
			maxResults: 3,
			expected:   []string{"ada", "adz"},
		},
		{
			name:       "limited results",
			target:     "ad",
			candidates: []string{"adz", "ada", "add"},
			maxResults: 1,
			expected:   []string{"ada"},
		},
		{
			name:       "empty target",
			target:     "",
			candidates: []string{"add", "sub"},
			maxResults: 2,
			expected:   []string{},
		},
		{
			name:       "no matches",
			target:     "frobnicate",
			candidates: []string{"add", "sub"},
			maxResults: 2,
			expected:   []string{},
		},
		{
			name:       "invalid max results",
			target:     "add",
			candidates: []string{"add"},
			maxResults: 0,
			expected:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := FindSimilar(tt.target, tt.candidates, tt.maxResults)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCalculateSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "perfect match", a: "calc", b: "calc", expected: 1.0},
		{name: "case insensitive", a: "CALC", b: "calc", expected: 1.0},
		{name: "dashes ignored", a: "left", b: "--left", expected: 1.0},
		{name: "prefix match", a: "sq", b: "sqrt", expected: 0.9},
		{name: "one substitution", a: "date", b: "data", expected: 0.75},
		{name: "completely different", a: "add", b: "sub", expected: 0.0},
		{name: "both empty", a: "", b: "", expected: 1.0},
		{name: "one empty", a: "add", b: "", expected: 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := calculateSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.expected, result, 0.001, "similarity mismatch for %q and %q", tt.a, tt.b)
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{a: "sqrt", b: "sqrt", expected: 0},
		{a: "sqrt", b: "sqrl", expected: 1},
		{a: "add", b: "addd", expected: 1},
		{a: "calc", b: "cal", expected: 1},
		{a: "", b: "date", expected: 4},
		{a: "date", b: "", expected: 4},
		{a: "", b: "", expected: 0},
		{a: "kitten", b: "sitting", expected: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshteinDistance(tt.a, tt.b), "distance mismatch for %q and %q", tt.a, tt.b)
	}
}
