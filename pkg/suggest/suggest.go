// Package suggest offers "did you mean" candidates for misspelled command and flag names.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

type candidate struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target, best match first. Ties are
// broken alphabetically. Leading dashes are ignored when scoring, so "--rigth" matches "--right".
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	var scored []candidate
	for _, name := range candidates {
		if score := calculateSimilarity(target, name); score > threshold {
			scored = append(scored, candidate{name: name, score: score})
		}
	}
	slices.SortFunc(scored, func(a, b candidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, min(len(scored), maxResults))
	for _, c := range scored[:min(len(scored), maxResults)] {
		result = append(result, c.name)
	}
	return result
}

func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimLeft(a, "-"))
	b = strings.ToLower(strings.TrimLeft(b, "-"))

	if a == b {
		return 1.0
	}
	if a != "" && strings.HasPrefix(b, a) {
		return 0.9
	}
	distance := levenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(max(len(a), len(b)))
}

// levenshteinDistance computes the edit distance keeping only two rows of the matrix.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
