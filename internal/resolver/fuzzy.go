package resolver

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultFuzzyCutoff is the minimum similarity ratio required to accept a
// fuzzy match. Inputs scoring below it fall through to the next strategy.
const DefaultFuzzyCutoff = 0.8

// BestMatch returns the candidate most similar to input, provided its
// similarity ratio is at least cutoff. The ratio is the SequenceMatcher
// measure over characters: twice the total matching-block length divided
// by the combined length, so identical strings score 1.0 and disjoint
// strings score near 0.0.
//
// Candidates are compared in slice order and a later candidate replaces
// the best only on a strictly greater score, so passing a sorted slice
// makes ties resolve to the lexicographically smallest candidate and the
// result never depends on map iteration order. Empty input or an empty
// candidate slice yields no match.
func BestMatch(input string, candidates []string, cutoff float64) (string, bool) {
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		score := Similarity(input, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore >= cutoff {
		return best, true
	}
	return "", false
}

// Similarity computes the normalized edit similarity between two strings
// in [0, 1]. Both strings are compared character by character.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	m := difflib.NewMatcher(splitChars(a), splitChars(b))
	return m.Ratio()
}

// splitChars splits a string into single-character elements for the
// sequence matcher, which operates on string slices.
func splitChars(s string) []string {
	return strings.Split(s, "")
}
