// Package spelling suggests corrections for misspelled search queries using
// a fixed domain vocabulary and Levenshtein-based string similarity.
package spelling

import (
	"sort"
	"strings"
)

const (
	// queries shorter than this never get a suggestion; too ambiguous
	minQueryLength = 3

	// a canonical term is only suggested when similarity is strictly above this
	similarityThreshold = 0.8
)

// Corrector matches queries against a dictionary of canonical terms and
// their known misspellings. Safe for concurrent use after construction.
type Corrector struct {
	terms []string          // canonical terms, sorted for deterministic scans
	typos map[string]string // known misspelling -> canonical term
}

// NewCorrector builds lookup structures over the given dictionary.
func NewCorrector(dict Dictionary) *Corrector {
	c := &Corrector{
		terms: make([]string, 0, len(dict)),
		typos: make(map[string]string),
	}
	for term, typos := range dict {
		term = strings.ToLower(term)
		c.terms = append(c.terms, term)
		for _, typo := range typos {
			c.typos[strings.ToLower(typo)] = term
		}
	}
	sort.Strings(c.terms)
	return c
}

// Suggest returns the canonical term the query should likely be corrected
// to, or "" when no suggestion clears the bar. A query that is literally
// listed as a known misspelling short-circuits to its canonical term.
func (c *Corrector) Suggest(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minQueryLength {
		return ""
	}

	if term, ok := c.typos[q]; ok {
		return term
	}

	best := ""
	bestScore := 0.0
	for _, term := range c.terms {
		score := Similarity(q, term)
		if score > bestScore {
			best = term
			bestScore = score
		}
	}
	if bestScore > similarityThreshold && best != q {
		return best
	}
	return ""
}

// Similarity computes normalized string similarity in [0, 1]:
// (maxLen - levenshtein(a, b)) / maxLen, where 1.0 means identical.
// Two empty strings are defined as 1.0; exactly one empty string as 0.0.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return float64(maxLen-levenshtein(ra, rb)) / float64(maxLen)
}

// levenshtein computes edit distance with the classic dynamic-programming
// matrix: insertion, deletion and substitution each cost 1, no transposition.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
