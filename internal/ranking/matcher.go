package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The matchers below expect both arguments to be normalized already. An
// empty text or term never matches.

// Exact reports whether text equals term.
func Exact(text, term string) bool {
	return term != "" && text == term
}

// Prefix reports whether text starts with term.
func Prefix(text, term string) bool {
	return term != "" && strings.HasPrefix(text, term)
}

// Contains reports whether term occurs anywhere in text.
func Contains(text, term string) bool {
	return term != "" && strings.Contains(text, term)
}

// isBoundary reports whether r separates words for WordBoundary.
func isBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '-', '_', '/', '.', ',', ';', ':', '(', ')', '[', ']', '&', '+', '\'', '"':
		return true
	}
	return false
}

// WordBoundary reports whether any whitespace or punctuation delimited token
// of text starts with term.
func WordBoundary(text, term string) bool {
	if term == "" || text == "" {
		return false
	}
	for _, token := range strings.FieldsFunc(text, isBoundary) {
		if strings.HasPrefix(token, term) {
			return true
		}
	}
	return false
}

// FuzzyTolerance returns the edit distance allowed for a term of n runes.
// Terms of two runes or less get no tolerance.
func FuzzyTolerance(n int) int {
	switch {
	case n <= 2:
		return 0
	case n <= 4:
		return 1
	default:
		return 2
	}
}

// Fuzzy reports whether term approximately matches text. Each whitespace token
// of text is cut to len(term)+tolerance runes and compared by edit distance,
// so "tenis" matches "tennisbane".
func Fuzzy(text, term string) bool {
	if term == "" || text == "" {
		return false
	}
	n := utf8.RuneCountInString(term)
	if n <= 2 {
		return Prefix(text, term) || Contains(text, term)
	}
	if strings.Contains(text, term) {
		return true
	}
	tolerance := FuzzyTolerance(n)
	for _, token := range strings.Fields(text) {
		if strings.HasPrefix(token, term) {
			return true
		}
		if LevenshteinDistance(term, runePrefix(token, n+tolerance)) <= tolerance {
			return true
		}
	}
	return false
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
