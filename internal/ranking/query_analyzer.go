package ranking

import (
	"strings"
	"unicode/utf8"
)

// QueryAnalyzer turns raw query strings into AnalyzedQuery values.
type QueryAnalyzer struct{}

// NewQueryAnalyzer creates a new QueryAnalyzer.
func NewQueryAnalyzer() *QueryAnalyzer {
	return &QueryAnalyzer{}
}

// Analyze normalizes and tokenizes a query string.
func (qa *QueryAnalyzer) Analyze(query string) *AnalyzedQuery {
	normalized := strings.TrimSpace(Normalize(query))
	return &AnalyzedQuery{
		Original:   query,
		Normalized: normalized,
		Terms:      Tokenize(normalized),
	}
}

// NormalizeTerm normalizes and trims a single term, reporting its length in runes.
func NormalizeTerm(term string) (string, int) {
	normalized := strings.TrimSpace(Normalize(term))
	return normalized, utf8.RuneCountInString(normalized)
}
