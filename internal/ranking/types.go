// Package ranking provides field-weighted relevance scoring for catalog records.
package ranking

import (
	"github.com/hyperjump/katalog/internal/models"
)

// AnalyzedQuery holds the parsed and analyzed form of a search query.
type AnalyzedQuery struct {
	// Original is the original query string.
	Original string
	// Normalized is the trimmed, normalized query used for field matching.
	Normalized string
	// Terms are the whitespace tokens of Normalized.
	Terms []string
}

// IsEmpty reports whether the query has nothing to match.
func (q *AnalyzedQuery) IsEmpty() bool {
	return q == nil || q.Normalized == ""
}

// IsMultiWord reports whether the query has more than one term.
func (q *AnalyzedQuery) IsMultiWord() bool {
	return q != nil && len(q.Terms) > 1
}

// ScoringContext provides all the context needed for scoring a record and
// collects the matches scorers report along the way.
type ScoringContext struct {
	// Query is the analyzed query.
	Query *AnalyzedQuery
	// Record is the record being scored.
	Record *models.CatalogRecord
	// Matches are the field matches found so far.
	Matches []models.SearchMatch
}

// NewScoringContext creates a ScoringContext from a query and record.
func NewScoringContext(query *AnalyzedQuery, rec *models.CatalogRecord) *ScoringContext {
	return &ScoringContext{
		Query:  query,
		Record: rec,
	}
}

// match records a field match and returns its weight.
func (c *ScoringContext) match(field, value string, weight float64, kind models.MatchKind) float64 {
	c.Matches = append(c.Matches, models.SearchMatch{
		Field:  field,
		Value:  value,
		Weight: weight,
		Kind:   kind,
	})
	return weight
}

// Scorer is the interface for all scoring components.
type Scorer interface {
	// Score calculates the score for a record given the scoring context.
	Score(ctx *ScoringContext) float64
	// Name returns the scorer name for debugging.
	Name() string
}

// Multiplier adjusts a summed score after all scorers have run.
type Multiplier interface {
	// Multiply returns the adjusted score.
	Multiply(ctx *ScoringContext, baseScore float64) float64
	// Name returns the multiplier name for debugging.
	Name() string
}

// RankedResult holds a record with its computed score and matches.
type RankedResult struct {
	Record  *models.CatalogRecord
	Score   float64
	Matches []models.SearchMatch
}
