package ranking

import "github.com/hyperjump/katalog/internal/models"

// NameScorer scores the record name. Only the strongest match kind counts.
type NameScorer struct {
	weights *SearchWeights
}

// NewNameScorer creates a new NameScorer with the given weights.
func NewNameScorer(weights *SearchWeights) *NameScorer {
	return &NameScorer{weights: weights}
}

// Name returns the scorer name.
func (s *NameScorer) Name() string {
	return "name"
}

// Score checks exact, prefix, word-boundary, contains and fuzzy in that order.
func (s *NameScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Query.IsEmpty() || ctx.Record == nil || ctx.Record.Name == "" {
		return 0
	}

	name := ctx.Record.Name
	normalized := Normalize(name)
	term := ctx.Query.Normalized
	w := s.weights

	switch {
	case Exact(normalized, term):
		return ctx.match("name", name, w.NameExact, models.MatchExact)
	case Prefix(normalized, term):
		return ctx.match("name", name, w.NamePrefix, models.MatchPrefix)
	case WordBoundary(normalized, term):
		return ctx.match("name", name, w.NameContains+w.NameBoundaryBonus, models.MatchBoundary)
	case Contains(normalized, term):
		return ctx.match("name", name, w.NameContains, models.MatchContains)
	case Fuzzy(normalized, term):
		return ctx.match("name", name, w.NameFuzzy, models.MatchFuzzy)
	}
	return 0
}
