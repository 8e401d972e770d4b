package ranking

import "github.com/hyperjump/katalog/internal/models"

// FieldScorer scores slug, category, subcategories, description and features.
// Each matching field adds its weight.
type FieldScorer struct {
	weights *SearchWeights
}

// NewFieldScorer creates a new FieldScorer with the given weights.
func NewFieldScorer(weights *SearchWeights) *FieldScorer {
	return &FieldScorer{weights: weights}
}

// Name returns the scorer name.
func (s *FieldScorer) Name() string {
	return "fields"
}

// Score calculates the summed field score.
func (s *FieldScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Query.IsEmpty() || ctx.Record == nil {
		return 0
	}

	rec := ctx.Record
	term := ctx.Query.Normalized
	w := s.weights
	score := 0.0

	if Contains(Normalize(rec.Slug), term) {
		score += ctx.match("slug", rec.Slug, w.SlugContains, models.MatchContains)
	}
	if Contains(Normalize(rec.CategoryKey), term) {
		score += ctx.match("categoryKey", rec.CategoryKey, w.CategoryContains, models.MatchContains)
	}
	for _, key := range rec.SubcategoryKeys {
		if Contains(Normalize(key), term) {
			score += ctx.match("subcategoryKeys", key, w.SubcategoryContains, models.MatchContains)
		}
	}

	if rec.Description != "" {
		desc := Normalize(rec.Description)
		if Contains(desc, term) {
			score += ctx.match("description", rec.Description, w.DescriptionContains, models.MatchContains)
		} else if Fuzzy(desc, term) {
			score += ctx.match("description", rec.Description, w.DescriptionFuzzy, models.MatchFuzzy)
		}
	}

	for _, f := range rec.Features {
		if Contains(Normalize(f.Name), term) {
			score += ctx.match("features.name", f.Name, w.FeatureContains, models.MatchContains)
		}
	}

	return score
}
