package ranking

import (
	"github.com/hyperjump/katalog/internal/models"
)

// TypeaheadScorer scores records for as-you-type completion. Unlike full
// search the branches do not add up: the best one wins.
type TypeaheadScorer struct {
	weights *TypeaheadWeights
}

// NewTypeaheadScorer creates a new TypeaheadScorer with the given weights.
func NewTypeaheadScorer(weights *TypeaheadWeights) *TypeaheadScorer {
	return &TypeaheadScorer{weights: weights}
}

// Name returns the scorer name.
func (s *TypeaheadScorer) Name() string {
	return "typeahead"
}

// Score returns the highest branch score for the normalized prefix, or 0.
func (s *TypeaheadScorer) Score(prefix string, rec *models.CatalogRecord) float64 {
	if prefix == "" || rec == nil {
		return 0
	}
	w := s.weights
	best := 0.0
	consider := func(ok bool, weight float64) {
		if ok && weight > best {
			best = weight
		}
	}

	name := Normalize(rec.Name)
	consider(Prefix(name, prefix), w.NamePrefix)
	consider(WordBoundary(name, prefix), w.WordBoundary)
	consider(Prefix(Normalize(rec.Slug), prefix), w.SlugPrefix)
	consider(Contains(name, prefix), w.NameContains)
	consider(Contains(Normalize(rec.CategoryKey), prefix), w.CategoryContains)
	consider(Fuzzy(name, prefix), w.NameFuzzy)

	for _, key := range rec.SubcategoryKeys {
		consider(Contains(Normalize(key), prefix), w.SubcategoryContains)
	}

	if city := Normalize(rec.City()); city != "" {
		consider(Prefix(city, prefix), w.CityPrefix)
		consider(Contains(city, prefix), w.CityContains)
		consider(Fuzzy(city, prefix), w.CityFuzzy)
	}

	return best
}
