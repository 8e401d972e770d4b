package classify

import (
	"sort"

	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

// Category branch scores. A category scores the best branch that matches.
const (
	scoreNamePrefix       = 100
	scoreNameContains     = 70
	scoreKeywordPrefix    = 80
	scoreKeywordContains  = 50
	scoreKeywordFuzzy     = 30
	scoreSynonymPrefix    = 65
	scoreSynonymContains  = 40
	scoreDescriptionMatch = 40
)

type normalizedCategory struct {
	category    Category
	name        string
	description string
	keywords    []string
	synonyms    []string
}

// CategoryClassifier scores taxonomy categories against a query term.
// It is immutable after construction and safe for concurrent use.
type CategoryClassifier struct {
	categories []normalizedCategory
}

// NewCategoryClassifier creates a classifier over the given taxonomy. A nil
// taxonomy uses DefaultTaxonomy.
func NewCategoryClassifier(taxonomy []Category) *CategoryClassifier {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	c := &CategoryClassifier{categories: make([]normalizedCategory, 0, len(taxonomy))}
	for _, cat := range taxonomy {
		c.categories = append(c.categories, normalizedCategory{
			category:    cat,
			name:        ranking.Normalize(cat.Name),
			description: ranking.Normalize(cat.Description),
			keywords:    normalizeAll(cat.Keywords),
			synonyms:    normalizeAll(cat.Synonyms),
		})
	}
	return c
}

// Classify returns the categories matching term, best first. Categories that
// score zero are omitted.
func (c *CategoryClassifier) Classify(term string) []models.CategorySuggestion {
	t, _ := ranking.NormalizeTerm(term)
	suggestions := make([]models.CategorySuggestion, 0)
	if t == "" {
		return suggestions
	}

	for _, nc := range c.categories {
		score := c.scoreCategory(nc, t)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, models.CategorySuggestion{
			Key:         nc.category.Key,
			Name:        nc.category.Name,
			Description: nc.category.Description,
			Score:       score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Key < suggestions[j].Key
	})
	return suggestions
}

// Categories returns the taxonomy the classifier was built with.
func (c *CategoryClassifier) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, nc := range c.categories {
		out[i] = nc.category
	}
	return out
}

func (c *CategoryClassifier) scoreCategory(nc normalizedCategory, t string) float64 {
	best := 0.0
	consider := func(ok bool, score float64) {
		if ok && score > best {
			best = score
		}
	}

	consider(ranking.Prefix(nc.name, t), scoreNamePrefix)
	consider(ranking.Contains(nc.name, t), scoreNameContains)

	for _, kw := range nc.keywords {
		consider(ranking.Prefix(kw, t), scoreKeywordPrefix)
		consider(ranking.Contains(kw, t), scoreKeywordContains)
		consider(ranking.Fuzzy(kw, t), scoreKeywordFuzzy)
	}
	for _, syn := range nc.synonyms {
		consider(ranking.Prefix(syn, t), scoreSynonymPrefix)
		consider(ranking.Contains(syn, t), scoreSynonymContains)
	}

	consider(ranking.Contains(nc.description, t), scoreDescriptionMatch)
	return best
}

func normalizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = ranking.Normalize(v)
	}
	return out
}
