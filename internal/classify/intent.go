package classify

import (
	"sort"

	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

const (
	intentScore = 90

	// Popular search scores. An empty query gets the head of the list with
	// descending scores.
	popularEmptyStart = 85
	popularEmptyStep  = 5
	popularEmptyCount = 3
	popularPrefix     = 75
	popularContains   = 60
)

type normalizedIntent struct {
	intent   Intent
	keywords []string
}

type normalizedPopular struct {
	entry PopularSearch
	term  string
	label string
}

// IntentDetector maps query terms to intents and popular searches.
// It is immutable after construction and safe for concurrent use.
type IntentDetector struct {
	intents []normalizedIntent
	popular []normalizedPopular
}

// NewIntentDetector creates a detector. Nil tables use the built-in defaults.
func NewIntentDetector(intents []Intent, popular []PopularSearch) *IntentDetector {
	if intents == nil {
		intents = DefaultIntents()
	}
	if popular == nil {
		popular = DefaultPopularSearches()
	}

	d := &IntentDetector{}
	for _, in := range intents {
		d.intents = append(d.intents, normalizedIntent{intent: in, keywords: normalizeAll(in.Keywords)})
	}
	for _, p := range popular {
		d.popular = append(d.popular, normalizedPopular{
			entry: p,
			term:  ranking.Normalize(p.Term),
			label: ranking.Normalize(p.Label),
		})
	}
	return d
}

// Detect returns at most one suggestion per intent. An intent matches on the
// first keyword that contains the term or that the term starts with.
func (d *IntentDetector) Detect(term string) []models.IntentSuggestion {
	t, _ := ranking.NormalizeTerm(term)
	suggestions := make([]models.IntentSuggestion, 0)
	if t == "" {
		return suggestions
	}

	for _, ni := range d.intents {
		for _, kw := range ni.keywords {
			if ranking.Contains(kw, t) || ranking.Prefix(t, kw) {
				suggestions = append(suggestions, models.IntentSuggestion{
					Kind:        models.KindIntent,
					Key:         ni.intent.Key,
					Label:       ni.intent.Label,
					Description: ni.intent.Description,
					Score:       intentScore,
					Action:      ni.intent.Action,
				})
				break
			}
		}
	}
	return suggestions
}

// Popular returns popular searches for term. For an empty term the first
// three entries are returned with scores 85, 80 and 75.
func (d *IntentDetector) Popular(term string) []models.IntentSuggestion {
	t, _ := ranking.NormalizeTerm(term)
	suggestions := make([]models.IntentSuggestion, 0)

	if t == "" {
		for i, np := range d.popular {
			if i == popularEmptyCount {
				break
			}
			suggestions = append(suggestions, popularSuggestion(np.entry, float64(popularEmptyStart-i*popularEmptyStep)))
		}
		return suggestions
	}

	for _, np := range d.popular {
		switch {
		case ranking.Prefix(np.term, t) || ranking.Prefix(np.label, t):
			suggestions = append(suggestions, popularSuggestion(np.entry, popularPrefix))
		case ranking.Contains(np.term, t) || ranking.Contains(np.label, t):
			suggestions = append(suggestions, popularSuggestion(np.entry, popularContains))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}

func popularSuggestion(p PopularSearch, score float64) models.IntentSuggestion {
	return models.IntentSuggestion{
		Kind:     models.KindPopular,
		Key:      p.Term,
		Label:    p.Label,
		Score:    score,
		Action:   "search",
		Category: p.Category,
	}
}
