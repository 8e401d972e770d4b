package search

import (
	"context"
	"sort"
	"time"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/metrics"
	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

// Location suggestion scores and action.
const (
	locationPrefixScore   = 70
	locationContainsScore = 50
	locationAction        = "filter_city"
)

// Suggestions returns distinct category, subcategory and city values from one
// tenant's filtered catalog, optionally restricted to a prefix.
func (e *Engine) Suggestions(ctx context.Context, tenantID string, query *models.SuggestionQuery) ([]models.Suggestion, error) {
	if tenantID == "" {
		return nil, catalog.ErrTenantRequired
	}
	return e.suggestions(ctx, tenantScope(tenantID), query)
}

// PublicSuggestions returns distinct values from the published catalog.
func (e *Engine) PublicSuggestions(ctx context.Context, query *models.SuggestionQuery) ([]models.Suggestion, error) {
	return e.suggestions(ctx, publicScope, query)
}

func (e *Engine) suggestions(ctx context.Context, sc scope, query *models.SuggestionQuery) (out []models.Suggestion, err error) {
	defer func(start time.Time) {
		metrics.ObserveOperation("suggestions", sc.name(), start, len(out), err)
	}(time.Now())

	if query == nil {
		query = &models.SuggestionQuery{}
	}
	query.ApplyDefaults(models.Limits{Default: e.config.SuggestionLimit, Max: e.config.MaxLimit})

	corpus, err := e.load(ctx, sc)
	if err != nil {
		return nil, err
	}

	filter := recordFilter{
		status:         query.Status,
		categoryKey:    query.CategoryKey,
		subcategoryKey: query.SubcategoryKey,
		excludeDeleted: !sc.public,
	}
	records := filter.apply(corpus)
	prefix, _ := ranking.NormalizeTerm(query.Prefix)

	c := &suggestionCollector{prefix: prefix, limit: query.Limit, seen: make(map[models.Suggestion]bool), out: []models.Suggestion{}}
	for _, rec := range records {
		c.add(models.ValueCategory, rec.CategoryKey)
	}
	for _, rec := range records {
		for _, sub := range rec.SubcategoryKeys {
			c.add(models.ValueSubcategory, sub)
		}
	}
	for _, rec := range records {
		c.add(models.ValueCity, rec.City())
	}
	return c.out, nil
}

type suggestionCollector struct {
	prefix string
	limit  int
	seen   map[models.Suggestion]bool
	out    []models.Suggestion
}

func (c *suggestionCollector) add(typ models.ValueType, value string) {
	if value == "" || len(c.out) >= c.limit {
		return
	}
	if c.prefix != "" && !ranking.Prefix(ranking.Normalize(value), c.prefix) {
		return
	}
	s := models.Suggestion{Type: typ, Value: value}
	if c.seen[s] {
		return
	}
	c.seen[s] = true
	c.out = append(c.out, s)
}

// locationSuggestions proposes filtering by a city whose name matches the
// normalized term. Each distinct city appears once.
func locationSuggestions(corpus []*models.CatalogRecord, term string) []models.IntentSuggestion {
	if term == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []models.IntentSuggestion
	for _, rec := range corpus {
		if rec == nil {
			continue
		}
		city := rec.City()
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true

		normalized := ranking.Normalize(city)
		var score float64
		switch {
		case ranking.Prefix(normalized, term):
			score = locationPrefixScore
		case ranking.Contains(normalized, term):
			score = locationContainsScore
		default:
			continue
		}
		out = append(out, models.IntentSuggestion{
			Kind:   models.KindLocation,
			Key:    city,
			Label:  city,
			Score:  score,
			Action: locationAction,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
