package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/metrics"
	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

// Typeahead returns prefix suggestions from one tenant's catalog. Prefixes
// shorter than the tenant minimum return an empty response without reading
// the catalog.
func (e *Engine) Typeahead(ctx context.Context, tenantID string, query *models.TypeaheadQuery) (*models.TypeaheadResponse, error) {
	if tenantID == "" {
		return nil, catalog.ErrTenantRequired
	}
	return e.typeahead(ctx, tenantScope(tenantID), query, e.config.TenantTypeaheadMinLength)
}

// PublicTypeahead returns prefix suggestions from the published catalog.
func (e *Engine) PublicTypeahead(ctx context.Context, query *models.TypeaheadQuery) (*models.TypeaheadResponse, error) {
	return e.typeahead(ctx, publicScope, query, e.config.PublicTypeaheadMinLength)
}

func (e *Engine) typeahead(ctx context.Context, sc scope, query *models.TypeaheadQuery, minLength int) (resp *models.TypeaheadResponse, err error) {
	defer func(start time.Time) {
		n := 0
		if resp != nil {
			n = len(resp.Suggestions)
		}
		metrics.ObserveOperation("typeahead", sc.name(), start, n, err)
	}(time.Now())

	if query == nil {
		query = &models.TypeaheadQuery{}
	}
	query.ApplyDefaults(models.Limits{Default: e.config.TypeaheadLimit, Max: e.config.MaxLimit})
	resp = &models.TypeaheadResponse{Suggestions: []models.TypeaheadSuggestion{}}

	prefix, n := ranking.NormalizeTerm(query.Prefix)
	if n == 0 || n < minLength {
		return resp, nil
	}

	corpus, err := e.load(ctx, sc)
	if err != nil {
		return nil, err
	}

	filter := recordFilter{categoryKey: query.CategoryKey, excludeDeleted: true}
	ranked := ranking.TopN(e.ranker.RankTypeahead(prefix, filter.apply(corpus)), query.Limit)
	for _, r := range ranked {
		resp.Suggestions = append(resp.Suggestions, toTypeaheadSuggestion(r))
	}

	if query.WantsCategorySuggestions() {
		resp.CategorySuggestions = e.classifier.Classify(prefix)
	}

	e.logger.Debug("typeahead",
		zap.String("scope", sc.name()),
		zap.String("tenant", sc.tenantID),
		zap.String("prefix", prefix),
		zap.Int("suggestions", len(resp.Suggestions)))
	return resp, nil
}

func toTypeaheadSuggestion(r *ranking.RankedResult) models.TypeaheadSuggestion {
	rec := r.Record
	return models.TypeaheadSuggestion{
		ID:              rec.ID,
		Name:            rec.Name,
		Slug:            rec.Slug,
		CategoryKey:     rec.CategoryKey,
		SubcategoryKeys: rec.SubcategoryKeys,
		City:            rec.City(),
		Score:           r.Score,
	}
}
