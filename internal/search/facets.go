package search

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/metrics"
	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

// Facets counts categories, subcategories, cities and statuses over one
// tenant's filtered catalog. A search term narrows the corpus to records
// that match it.
func (e *Engine) Facets(ctx context.Context, tenantID string, query *models.FacetQuery) (*models.FacetResponse, error) {
	if tenantID == "" {
		return nil, catalog.ErrTenantRequired
	}
	return e.facets(ctx, tenantScope(tenantID), query)
}

// PublicFacets counts facets over the published catalog.
func (e *Engine) PublicFacets(ctx context.Context, query *models.FacetQuery) (*models.FacetResponse, error) {
	return e.facets(ctx, publicScope, query)
}

func (e *Engine) facets(ctx context.Context, sc scope, query *models.FacetQuery) (resp *models.FacetResponse, err error) {
	defer func(start time.Time) {
		total := 0
		if resp != nil {
			total = resp.Total
		}
		metrics.ObserveOperation("facets", sc.name(), start, total, err)
	}(time.Now())

	if query == nil {
		query = &models.FacetQuery{}
	}
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

	if _, n := ranking.NormalizeTerm(query.SearchTerm); n >= e.config.FacetMinTermLength && n > 0 {
		ranked := e.ranker.RankRecords(e.ranker.AnalyzeQuery(query.SearchTerm), records)
		records = make([]*models.CatalogRecord, 0, len(ranked))
		for _, r := range ranked {
			records = append(records, r.Record)
		}
	}

	resp = aggregateFacets(records)
	e.logger.Debug("facets",
		zap.String("scope", sc.name()),
		zap.String("tenant", sc.tenantID),
		zap.Int("total", resp.Total))
	return resp, nil
}

// facetCounter counts keys and remembers the order they were first seen in.
type facetCounter struct {
	order  []string
	counts map[string]int
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (c *facetCounter) add(key string) {
	if key == "" {
		return
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// result returns the buckets by count descending; equal counts keep
// first-seen order.
func (c *facetCounter) result() []models.FacetCount {
	out := make([]models.FacetCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, models.FacetCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func aggregateFacets(records []*models.CatalogRecord) *models.FacetResponse {
	categories := newFacetCounter()
	subcategories := newFacetCounter()
	cities := newFacetCounter()
	statuses := newFacetCounter()

	for _, rec := range records {
		categories.add(rec.CategoryKey)
		for _, sub := range rec.SubcategoryKeys {
			subcategories.add(sub)
		}
		cities.add(rec.City())
		statuses.add(string(rec.Status))
	}

	return &models.FacetResponse{
		Total:         len(records),
		Categories:    categories.result(),
		Subcategories: subcategories.result(),
		Cities:        cities.result(),
		Statuses:      statuses.result(),
	}
}
