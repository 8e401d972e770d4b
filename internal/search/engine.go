// Package search provides the catalog search engine: full search, typeahead,
// facets and value suggestions over a per-call corpus snapshot.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/classify"
	"github.com/hyperjump/katalog/internal/config"
	"github.com/hyperjump/katalog/internal/metrics"
	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/ranking"
)

// Engine ranks catalog records fetched fresh from a catalog.Reader on every
// call. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	reader     catalog.Reader
	ranker     *ranking.Ranker
	classifier *classify.CategoryClassifier
	intents    *classify.IntentDetector
	config     *config.SearchConfig
	logger     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRanker replaces the default ranker, e.g. one built from configured weights.
func WithRanker(r *ranking.Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// WithClassifier replaces the default category classifier.
func WithClassifier(c *classify.CategoryClassifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithIntentDetector replaces the default intent detector.
func WithIntentDetector(d *classify.IntentDetector) Option {
	return func(e *Engine) { e.intents = d }
}

// NewEngine creates a search engine reading from reader. A nil cfg uses defaults.
func NewEngine(reader catalog.Reader, cfg *config.SearchConfig, opts ...Option) *Engine {
	if cfg == nil {
		defaults := &config.Config{}
		config.ApplyDefaults(defaults)
		cfg = &defaults.Search
	}
	e := &Engine{
		reader: reader,
		config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ranker == nil {
		e.ranker = ranking.NewRanker(nil)
	}
	if e.classifier == nil {
		e.classifier = classify.NewCategoryClassifier(nil)
	}
	if e.intents == nil {
		e.intents = classify.NewIntentDetector(nil, nil)
	}
	return e
}

// scope selects the corpus a call runs over.
type scope struct {
	tenantID string
	public   bool
}

func (s scope) name() string {
	if s.public {
		return "public"
	}
	return "tenant"
}

func tenantScope(tenantID string) scope { return scope{tenantID: tenantID} }

var publicScope = scope{public: true}

// load fetches the corpus for the scope. Reader errors are returned wrapped.
func (e *Engine) load(ctx context.Context, sc scope) ([]*models.CatalogRecord, error) {
	if sc.public {
		recs, err := e.reader.ListPublicCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("list public catalog: %w", err)
		}
		return recs, nil
	}
	recs, err := e.reader.ListTenantCatalog(ctx, sc.tenantID)
	if err != nil {
		return nil, fmt.Errorf("list catalog for tenant %s: %w", sc.tenantID, err)
	}
	return recs, nil
}

func (e *Engine) searchLimits() models.Limits {
	return models.Limits{Default: e.config.DefaultLimit, Max: e.config.MaxLimit}
}

// Search runs a full search over one tenant's catalog. Without an explicit
// status, deleted records are excluded.
func (e *Engine) Search(ctx context.Context, tenantID string, query *models.SearchQuery) (*models.SearchResponse, error) {
	if tenantID == "" {
		return nil, catalog.ErrTenantRequired
	}
	return e.search(ctx, tenantScope(tenantID), query)
}

// PublicSearch runs a full search over the published catalog and adds
// category, intent, location and popular suggestions.
func (e *Engine) PublicSearch(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	return e.search(ctx, publicScope, query)
}

func (e *Engine) search(ctx context.Context, sc scope, query *models.SearchQuery) (resp *models.SearchResponse, err error) {
	defer func(start time.Time) {
		total := 0
		if resp != nil {
			total = resp.Total
		}
		metrics.ObserveOperation("search", sc.name(), start, total, err)
	}(time.Now())

	if query == nil {
		query = &models.SearchQuery{}
	}
	query.ApplyDefaults(e.searchLimits())
	analyzed := e.ranker.AnalyzeQuery(query.Query)

	if analyzed.IsEmpty() {
		resp = models.EmptySearchResponse(query.Query)
		if sc.public {
			resp.PopularSuggestions = e.intents.Popular("")
		}
		return resp, nil
	}

	var categories []models.CategorySuggestion
	var intents, popular []models.IntentSuggestion
	if sc.public {
		if query.WantsCategorySuggestions() {
			categories = e.classifier.Classify(analyzed.Normalized)
		}
		intents = e.intents.Detect(analyzed.Normalized)
		popular = e.intents.Popular(analyzed.Normalized)
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
	ranked := e.ranker.RankRecords(analyzed, filter.apply(corpus))
	resp = buildSearchResponse(ranked, query)

	if sc.public {
		resp.CategorySuggestions = annotateCounts(categories, corpus)
		resp.IntentSuggestions = append(intents, locationSuggestions(corpus, analyzed.Normalized)...)
		resp.PopularSuggestions = popular
	}

	e.logger.Debug("search",
		zap.String("scope", sc.name()),
		zap.String("tenant", sc.tenantID),
		zap.String("term", analyzed.Normalized),
		zap.Int("corpus", len(corpus)),
		zap.Int("total", resp.Total))
	return resp, nil
}

// buildSearchResponse pages ranked results and projects them for display.
func buildSearchResponse(ranked []*ranking.RankedResult, query *models.SearchQuery) *models.SearchResponse {
	resp := models.EmptySearchResponse(query.Query)
	resp.Total = len(ranked)
	resp.HasMore = query.Offset+query.Limit < resp.Total

	for _, r := range ranking.Paginate(ranked, query.Offset, query.Limit) {
		resp.Results = append(resp.Results, toResultItem(r, query.IncludeMetadata))
	}
	return resp
}

func toResultItem(r *ranking.RankedResult, includeMetadata bool) *models.SearchResultItem {
	rec := r.Record
	item := &models.SearchResultItem{
		ID:              rec.ID,
		Name:            rec.Name,
		Slug:            rec.Slug,
		Description:     rec.Description,
		CategoryKey:     rec.CategoryKey,
		SubcategoryKeys: rec.SubcategoryKeys,
		Status:          rec.Status,
		Images:          rec.Images,
		Score:           r.Score,
		Matches:         r.Matches,
	}
	if item.Matches == nil {
		item.Matches = []models.SearchMatch{}
	}
	if includeMetadata {
		item.Metadata = rec.Metadata
	}
	return item
}

// annotateCounts sets the number of corpus records in each suggested category.
func annotateCounts(suggestions []models.CategorySuggestion, corpus []*models.CatalogRecord) []models.CategorySuggestion {
	if len(suggestions) == 0 {
		return suggestions
	}
	counts := make(map[string]int)
	for _, rec := range corpus {
		if rec != nil && rec.CategoryKey != "" {
			counts[rec.CategoryKey]++
		}
	}
	for i := range suggestions {
		n := counts[suggestions[i].Key]
		suggestions[i].Count = &n
	}
	return suggestions
}
