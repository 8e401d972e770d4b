package ranking

import (
	"sort"

	"github.com/hyperjump/katalog/internal/models"
)

// Ranker combines all scorers and multipliers to rank catalog records.
type Ranker struct {
	config      *RankingConfig
	analyzer    *QueryAnalyzer
	scorers     []Scorer
	multipliers []Multiplier
	typeahead   *TypeaheadScorer
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{
		config:   config,
		analyzer: NewQueryAnalyzer(),
		scorers: []Scorer{
			NewNameScorer(&config.Search),
			NewFieldScorer(&config.Search),
			NewMetadataScorer(&config.Search),
		},
		multipliers: []Multiplier{NewMultiWordMultiplier(&config.Search)},
		typeahead:   NewTypeaheadScorer(&config.Typeahead),
	}
}

// AnalyzeQuery parses and analyzes a query string.
func (r *Ranker) AnalyzeQuery(query string) *AnalyzedQuery {
	return r.analyzer.Analyze(query)
}

// Score calculates the final score for a record and the matches behind it.
// A score of zero means the record does not match.
func (r *Ranker) Score(query *AnalyzedQuery, rec *models.CatalogRecord) (float64, []models.SearchMatch) {
	ctx := NewScoringContext(query, rec)
	score := 0.0
	for _, s := range r.scorers {
		score += s.Score(ctx)
	}
	score = ApplyMultipliers(ctx, score, r.multipliers)
	return score, ctx.Matches
}

// RankRecords scores records against query, drops non-matches and sorts by
// score descending, then normalized name, then id.
func (r *Ranker) RankRecords(query *AnalyzedQuery, records []*models.CatalogRecord) []*RankedResult {
	results := make([]*RankedResult, 0, len(records))
	if query.IsEmpty() {
		return results
	}

	for _, rec := range records {
		score, matches := r.Score(query, rec)
		if score > 0 {
			results = append(results, &RankedResult{
				Record:  rec,
				Score:   score,
				Matches: matches,
			})
		}
	}

	SortResults(results)
	return results
}

// RankTypeahead scores records for a normalized prefix and sorts the hits
// the same way RankRecords does.
func (r *Ranker) RankTypeahead(prefix string, records []*models.CatalogRecord) []*RankedResult {
	results := make([]*RankedResult, 0)
	for _, rec := range records {
		if score := r.typeahead.Score(prefix, rec); score > 0 {
			results = append(results, &RankedResult{Record: rec, Score: score})
		}
	}
	SortResults(results)
	return results
}

// GetConfig returns the ranking configuration.
func (r *Ranker) GetConfig() *RankingConfig {
	return r.config
}

// SortResults orders results by score descending with deterministic ties.
func SortResults(results []*RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		ni, nj := Normalize(results[i].Record.Name), Normalize(results[j].Record.Name)
		if ni != nj {
			return ni < nj
		}
		return results[i].Record.ID < results[j].Record.ID
	})
}

// TopN returns the top N results.
func TopN(results []*RankedResult, n int) []*RankedResult {
	if n >= len(results) {
		return results
	}
	return results[:n]
}

// Paginate returns a page of results.
func Paginate(results []*RankedResult, offset, limit int) []*RankedResult {
	if offset >= len(results) {
		return nil
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
