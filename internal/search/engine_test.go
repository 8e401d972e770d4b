package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/katalog/internal/catalog"
	"github.com/hyperjump/katalog/internal/models"
)

var errBoom = errors.New("boom")

// failingReader fails every read, so tests can prove a path never touches the catalog.
type failingReader struct{}

func (failingReader) ListTenantCatalog(context.Context, string) ([]*models.CatalogRecord, error) {
	return nil, errBoom
}

func (failingReader) ListPublicCatalog(context.Context) ([]*models.CatalogRecord, error) {
	return nil, errBoom
}

func record(tenant, id, name, category string, status models.Status, city string, subs ...string) *models.CatalogRecord {
	return &models.CatalogRecord{
		ID:              id,
		TenantID:        tenant,
		Name:            name,
		Slug:            id,
		CategoryKey:     category,
		SubcategoryKeys: subs,
		Status:          status,
		Metadata:        &models.Metadata{City: city},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := catalog.NewMemoryCatalog(
		record("oslo", "t1", "Tennisbane 1", "SPORT", models.StatusPublished, "Oslo", "TENNIS"),
		record("oslo", "t2", "Tennisbane 2", "SPORT", models.StatusDraft, "Oslo", "TENNIS"),
		record("oslo", "m1", "Møterom A", "LOKALER", models.StatusPublished, "Oslo", "MOTEROM"),
		record("oslo", "d1", "Tennishall gammel", "SPORT", models.StatusDeleted, "Bergen"),
		record("oslo", "k1", "Konsertsal", "ARRANGEMENTER", models.StatusPublished, "Bergen"),
		record("bergen", "b1", "Bergen tennisklubb", "SPORT", models.StatusPublished, "Bergen"),
	)
	return NewEngine(store, nil)
}

func resultIDs(resp *models.SearchResponse) []string {
	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestEngine_Search(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resp, err := engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total, "deleted records are excluded without a status filter")
	assert.Equal(t, []string{"t1", "t2"}, resultIDs(resp), "equal scores break ties by name")
	assert.Equal(t, resp.Results[0].Score, resp.Results[1].Score)
	assert.False(t, resp.HasMore)
	assert.Empty(t, resp.CategorySuggestions, "tenant search has no suggestions")
	assert.Nil(t, resp.Results[0].Metadata)
	for _, r := range resp.Results {
		assert.Greater(t, r.Score, 0.0)
		assert.NotEmpty(t, r.Matches)
	}

	resp, err = engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis", Status: models.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, resultIDs(resp))

	resp, err = engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis", Status: models.StatusDeleted})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, resultIDs(resp))

	resp, err = engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis", CategoryKey: "LOKALER"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Results)

	resp, err = engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis", IncludeMetadata: true})
	require.NoError(t, err)
	require.NotNil(t, resp.Results[0].Metadata)
	assert.Equal(t, "Oslo", resp.Results[0].Metadata.City)

	_, err = engine.Search(ctx, "", &models.SearchQuery{Query: "tennis"})
	assert.ErrorIs(t, err, catalog.ErrTenantRequired)
}

func TestEngine_SearchFuzzy(t *testing.T) {
	engine := newTestEngine(t)

	resp, err := engine.Search(context.Background(), "oslo", &models.SearchQuery{Query: "tenis"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, resultIDs(resp))
	assert.NotContains(t, resultIDs(resp), "m1")
}

func TestEngine_EmptyQuery(t *testing.T) {
	engine := NewEngine(failingReader{}, nil)
	ctx := context.Background()

	resp, err := engine.Search(ctx, "oslo", &models.SearchQuery{Query: "   "})
	require.NoError(t, err, "empty queries must not read the catalog")
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.PopularSuggestions)

	resp, err = engine.PublicSearch(ctx, &models.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	require.Len(t, resp.PopularSuggestions, 3)
	assert.Equal(t, []float64{85, 80, 75}, []float64{
		resp.PopularSuggestions[0].Score,
		resp.PopularSuggestions[1].Score,
		resp.PopularSuggestions[2].Score,
	})
}

func TestEngine_ReaderErrorsPropagate(t *testing.T) {
	engine := NewEngine(failingReader{}, nil)
	ctx := context.Background()

	_, err := engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennis"})
	assert.ErrorIs(t, err, errBoom)
	_, err = engine.PublicSearch(ctx, &models.SearchQuery{Query: "tennis"})
	assert.ErrorIs(t, err, errBoom)
	_, err = engine.Typeahead(ctx, "oslo", &models.TypeaheadQuery{Prefix: "tennis"})
	assert.ErrorIs(t, err, errBoom)
	_, err = engine.Facets(ctx, "oslo", &models.FacetQuery{})
	assert.ErrorIs(t, err, errBoom)
	_, err = engine.PublicSuggestions(ctx, &models.SuggestionQuery{})
	assert.ErrorIs(t, err, errBoom)
}

func TestEngine_PublicSearch(t *testing.T) {
	engine := newTestEngine(t)

	resp, err := engine.PublicSearch(context.Background(), &models.SearchQuery{Query: "tennis"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "b1"}, resultIDs(resp), "only published records across tenants")

	require.NotEmpty(t, resp.CategorySuggestions)
	sport := resp.CategorySuggestions[0]
	assert.Equal(t, "SPORT", sport.Key)
	require.NotNil(t, sport.Count)
	assert.Equal(t, 2, *sport.Count)

	resp, err = engine.PublicSearch(context.Background(), &models.SearchQuery{
		Query:                      "tennis",
		IncludeCategorySuggestions: models.Bool(false),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CategorySuggestions)
}

func TestEngine_PublicSearchLocationSuggestions(t *testing.T) {
	engine := newTestEngine(t)

	resp, err := engine.PublicSearch(context.Background(), &models.SearchQuery{Query: "oslo"})
	require.NoError(t, err)

	var location *models.IntentSuggestion
	for i := range resp.IntentSuggestions {
		if resp.IntentSuggestions[i].Kind == models.KindLocation {
			location = &resp.IntentSuggestions[i]
		}
	}
	require.NotNil(t, location)
	assert.Equal(t, "Oslo", location.Key)
	assert.Equal(t, float64(locationPrefixScore), location.Score)
	assert.Equal(t, locationAction, location.Action)
}

func TestEngine_Pagination(t *testing.T) {
	var recs []*models.CatalogRecord
	for i := 1; i <= 20; i++ {
		recs = append(recs, record("oslo", fmt.Sprintf("r%02d", i), fmt.Sprintf("Tennisbane %02d", i),
			"SPORT", models.StatusPublished, "Oslo"))
	}
	engine := NewEngine(catalog.NewMemoryCatalog(recs...), nil)
	ctx := context.Background()

	for _, tc := range []struct {
		offset, limit int
		want          int
		hasMore       bool
	}{
		{0, 5, 5, true},
		{15, 5, 5, false},
		{18, 5, 2, false},
		{25, 5, 0, false},
	} {
		resp, err := engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennisbane", Offset: tc.offset, Limit: tc.limit})
		require.NoError(t, err)
		assert.Equal(t, 20, resp.Total)
		assert.Len(t, resp.Results, tc.want, "offset %d", tc.offset)
		assert.NotNil(t, resp.Results)
		assert.Equal(t, tc.hasMore, resp.HasMore, "offset %d", tc.offset)
	}

	resp, err := engine.Search(ctx, "oslo", &models.SearchQuery{Query: "tennisbane", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r02", "r03"}, resultIDs(resp))
}

func TestEngine_SearchIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.PublicSearch(ctx, &models.SearchQuery{Query: "tennis"})
	require.NoError(t, err)
	second, err := engine.PublicSearch(ctx, &models.SearchQuery{Query: "tennis"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngine_Typeahead(t *testing.T) {
	var recs []*models.CatalogRecord
	for i := 1; i <= 20; i++ {
		recs = append(recs, record("oslo", fmt.Sprintf("r%02d", i), fmt.Sprintf("Tennisbane %02d", i),
			"SPORT", models.StatusPublished, "Oslo"))
	}
	engine := NewEngine(catalog.NewMemoryCatalog(recs...), nil)

	resp, err := engine.Typeahead(context.Background(), "oslo", &models.TypeaheadQuery{Prefix: "ten", Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 5)
	for i, s := range resp.Suggestions {
		assert.Equal(t, fmt.Sprintf("r%02d", i+1), s.ID)
		assert.Equal(t, 100.0, s.Score)
		assert.Equal(t, "Oslo", s.City)
	}
}

func TestEngine_TypeaheadMinLength(t *testing.T) {
	engine := NewEngine(failingReader{}, nil)
	ctx := context.Background()

	resp, err := engine.Typeahead(ctx, "oslo", &models.TypeaheadQuery{Prefix: "t"})
	require.NoError(t, err, "short tenant prefixes must not read the catalog")
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)

	resp, err = engine.PublicTypeahead(ctx, &models.TypeaheadQuery{Prefix: " "})
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)

	_, err = engine.PublicTypeahead(ctx, &models.TypeaheadQuery{Prefix: "t"})
	assert.ErrorIs(t, err, errBoom, "one character is enough on the public path")

	_, err = engine.Typeahead(ctx, "", &models.TypeaheadQuery{Prefix: "tennis"})
	assert.ErrorIs(t, err, catalog.ErrTenantRequired)
}

func TestEngine_TypeaheadCategorySuggestions(t *testing.T) {
	engine := newTestEngine(t)

	resp, err := engine.PublicTypeahead(context.Background(), &models.TypeaheadQuery{Prefix: "tennis"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Suggestions)
	require.NotEmpty(t, resp.CategorySuggestions)
	assert.Equal(t, "SPORT", resp.CategorySuggestions[0].Key)
	for _, s := range resp.Suggestions {
		assert.NotEqual(t, "t2", s.ID, "drafts are not public")
	}
}

func TestEngine_Facets(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resp, err := engine.Facets(ctx, "oslo", &models.FacetQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, []models.FacetCount{{Key: "SPORT", Count: 2}, {Key: "LOKALER", Count: 1}, {Key: "ARRANGEMENTER", Count: 1}}, resp.Categories)
	assert.Equal(t, []models.FacetCount{{Key: "TENNIS", Count: 2}, {Key: "MOTEROM", Count: 1}}, resp.Subcategories)
	assert.Equal(t, []models.FacetCount{{Key: "Oslo", Count: 3}, {Key: "Bergen", Count: 1}}, resp.Cities)
	assert.Equal(t, []models.FacetCount{{Key: "published", Count: 3}, {Key: "draft", Count: 1}}, resp.Statuses)

	resp, err = engine.Facets(ctx, "oslo", &models.FacetQuery{SearchTerm: "tennis"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []models.FacetCount{{Key: "SPORT", Count: 2}}, resp.Categories)

	resp, err = engine.Facets(ctx, "oslo", &models.FacetQuery{SearchTerm: "t"})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total, "terms shorter than two characters are ignored")

	resp, err = engine.PublicFacets(ctx, &models.FacetQuery{CategoryKey: "SPORT"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []models.FacetCount{{Key: "published", Count: 2}}, resp.Statuses)
}

func TestEngine_FacetsSortedByCount(t *testing.T) {
	store := catalog.NewMemoryCatalog(
		record("oslo", "m1", "Møterom A", "LOKALER", models.StatusDraft, "Bergen", "MOTEROM"),
		record("oslo", "t1", "Tennisbane 1", "SPORT", models.StatusPublished, "Oslo", "TENNIS", "TENNIS"),
		record("oslo", "t2", "Tennisbane 2", "SPORT", models.StatusPublished, "Oslo", "TENNIS"),
		record("oslo", "k1", "Konsertsal", "ARRANGEMENTER", models.StatusArchived, "Trondheim"),
	)
	engine := NewEngine(store, nil)

	resp, err := engine.Facets(context.Background(), "oslo", &models.FacetQuery{})
	require.NoError(t, err)
	assert.Equal(t, []models.FacetCount{{Key: "SPORT", Count: 2}, {Key: "LOKALER", Count: 1}, {Key: "ARRANGEMENTER", Count: 1}}, resp.Categories,
		"higher counts first, ties keep first-seen order")
	assert.Equal(t, []models.FacetCount{{Key: "TENNIS", Count: 3}, {Key: "MOTEROM", Count: 1}}, resp.Subcategories,
		"every subcategory entry is counted")
	assert.Equal(t, []models.FacetCount{{Key: "Oslo", Count: 2}, {Key: "Bergen", Count: 1}, {Key: "Trondheim", Count: 1}}, resp.Cities)
	assert.Equal(t, []models.FacetCount{{Key: "published", Count: 2}, {Key: "draft", Count: 1}, {Key: "archived", Count: 1}}, resp.Statuses)
}

// sliceReader serves fixed corpora, including nil entries a MemoryCatalog would never hold.
type sliceReader struct {
	records []*models.CatalogRecord
}

func (r sliceReader) ListTenantCatalog(context.Context, string) ([]*models.CatalogRecord, error) {
	return r.records, nil
}

func (r sliceReader) ListPublicCatalog(context.Context) ([]*models.CatalogRecord, error) {
	return r.records, nil
}

func TestEngine_NilRecordsAreSkipped(t *testing.T) {
	engine := NewEngine(sliceReader{records: []*models.CatalogRecord{
		nil,
		record("oslo", "t1", "Tennisbane Oslo", "SPORT", models.StatusPublished, "Oslo"),
		nil,
	}}, nil)
	ctx := context.Background()

	resp, err := engine.PublicSearch(ctx, &models.SearchQuery{Query: "oslo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, resultIDs(resp))
	var locations []string
	for _, s := range resp.IntentSuggestions {
		if s.Kind == models.KindLocation {
			locations = append(locations, s.Key)
		}
	}
	assert.Equal(t, []string{"Oslo"}, locations)

	facets, err := engine.PublicFacets(ctx, &models.FacetQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, facets.Total)
}

func TestEngine_NilQueries(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	resp, err := engine.Search(ctx, "oslo", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)

	public, err := engine.PublicSearch(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, public.PopularSuggestions, 3)

	ta, err := engine.Typeahead(ctx, "oslo", nil)
	require.NoError(t, err)
	assert.Empty(t, ta.Suggestions)

	facets, err := engine.Facets(ctx, "oslo", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, facets.Total)

	suggestions, err := engine.Suggestions(ctx, "oslo", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)
}

func TestEngine_Suggestions(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	got, err := engine.Suggestions(ctx, "oslo", &models.SuggestionQuery{})
	require.NoError(t, err)
	assert.Equal(t, []models.Suggestion{
		{Type: models.ValueCategory, Value: "SPORT"},
		{Type: models.ValueCategory, Value: "LOKALER"},
		{Type: models.ValueCategory, Value: "ARRANGEMENTER"},
		{Type: models.ValueSubcategory, Value: "TENNIS"},
		{Type: models.ValueSubcategory, Value: "MOTEROM"},
		{Type: models.ValueCity, Value: "Oslo"},
		{Type: models.ValueCity, Value: "Bergen"},
	}, got)

	got, err = engine.Suggestions(ctx, "oslo", &models.SuggestionQuery{Prefix: "O"})
	require.NoError(t, err)
	assert.Equal(t, []models.Suggestion{{Type: models.ValueCity, Value: "Oslo"}}, got)

	got, err = engine.Suggestions(ctx, "oslo", &models.SuggestionQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = engine.Suggestions(ctx, "trondheim", &models.SuggestionQuery{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = engine.Suggestions(ctx, "", &models.SuggestionQuery{})
	assert.ErrorIs(t, err, catalog.ErrTenantRequired)
}
