package ranking

import (
	"testing"

	"github.com/hyperjump/katalog/internal/models"
)

func record(id, name, slug, category string) *models.CatalogRecord {
	return &models.CatalogRecord{
		ID:          id,
		Name:        name,
		Slug:        slug,
		CategoryKey: category,
		Status:      models.StatusPublished,
	}
}

func TestNewRanker(t *testing.T) {
	// With nil config - should use defaults
	ranker := NewRanker(nil)
	if ranker == nil {
		t.Fatal("Expected non-nil ranker")
	}
	if ranker.GetConfig().Search.NameExact != 100 {
		t.Errorf("Expected default NameExact 100, got %v", ranker.GetConfig().Search.NameExact)
	}

	// Partial config keeps explicit values
	config := &RankingConfig{Search: SearchWeights{NamePrefix: 70}}
	ranker = NewRanker(config)
	if ranker.GetConfig().Search.NamePrefix != 70 {
		t.Errorf("Expected NamePrefix 70, got %v", ranker.GetConfig().Search.NamePrefix)
	}
	if ranker.GetConfig().Typeahead.NamePrefix != 100 {
		t.Errorf("Expected typeahead NamePrefix default 100, got %v", ranker.GetConfig().Typeahead.NamePrefix)
	}
}

func TestRanker_AnalyzeQuery(t *testing.T) {
	ranker := NewRanker(nil)

	query := ranker.AnalyzeQuery("  Tennis  Ås ")
	if query.Normalized != "tennis  as" {
		t.Errorf("Normalized = %q", query.Normalized)
	}
	if len(query.Terms) != 2 {
		t.Errorf("Expected 2 terms, got %d", len(query.Terms))
	}
	if !query.IsMultiWord() {
		t.Error("Expected multi-word query")
	}
	if !ranker.AnalyzeQuery("   ").IsEmpty() {
		t.Error("Expected whitespace query to be empty")
	}
}

func TestRanker_Score_NameChain(t *testing.T) {
	ranker := NewRanker(nil)

	tests := []struct {
		name     string
		query    string
		rec      *models.CatalogRecord
		want     float64
		wantKind models.MatchKind
	}{
		{
			name:     "exact",
			query:    "tennis",
			rec:      record("1", "Tennis", "bane-1", "SPORT"),
			want:     100,
			wantKind: models.MatchExact,
		},
		{
			name:     "prefix with folded letters",
			query:    "møte",
			rec:      record("2", "Møterom A", "rom-a", "LOKALER"),
			want:     80,
			wantKind: models.MatchPrefix,
		},
		{
			name:     "word boundary",
			query:    "kultur",
			rec:      record("3", "Store sal - Kulturhuset", "store-sal", "LOKALER"),
			want:     75,
			wantKind: models.MatchBoundary,
		},
		{
			name:     "contains",
			query:    "hall",
			rec:      record("4", "Idrettshall", "idrett", "SPORT"),
			want:     60,
			wantKind: models.MatchContains,
		},
		{
			name:     "fuzzy",
			query:    "tenis",
			rec:      record("5", "Tennisbane 1", "tennisbane-1", "SPORT"),
			want:     45,
			wantKind: models.MatchFuzzy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matches := ranker.Score(ranker.AnalyzeQuery(tt.query), tt.rec)
			if score != tt.want {
				t.Errorf("Score = %v, want %v", score, tt.want)
			}
			if len(matches) == 0 || matches[0].Field != "name" || matches[0].Kind != tt.wantKind {
				t.Errorf("Matches = %+v, want name match of kind %s", matches, tt.wantKind)
			}
		})
	}
}

func TestRanker_Score_FuzzyDoesNotMatchUnrelated(t *testing.T) {
	ranker := NewRanker(nil)
	score, matches := ranker.Score(ranker.AnalyzeQuery("tenis"), record("6", "Møterom A", "moterom-a", "LOKALER"))
	if score != 0 || len(matches) != 0 {
		t.Errorf("Expected no match, got score %v and %d matches", score, len(matches))
	}
}

func TestRanker_Score_AdditiveFields(t *testing.T) {
	ranker := NewRanker(nil)
	rec := record("7", "Hall A", "tennis-hall", "SPORT")
	rec.SubcategoryKeys = []string{"TENNIS", "PADEL"}
	rec.Description = "Innendørs tennis for alle"
	rec.Features = []models.Feature{{Name: "Tennisnett", Value: "2"}}

	score, matches := ranker.Score(ranker.AnalyzeQuery("tennis"), rec)

	// slug 50 + subcategory 40 + description 35 + feature 30
	if score != 155 {
		t.Errorf("Score = %v, want 155", score)
	}
	if len(matches) != 4 {
		t.Errorf("Expected 4 matches, got %d: %+v", len(matches), matches)
	}
}

func TestRanker_Score_MultiWordBoost(t *testing.T) {
	rec := record("8", "Tennisbane Oslo", "bane", "SPORT")
	query := NewQueryAnalyzer().Analyze("tennisbane oslo")

	unboosted, _ := NewRanker(&RankingConfig{Search: SearchWeights{MultiWordBoost: 1}}).Score(query, rec)
	boosted, _ := NewRanker(nil).Score(query, rec)

	if unboosted != 100 {
		t.Fatalf("unboosted = %v, want 100", unboosted)
	}
	if boosted != unboosted*1.5 {
		t.Errorf("boosted = %v, want %v", boosted, unboosted*1.5)
	}
}

func TestRanker_Score_MatchesWheneverPositive(t *testing.T) {
	ranker := NewRanker(nil)
	records := []*models.CatalogRecord{
		record("1", "Tennisbane 1", "tennisbane-1", "SPORT"),
		record("2", "Møterom A", "moterom-a", "LOKALER"),
		record("3", "Konsertsal", "konsertsal", "ARRANGEMENTER"),
		{ID: "4", Name: "Torgplass", Slug: "torg", Metadata: &models.Metadata{City: "Oslo"}},
	}
	for _, q := range []string{"tenis", "oslo", "sal", "a", "lokaler", "xyz"} {
		query := ranker.AnalyzeQuery(q)
		for _, rec := range records {
			score, matches := ranker.Score(query, rec)
			if score > 0 && len(matches) == 0 {
				t.Errorf("query %q record %s: score %v without matches", q, rec.ID, score)
			}
			if score < 0 {
				t.Errorf("query %q record %s: negative score %v", q, rec.ID, score)
			}
		}
	}
}

func TestRanker_RankRecords(t *testing.T) {
	ranker := NewRanker(nil)
	records := []*models.CatalogRecord{
		record("b", "Tennisbane 2", "b2", "SPORT"),
		record("a", "Tennisbane 1", "b1", "SPORT"),
		record("c", "Tennis", "c", "SPORT"),
		record("d", "Møterom", "d", "LOKALER"),
	}

	results := ranker.RankRecords(ranker.AnalyzeQuery("tennis"), records)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].Record.ID != "c" {
		t.Errorf("Expected exact match first, got %s", results[0].Record.ID)
	}
	// Equal prefix scores fall back to name order.
	if results[1].Record.ID != "a" || results[2].Record.ID != "b" {
		t.Errorf("Unexpected tie order: %s, %s", results[1].Record.ID, results[2].Record.ID)
	}

	if got := ranker.RankRecords(ranker.AnalyzeQuery(" "), records); len(got) != 0 {
		t.Errorf("Expected no results for empty query, got %d", len(got))
	}
}

func TestSortResults_TieBreakByID(t *testing.T) {
	results := []*RankedResult{
		{Record: record("z", "Sal", "", ""), Score: 10},
		{Record: record("a", "Sal", "", ""), Score: 10},
		{Record: record("m", "Annex", "", ""), Score: 20},
	}
	SortResults(results)
	if results[0].Record.ID != "m" || results[1].Record.ID != "a" || results[2].Record.ID != "z" {
		t.Errorf("Unexpected order: %s %s %s", results[0].Record.ID, results[1].Record.ID, results[2].Record.ID)
	}
}

func TestPaginate(t *testing.T) {
	results := make([]*RankedResult, 5)
	for i := range results {
		results[i] = &RankedResult{Score: float64(5 - i)}
	}

	tests := []struct {
		offset, limit, want int
	}{
		{0, 2, 2},
		{4, 2, 1},
		{5, 2, 0},
		{10, 2, 0},
		{0, 10, 5},
	}
	for _, tt := range tests {
		if got := len(Paginate(results, tt.offset, tt.limit)); got != tt.want {
			t.Errorf("Paginate(offset=%d, limit=%d) len = %d, want %d", tt.offset, tt.limit, got, tt.want)
		}
	}
	if len(TopN(results, 3)) != 3 {
		t.Error("TopN(3) should return 3 results")
	}
}
