package models

// MatchKind says how a query term matched a field.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchPrefix   MatchKind = "prefix"
	MatchContains MatchKind = "contains"
	MatchFuzzy    MatchKind = "fuzzy"
	MatchBoundary MatchKind = "boundary"
)

// SearchMatch explains one field's contribution to a record score.
type SearchMatch struct {
	Field  string    `json:"field"`
	Value  string    `json:"value"`
	Weight float64   `json:"weight"`
	Kind   MatchKind `json:"kind"`
}

// SearchResultItem is a scored record projected for display.
type SearchResultItem struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Description     string        `json:"description,omitempty"`
	CategoryKey     string        `json:"category_key,omitempty"`
	SubcategoryKeys []string      `json:"subcategory_keys,omitempty"`
	Status          Status        `json:"status"`
	Images          []string      `json:"images,omitempty"`
	Score           float64       `json:"score"`
	Matches         []SearchMatch `json:"matches"`
	Metadata        *Metadata     `json:"metadata,omitempty"`
}

// CategorySuggestion is a taxonomy category that matches the query.
type CategorySuggestion struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Count       *int    `json:"count,omitempty"`
}

// SuggestionKind distinguishes intent, popular-search and location suggestions.
type SuggestionKind string

const (
	KindIntent   SuggestionKind = "intent"
	KindPopular  SuggestionKind = "popular"
	KindLocation SuggestionKind = "location"
)

// IntentSuggestion is a heuristic guess at what the user wants to do.
type IntentSuggestion struct {
	Kind        SuggestionKind `json:"kind"`
	Key         string         `json:"key"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Score       float64        `json:"score"`
	Action      string         `json:"action,omitempty"`
	Category    string         `json:"category,omitempty"`
}

// SearchResponse is the response for a search request. The suggestion lists
// are only populated on the public path.
type SearchResponse struct {
	Results             []*SearchResultItem  `json:"results"`
	Total               int                  `json:"total"`
	HasMore             bool                 `json:"has_more"`
	Query               string               `json:"query"`
	CategorySuggestions []CategorySuggestion `json:"category_suggestions,omitempty"`
	IntentSuggestions   []IntentSuggestion   `json:"intent_suggestions,omitempty"`
	PopularSuggestions  []IntentSuggestion   `json:"popular_suggestions,omitempty"`
}

// TypeaheadSuggestion is a single typeahead hit.
type TypeaheadSuggestion struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	CategoryKey     string   `json:"category_key,omitempty"`
	SubcategoryKeys []string `json:"subcategory_keys,omitempty"`
	City            string   `json:"city,omitempty"`
	Score           float64  `json:"score"`
}

// TypeaheadResponse is the response for a typeahead request.
type TypeaheadResponse struct {
	Suggestions         []TypeaheadSuggestion `json:"suggestions"`
	CategorySuggestions []CategorySuggestion  `json:"category_suggestions,omitempty"`
}

// FacetCount is one bucket of a facet dimension.
type FacetCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// FacetResponse holds the per-dimension counts over the filtered corpus.
type FacetResponse struct {
	Total         int          `json:"total"`
	Categories    []FacetCount `json:"categories"`
	Subcategories []FacetCount `json:"subcategories"`
	Cities        []FacetCount `json:"cities"`
	Statuses      []FacetCount `json:"statuses"`
}

// ValueType is the attribute a Suggestion value was taken from.
type ValueType string

const (
	ValueCategory    ValueType = "category"
	ValueSubcategory ValueType = "subcategory"
	ValueCity        ValueType = "city"
)

// Suggestion is a distinct attribute value present in the corpus.
type Suggestion struct {
	Type  ValueType `json:"type"`
	Value string    `json:"value"`
}

// EmptySearchResponse returns a well-formed response with no results.
func EmptySearchResponse(query string) *SearchResponse {
	return &SearchResponse{
		Results: []*SearchResultItem{},
		Query:   query,
	}
}
