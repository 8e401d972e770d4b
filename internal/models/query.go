package models

// Default page sizes used when a request leaves Limit unset.
const (
	DefaultSearchLimit     = 50
	DefaultTypeaheadLimit  = 10
	DefaultSuggestionLimit = 8
	DefaultMaxLimit        = 200
)

// Limits bounds the page size of a request.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) resolve(limit int) int {
	if limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return limit
}

// SearchQuery is a full-text search request.
type SearchQuery struct {
	Query          string `json:"query"`
	CategoryKey    string `json:"category_key,omitempty"`
	SubcategoryKey string `json:"subcategory_key,omitempty"`
	// Status restricts tenant search to one status; empty means "everything but deleted".
	Status          Status `json:"status,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Offset          int    `json:"offset,omitempty"`
	IncludeMetadata bool   `json:"include_metadata,omitempty"`
	// IncludeCategorySuggestions defaults to true when nil.
	IncludeCategorySuggestions *bool `json:"include_category_suggestions,omitempty"`
}

// ApplyDefaults fills the page size and clamps limit and offset.
func (q *SearchQuery) ApplyDefaults(l Limits) {
	if l.Default <= 0 {
		l.Default = DefaultSearchLimit
	}
	q.Limit = l.resolve(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// WantsCategorySuggestions reports whether category suggestions should be computed.
func (q *SearchQuery) WantsCategorySuggestions() bool {
	return q.IncludeCategorySuggestions == nil || *q.IncludeCategorySuggestions
}

// TypeaheadQuery is a prefix-style suggestion request for incremental input.
type TypeaheadQuery struct {
	Prefix                     string `json:"prefix"`
	CategoryKey                string `json:"category_key,omitempty"`
	Limit                      int    `json:"limit,omitempty"`
	IncludeCategorySuggestions *bool  `json:"include_category_suggestions,omitempty"`
}

// ApplyDefaults fills the page size.
func (q *TypeaheadQuery) ApplyDefaults(l Limits) {
	if l.Default <= 0 {
		l.Default = DefaultTypeaheadLimit
	}
	q.Limit = l.resolve(q.Limit)
}

// WantsCategorySuggestions reports whether category suggestions should be computed.
func (q *TypeaheadQuery) WantsCategorySuggestions() bool {
	return q.IncludeCategorySuggestions == nil || *q.IncludeCategorySuggestions
}

// FacetQuery asks for attribute counts over the (optionally searched) corpus.
type FacetQuery struct {
	SearchTerm     string `json:"search_term,omitempty"`
	CategoryKey    string `json:"category_key,omitempty"`
	SubcategoryKey string `json:"subcategory_key,omitempty"`
	Status         Status `json:"status,omitempty"`
}

// SuggestionQuery asks for distinct category, subcategory and city values.
type SuggestionQuery struct {
	Prefix         string `json:"prefix,omitempty"`
	CategoryKey    string `json:"category_key,omitempty"`
	SubcategoryKey string `json:"subcategory_key,omitempty"`
	Status         Status `json:"status,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

// ApplyDefaults fills the page size.
func (q *SuggestionQuery) ApplyDefaults(l Limits) {
	if l.Default <= 0 {
		l.Default = DefaultSuggestionLimit
	}
	q.Limit = l.resolve(q.Limit)
}

// Bool returns a pointer to b, for optional request flags.
func Bool(b bool) *bool {
	return &b
}
