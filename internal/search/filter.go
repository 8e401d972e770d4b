package search

import (
	"github.com/hyperjump/katalog/internal/models"
)

// recordFilter holds the exact-match filters shared by search, facets and suggestions.
type recordFilter struct {
	status         models.Status
	categoryKey    string
	subcategoryKey string
	// excludeDeleted drops deleted records when no explicit status is given.
	excludeDeleted bool
}

func (f recordFilter) matches(rec *models.CatalogRecord) bool {
	if rec == nil {
		return false
	}
	if f.status != "" {
		if rec.Status != f.status {
			return false
		}
	} else if f.excludeDeleted && rec.Status == models.StatusDeleted {
		return false
	}
	if f.categoryKey != "" && rec.CategoryKey != f.categoryKey {
		return false
	}
	if f.subcategoryKey != "" && !containsString(rec.SubcategoryKeys, f.subcategoryKey) {
		return false
	}
	return true
}

func (f recordFilter) apply(recs []*models.CatalogRecord) []*models.CatalogRecord {
	out := make([]*models.CatalogRecord, 0, len(recs))
	for _, rec := range recs {
		if f.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
