// Package catalog defines where catalog records come from: the read interface
// the search engine consumes, plus SQLite and in-memory stores and importers.
package catalog

import (
	"context"
	"errors"

	"github.com/hyperjump/katalog/internal/models"
)

var (
	// ErrRecordNotFound is returned when a record does not exist for the tenant.
	ErrRecordNotFound = errors.New("catalog record not found")
	// ErrTenantRequired is returned when a tenant-scoped operation gets an empty tenant id.
	ErrTenantRequired = errors.New("tenant id is required")
	// ErrInvalidRecord is returned when a record lacks its id or name.
	ErrInvalidRecord = errors.New("invalid catalog record")
)

// Reader returns point-in-time snapshots of a catalog. It takes no search
// parameters; all filtering happens in the search engine.
type Reader interface {
	// ListTenantCatalog returns every record of the tenant, whatever its status.
	ListTenantCatalog(ctx context.Context, tenantID string) ([]*models.CatalogRecord, error)
	// ListPublicCatalog returns the published records of all tenants.
	ListPublicCatalog(ctx context.Context) ([]*models.CatalogRecord, error)
}

// Store is a Reader that can also be written to.
type Store interface {
	Reader

	UpsertRecord(ctx context.Context, rec *models.CatalogRecord) error
	UpsertRecords(ctx context.Context, recs []*models.CatalogRecord) error
	GetRecord(ctx context.Context, tenantID, id string) (*models.CatalogRecord, error)
	DeleteRecord(ctx context.Context, tenantID, id string) error

	// Stats
	CountRecords(ctx context.Context) (int64, error)
	ListTenants(ctx context.Context) ([]string, error)

	Close() error
}

// validate checks the fields every stored record must have and defaults the status.
func validate(rec *models.CatalogRecord) error {
	if rec == nil {
		return ErrInvalidRecord
	}
	if rec.TenantID == "" {
		return ErrTenantRequired
	}
	if rec.ID == "" || rec.Name == "" {
		return ErrInvalidRecord
	}
	if rec.Status == "" {
		rec.Status = models.StatusDraft
	}
	return nil
}
