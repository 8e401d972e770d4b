package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hyperjump/katalog/internal/models"
)

// MemoryCatalog is an in-process Store. Records are kept per tenant in
// insertion order. It is safe for concurrent use.
type MemoryCatalog struct {
	mu      sync.RWMutex
	tenants map[string][]*models.CatalogRecord
	order   []string
}

// NewMemoryCatalog creates a catalog holding recs, grouped by their TenantID.
// Records failing validation are skipped.
func NewMemoryCatalog(recs ...*models.CatalogRecord) *MemoryCatalog {
	m := &MemoryCatalog{tenants: make(map[string][]*models.CatalogRecord)}
	for _, rec := range recs {
		_ = m.UpsertRecord(context.Background(), rec)
	}
	return m
}

// UpsertRecord inserts rec or replaces the record with the same tenant and id.
func (m *MemoryCatalog) UpsertRecord(_ context.Context, rec *models.CatalogRecord) error {
	if err := validate(rec); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertLocked(rec, time.Now())
	return nil
}

// UpsertRecords upserts all records, stopping at the first invalid one.
func (m *MemoryCatalog) UpsertRecords(_ context.Context, recs []*models.CatalogRecord) error {
	for _, rec := range recs {
		if err := validate(rec); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, rec := range recs {
		m.upsertLocked(rec, now)
	}
	return nil
}

func (m *MemoryCatalog) upsertLocked(rec *models.CatalogRecord, now time.Time) {
	recs, ok := m.tenants[rec.TenantID]
	if !ok {
		m.order = append(m.order, rec.TenantID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	for i, existing := range recs {
		if existing.ID == rec.ID {
			rec.CreatedAt = existing.CreatedAt
			recs[i] = rec
			return
		}
	}
	m.tenants[rec.TenantID] = append(recs, rec)
}

// GetRecord returns a record by tenant and id.
func (m *MemoryCatalog) GetRecord(_ context.Context, tenantID, id string) (*models.CatalogRecord, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.tenants[tenantID] {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// DeleteRecord removes a record by tenant and id.
func (m *MemoryCatalog) DeleteRecord(_ context.Context, tenantID, id string) error {
	if tenantID == "" {
		return ErrTenantRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.tenants[tenantID]
	for i, rec := range recs {
		if rec.ID == id {
			m.tenants[tenantID] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// ListTenantCatalog returns a snapshot of the tenant's records.
func (m *MemoryCatalog) ListTenantCatalog(_ context.Context, tenantID string) ([]*models.CatalogRecord, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*models.CatalogRecord{}, m.tenants[tenantID]...), nil
}

// ListPublicCatalog returns a snapshot of the published records of every tenant.
func (m *MemoryCatalog) ListPublicCatalog(_ context.Context) ([]*models.CatalogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.CatalogRecord, 0)
	for _, tenant := range m.order {
		for _, rec := range m.tenants[tenant] {
			if rec.Status == models.StatusPublished {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// CountRecords returns the total number of records across tenants.
func (m *MemoryCatalog) CountRecords(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, recs := range m.tenants {
		n += int64(len(recs))
	}
	return n, nil
}

// ListTenants returns the tenant ids that have records, sorted.
func (m *MemoryCatalog) ListTenants(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tenants := make([]string, 0, len(m.tenants))
	for t, recs := range m.tenants {
		if len(recs) > 0 {
			tenants = append(tenants, t)
		}
	}
	sort.Strings(tenants)
	return tenants, nil
}

// Close is a no-op.
func (m *MemoryCatalog) Close() error {
	return nil
}
