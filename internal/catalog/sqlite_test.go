package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/katalog/internal/models"
)

func newTestSQLite(t *testing.T) *SQLiteCatalog {
	t.Helper()
	store, err := NewSQLiteCatalog(filepath.Join(t.TempDir(), "katalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteCatalog_CRUD(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	lat := 59.91
	rec := &models.CatalogRecord{
		ID:              "r1",
		TenantID:        "oslo",
		Name:            "Tennisbane 1",
		Slug:            "tennisbane-1",
		CategoryKey:     "SPORT",
		SubcategoryKeys: []string{"TENNIS"},
		Features:        []models.Feature{{Name: "Lys", Value: "ja"}},
		Metadata: &models.Metadata{
			City:     "Oslo",
			Location: &models.Location{Latitude: &lat},
		},
	}
	require.NoError(t, store.UpsertRecord(ctx, rec))
	assert.False(t, rec.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.Equal(t, models.StatusDraft, rec.Status, "missing status defaults to draft")

	got, err := store.GetRecord(ctx, "oslo", "r1")
	require.NoError(t, err)
	assert.Equal(t, "Tennisbane 1", got.Name)
	assert.Equal(t, []string{"TENNIS"}, got.SubcategoryKeys)
	assert.Equal(t, "Lys", got.Features[0].Name)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "Oslo", got.Metadata.City)
	require.NotNil(t, got.Metadata.Location.Latitude)
	assert.InDelta(t, 59.91, *got.Metadata.Location.Latitude, 1e-9)

	rec.Name = "Tennisbane 1 (ute)"
	rec.Status = models.StatusPublished
	require.NoError(t, store.UpsertRecord(ctx, rec))
	got, err = store.GetRecord(ctx, "oslo", "r1")
	require.NoError(t, err)
	assert.Equal(t, "Tennisbane 1 (ute)", got.Name)
	assert.Equal(t, models.StatusPublished, got.Status)

	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.DeleteRecord(ctx, "oslo", "r1"))
	_, err = store.GetRecord(ctx, "oslo", "r1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, store.DeleteRecord(ctx, "oslo", "r1"), ErrRecordNotFound)
}

func TestSQLiteCatalog_Listing(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecords(ctx, []*models.CatalogRecord{
		{ID: "a", TenantID: "oslo", Name: "Møterom B", Status: models.StatusPublished},
		{ID: "b", TenantID: "oslo", Name: "Møterom A", Status: models.StatusDraft},
		{ID: "c", TenantID: "bergen", Name: "Konsertsal", Status: models.StatusPublished},
		{ID: "d", TenantID: "bergen", Name: "Lager", Status: models.StatusDeleted},
	}))

	oslo, err := store.ListTenantCatalog(ctx, "oslo")
	require.NoError(t, err)
	require.Len(t, oslo, 2)
	assert.Equal(t, "b", oslo[0].ID, "tenant catalog is ordered by name")

	public, err := store.ListPublicCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)
	for _, rec := range public {
		assert.Equal(t, models.StatusPublished, rec.Status)
	}

	tenants, err := store.ListTenants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bergen", "oslo"}, tenants)

	empty, err := store.ListTenantCatalog(ctx, "trondheim")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLiteCatalog_Validation(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.UpsertRecord(ctx, &models.CatalogRecord{ID: "x", Name: "X"}), ErrTenantRequired)
	assert.ErrorIs(t, store.UpsertRecord(ctx, &models.CatalogRecord{TenantID: "t", Name: "X"}), ErrInvalidRecord)
	assert.ErrorIs(t, store.UpsertRecord(ctx, &models.CatalogRecord{TenantID: "t", ID: "x"}), ErrInvalidRecord)

	_, err := store.ListTenantCatalog(ctx, "")
	assert.ErrorIs(t, err, ErrTenantRequired)

	// A bad record rolls back the whole batch
	err = store.UpsertRecords(ctx, []*models.CatalogRecord{
		{ID: "ok", TenantID: "t", Name: "Ok"},
		{ID: "", TenantID: "t", Name: "Broken"},
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSQLiteCatalog_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "katalog.db")
	ctx := context.Background()

	store, err := NewSQLiteCatalog(path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertRecord(ctx, &models.CatalogRecord{ID: "a", TenantID: "t", Name: "A"}))
	require.NoError(t, store.Close())

	store, err = NewSQLiteCatalog(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.GetRecord(ctx, "t", "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	size, err := DatabaseSizeBytes(path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))
}
