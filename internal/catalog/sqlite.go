package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/katalog/internal/models"
)

// SQLiteCatalog implements Store using SQLite.
type SQLiteCatalog struct {
	db *sql.DB
}

// NewSQLiteCatalog opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalog_records (
		id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		slug TEXT,
		description TEXT,
		category_key TEXT,
		subcategory_keys TEXT,
		status TEXT NOT NULL,
		features TEXT,
		images TEXT,
		metadata TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (tenant_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_status ON catalog_records(status);
	`
	_, err := db.Exec(schema)
	return err
}

const recordColumns = `id, tenant_id, name, slug, description, category_key, subcategory_keys,
	status, features, images, metadata, created_at, updated_at`

const upsertSQL = `INSERT INTO catalog_records (` + recordColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(tenant_id, id) DO UPDATE SET
		name = excluded.name,
		slug = excluded.slug,
		description = excluded.description,
		category_key = excluded.category_key,
		subcategory_keys = excluded.subcategory_keys,
		status = excluded.status,
		features = excluded.features,
		images = excluded.images,
		metadata = excluded.metadata,
		updated_at = excluded.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UpsertRecord inserts a record or replaces the existing one with the same tenant and id.
// created_at is kept on update.
func (s *SQLiteCatalog) UpsertRecord(ctx context.Context, rec *models.CatalogRecord) error {
	return upsert(ctx, s.db, rec, time.Now())
}

// UpsertRecords upserts multiple records in a transaction.
func (s *SQLiteCatalog) UpsertRecords(ctx context.Context, recs []*models.CatalogRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, rec := range recs {
		if err := upsert(ctx, tx, rec, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func upsert(ctx context.Context, db execer, rec *models.CatalogRecord, now time.Time) error {
	if err := validate(rec); err != nil {
		return err
	}

	subcategories, err := json.Marshal(rec.SubcategoryKeys)
	if err != nil {
		return fmt.Errorf("failed to marshal subcategory keys: %w", err)
	}
	features, err := json.Marshal(rec.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}
	images, err := json.Marshal(rec.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err = db.ExecContext(ctx, upsertSQL,
		rec.ID, rec.TenantID, rec.Name, rec.Slug, rec.Description, rec.CategoryKey,
		string(subcategories), string(rec.Status), string(features), string(images),
		string(metadata), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
	}
	return nil
}

// GetRecord returns a record by tenant and id.
func (s *SQLiteCatalog) GetRecord(ctx context.Context, tenantID, id string) (*models.CatalogRecord, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM catalog_records WHERE tenant_id = ? AND id = ?`,
		tenantID, id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes a record by tenant and id.
func (s *SQLiteCatalog) DeleteRecord(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return ErrTenantRequired
	}
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM catalog_records WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

// ListTenantCatalog returns all records of a tenant ordered by name.
func (s *SQLiteCatalog) ListTenantCatalog(ctx context.Context, tenantID string) ([]*models.CatalogRecord, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	return s.query(ctx,
		`SELECT `+recordColumns+` FROM catalog_records WHERE tenant_id = ? ORDER BY name, id`,
		tenantID,
	)
}

// ListPublicCatalog returns the published records of every tenant.
func (s *SQLiteCatalog) ListPublicCatalog(ctx context.Context) ([]*models.CatalogRecord, error) {
	return s.query(ctx,
		`SELECT `+recordColumns+` FROM catalog_records WHERE status = ? ORDER BY tenant_id, name, id`,
		string(models.StatusPublished),
	)
}

func (s *SQLiteCatalog) query(ctx context.Context, query string, args ...any) ([]*models.CatalogRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]*models.CatalogRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.CatalogRecord, error) {
	var rec models.CatalogRecord
	var slug, description, category sql.NullString
	var subcategories, features, images, metadata sql.NullString
	var status string

	err := row.Scan(&rec.ID, &rec.TenantID, &rec.Name, &slug, &description, &category,
		&subcategories, &status, &features, &images, &metadata, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Slug = slug.String
	rec.Description = description.String
	rec.CategoryKey = category.String
	rec.Status = models.Status(status)

	// Malformed JSON columns leave the field empty rather than failing the read.
	unmarshalColumn(subcategories, &rec.SubcategoryKeys)
	unmarshalColumn(features, &rec.Features)
	unmarshalColumn(images, &rec.Images)
	unmarshalColumn(metadata, &rec.Metadata)
	return &rec, nil
}

func unmarshalColumn(col sql.NullString, dst any) {
	if !col.Valid || col.String == "" || col.String == "null" {
		return
	}
	_ = json.Unmarshal([]byte(col.String), dst)
}

// CountRecords returns the total number of records across tenants.
func (s *SQLiteCatalog) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_records`).Scan(&count)
	return count, err
}

// ListTenants returns the distinct tenant ids that have records.
func (s *SQLiteCatalog) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tenant_id FROM catalog_records ORDER BY tenant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteCatalog) Close() error {
	return s.db.Close()
}
