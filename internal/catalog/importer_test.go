package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/internal/recordid"
)

const seedYAML = `
- name: Tennisbane 1
  slug: tennisbane-1
  category_key: SPORT
  subcategory_keys: [TENNIS]
  status: published
  metadata:
    city: Oslo
    amenities: [Lys, Garderobe]
- id: fixed-id
  name: Møterom A
  slug: moterom-a
  category_key: LOKALER
- name: Uten slug
`

const seedJSON = `[
  {"id": "k1", "name": "Konsertsal", "slug": "konsertsal", "status": "published",
   "metadata": {"city": "Bergen", "location": {"latitude": 60.39, "longitude": 5.32}}}
]`

func TestDecodeYAML(t *testing.T) {
	recs, err := DecodeYAML(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Tennisbane 1", recs[0].Name)
	assert.Equal(t, []string{"TENNIS"}, recs[0].SubcategoryKeys)
	require.NotNil(t, recs[0].Metadata)
	assert.Equal(t, []string{"Lys", "Garderobe"}, recs[0].Metadata.Amenities)

	empty, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeJSON(t *testing.T) {
	recs, err := DecodeJSON(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].Metadata.Location)
	assert.InDelta(t, 60.39, *recs[0].Metadata.Location.Latitude, 1e-9)

	_, err = DecodeJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestPrepareRecords(t *testing.T) {
	recs, err := DecodeYAML(strings.NewReader(seedYAML))
	require.NoError(t, err)
	PrepareRecords("oslo", recs)

	for _, rec := range recs {
		assert.Equal(t, "oslo", rec.TenantID)
		assert.NotEmpty(t, rec.ID)
	}
	assert.Equal(t, recordid.FromSlug("oslo", "tennisbane-1"), recs[0].ID)
	assert.Equal(t, models.StatusPublished, recs[0].Status)
	assert.Equal(t, "fixed-id", recs[1].ID)
	assert.Equal(t, models.StatusDraft, recs[1].Status)
	assert.Len(t, recs[2].ID, 36, "record without slug gets a uuid")
}

func TestLoadBytes_Unsupported(t *testing.T) {
	_, err := LoadBytes([]byte("x"), ".csv")
	assert.Error(t, err)
}

func TestTenantFromPath(t *testing.T) {
	assert.Equal(t, "oslo-kommune", TenantFromPath("/seeds/oslo-kommune.yaml"))
	assert.Equal(t, "bergen", TenantFromPath("bergen.xlsx"))
}

func TestImporter_ImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oslo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0644))

	store := NewMemoryCatalog()
	im := NewImporter(store)
	ctx := context.Background()

	n, err := im.ImportFile(ctx, "oslo", path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-import is idempotent for records with an id or slug
	n, err = im.ImportFile(ctx, "oslo", path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count, "only the slug-less record is duplicated")

	_, err = im.ImportFile(ctx, "", path)
	assert.ErrorIs(t, err, ErrTenantRequired)

	_, err = im.ImportFile(ctx, "oslo", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Slug", "Category", "Subcategories", "Status", "City", "Amenities"},
		{"Idrettshall", "idrettshall", "SPORT", "HALL, BALLSPILL", "Published", "Trondheim", "Garderobe,Dusj"},
		{"", "tom-rad", "", "", "", "", ""},
		{"Festsal", "festsal", "LOKALER", "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := LoadBytes(buf.Bytes(), ".xlsx")
	require.NoError(t, err)
	require.Len(t, recs, 2, "rows without a name are skipped")

	hall := recs[0]
	assert.Equal(t, "Idrettshall", hall.Name)
	assert.Equal(t, []string{"HALL", "BALLSPILL"}, hall.SubcategoryKeys)
	assert.Equal(t, models.StatusPublished, hall.Status)
	require.NotNil(t, hall.Metadata)
	assert.Equal(t, "Trondheim", hall.Metadata.City)
	assert.Equal(t, []string{"Garderobe", "Dusj"}, hall.Metadata.Amenities)

	assert.Nil(t, recs[1].Metadata, "rows without metadata columns have no metadata")
}
