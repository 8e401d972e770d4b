package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/katalog/internal/models"
)

// decodeXLSX reads records from the first sheet of a workbook. The first row
// names the columns; unknown columns are ignored and list columns are comma
// separated.
func decodeXLSX(content []byte) ([]*models.CatalogRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []*models.CatalogRecord{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []*models.CatalogRecord{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}

	recs := make([]*models.CatalogRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := header[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if cell("name") == "" {
			continue
		}

		rec := &models.CatalogRecord{
			ID:              cell("id"),
			Name:            cell("name"),
			Slug:            cell("slug"),
			Description:     cell("description"),
			CategoryKey:     cell("category"),
			SubcategoryKeys: splitList(cell("subcategories")),
			Status:          models.Status(strings.ToLower(cell("status"))),
		}
		meta := &models.Metadata{
			City:         cell("city"),
			Address:      cell("address"),
			PostalCode:   cell("postal_code"),
			Municipality: cell("municipality"),
			Amenities:    splitList(cell("amenities")),
			Facilities:   splitList(cell("facilities")),
		}
		if !isEmptyMetadata(meta) {
			rec.Metadata = meta
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isEmptyMetadata(m *models.Metadata) bool {
	return m.City == "" && m.Address == "" && m.PostalCode == "" && m.Municipality == "" &&
		len(m.Amenities) == 0 && len(m.Facilities) == 0
}
