// Package e2e provides end-to-end tests; this file writes seed files in every supported format.
package e2e

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/katalog/internal/models"
)

// SupportedSeedExtensions is the list of seed formats exercised by the E2E tests.
var SupportedSeedExtensions = []string{".json", ".yaml", ".yml", ".xlsx"}

// EncodeSeed returns the bytes of a seed file with the given extension holding recs.
func EncodeSeed(ext string, recs []*models.CatalogRecord) ([]byte, error) {
	switch ext {
	case ".json":
		return json.MarshalIndent(recs, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(recs)
	case ".xlsx":
		return seedXlsx(recs)
	default:
		return nil, fmt.Errorf("unsupported seed format %q", ext)
	}
}

var xlsxColumns = []string{"id", "name", "slug", "description", "category", "subcategories", "status", "city", "amenities"}

// seedXlsx writes one row per record. Only the columns the xlsx importer
// reads are filled; features and nested metadata do not survive.
func seedXlsx(recs []*models.CatalogRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, col := range xlsxColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	for r, rec := range recs {
		row := []string{
			rec.ID, rec.Name, rec.Slug, rec.Description, rec.CategoryKey,
			strings.Join(rec.SubcategoryKeys, ", "), string(rec.Status), rec.City(), "",
		}
		if rec.Metadata != nil {
			row[8] = strings.Join(rec.Metadata.Amenities, ", ")
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
