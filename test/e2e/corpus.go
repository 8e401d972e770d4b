package e2e

import "github.com/hyperjump/katalog/internal/models"

// CorpusTenant owns every record in Corpus.
const CorpusTenant = "oslo-kommune"

// Corpus is a small catalog with distinct names, so each query in
// CorpusQueries has exactly one expected best hit.
func Corpus() []*models.CatalogRecord {
	return []*models.CatalogRecord{
		{
			ID: "tennis-frogner", Name: "Tennisbane Frogner", Slug: "tennisbane-frogner",
			Description: "Grusbane med flomlys", CategoryKey: "SPORT", SubcategoryKeys: []string{"TENNIS"},
			Status: models.StatusPublished, Metadata: &models.Metadata{City: "Oslo", Amenities: []string{"Garderobe"}},
		},
		{
			ID: "svom-toyen", Name: "Svømmehall Tøyen", Slug: "svommehall-toyen",
			Description: "25 meter basseng", CategoryKey: "SPORT", SubcategoryKeys: []string{"SVOMMING"},
			Status: models.StatusPublished, Metadata: &models.Metadata{City: "Oslo"},
		},
		{
			ID: "moterom-sentrum", Name: "Møterom Sentrum", Slug: "moterom-sentrum",
			Description: "Plass til tolv personer", CategoryKey: "LOKALER", SubcategoryKeys: []string{"MOTEROM"},
			Status: models.StatusPublished, Metadata: &models.Metadata{City: "Oslo", Amenities: []string{"Projektor"}},
		},
		{
			ID: "konsertsal-grieg", Name: "Konsertsal Grieghallen", Slug: "konsertsal-grieghallen",
			Description: "Stor sal for konserter", CategoryKey: "ARRANGEMENTER",
			Status: models.StatusPublished, Metadata: &models.Metadata{City: "Bergen"},
		},
		{
			ID: "fotball-draft", Name: "Fotballbane Voldsløkka", Slug: "fotballbane-voldslokka",
			CategoryKey: "SPORT", SubcategoryKeys: []string{"FOTBALL"},
			Status: models.StatusDraft, Metadata: &models.Metadata{City: "Oslo"},
		},
	}
}

// CorpusQuery is a query and the id of the record that must rank first.
type CorpusQuery struct {
	Query   string
	WantTop string
}

// CorpusQueries covers exact, prefix, fuzzy and diacritic-folded matches.
var CorpusQueries = []CorpusQuery{
	{"tennisbane", "tennis-frogner"},
	{"tenn", "tennis-frogner"},
	{"tenisbane", "tennis-frogner"},
	{"svømmehall", "svom-toyen"},
	{"svommehall", "svom-toyen"},
	{"møterom", "moterom-sentrum"},
	{"grieghallen", "konsertsal-grieg"},
}
