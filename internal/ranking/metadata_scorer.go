package ranking

import (
	"sort"

	"github.com/hyperjump/katalog/internal/models"
)

// MetadataScorer scores records based on metadata field matching.
type MetadataScorer struct {
	weights *SearchWeights
}

// NewMetadataScorer creates a new MetadataScorer with the given weights.
func NewMetadataScorer(weights *SearchWeights) *MetadataScorer {
	return &MetadataScorer{weights: weights}
}

// Name returns the scorer name.
func (s *MetadataScorer) Name() string {
	return "metadata"
}

// Score calculates the metadata match score. Every matching field adds its
// weight, list entries count once each.
func (s *MetadataScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Query.IsEmpty() || ctx.Record == nil || ctx.Record.Metadata == nil {
		return 0
	}

	m := ctx.Record.Metadata
	term := ctx.Query.Normalized
	w := s.weights
	score := 0.0

	contains := func(field, value string, weight float64) {
		if value != "" && Contains(Normalize(value), term) {
			score += ctx.match(field, value, weight, models.MatchContains)
		}
	}

	if city, path := m.EffectiveCity(); city != "" {
		normalized := Normalize(city)
		if Contains(normalized, term) {
			score += ctx.match(path, city, w.CityContains, models.MatchContains)
		} else if Fuzzy(normalized, term) {
			score += ctx.match(path, city, w.CityFuzzy, models.MatchFuzzy)
		}
	}
	if v, path := m.EffectiveAddress(); v != "" {
		contains(path, v, w.AddressContains)
	}
	if v, path := m.EffectivePostalCode(); v != "" {
		contains(path, v, w.PostalCodeContains)
	}
	if v, path := m.EffectiveMunicipality(); v != "" {
		contains(path, v, w.MunicipalityContains)
	}

	for _, a := range m.Amenities {
		contains("metadata.amenities", a, w.AmenityContains)
	}
	for _, f := range m.Facilities {
		contains("metadata.facilities", f, w.FacilityContains)
	}
	for _, r := range m.Rules {
		contains("metadata.rules.title", r.Title, w.RuleTitleContains)
		contains("metadata.rules.content", r.Content, w.RuleContentContains)
	}
	for _, q := range m.FAQ {
		contains("metadata.faq.question", q.Question, w.FAQQuestionContains)
		contains("metadata.faq.answer", q.Answer, w.FAQAnswerContains)
	}
	if c := m.Contact; c != nil {
		contains("metadata.contact.name", c.Name, w.ContactContains)
		contains("metadata.contact.email", c.Email, w.ContactContains)
		contains("metadata.contact.phone", c.Phone, w.ContactContains)
		contains("metadata.contact.website", c.Website, w.ContactContains)
	}
	for _, e := range m.Events {
		contains("metadata.events.title", e.Title, w.EventTitleContains)
		contains("metadata.events.description", e.Description, w.EventDescContains)
		contains("metadata.events.organizer", e.Organizer, w.EventOrgContains)
	}

	// Sorted so the match list is stable between calls.
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		contains("metadata."+k, m.Extra[k], w.OtherMetadata)
	}

	return score
}
