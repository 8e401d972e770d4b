package ranking

// RankingConfig holds all configuration for the ranking system.
type RankingConfig struct {
	Search    SearchWeights    `yaml:"search"`
	Typeahead TypeaheadWeights `yaml:"typeahead"`
}

// SearchWeights are the per-field contributions used by full search.
type SearchWeights struct {
	// Name scoring, only the strongest applies
	NameExact         float64 `yaml:"name_exact"`          // default: 100
	NamePrefix        float64 `yaml:"name_prefix"`         // default: 80
	NameContains      float64 `yaml:"name_contains"`       // default: 60
	NameBoundaryBonus float64 `yaml:"name_boundary_bonus"` // default: 15
	NameFuzzy         float64 `yaml:"name_fuzzy"`          // default: 45

	// Record fields, additive
	SlugContains        float64 `yaml:"slug_contains"`        // default: 50
	CategoryContains    float64 `yaml:"category_contains"`    // default: 45
	SubcategoryContains float64 `yaml:"subcategory_contains"` // default: 40
	DescriptionContains float64 `yaml:"description_contains"` // default: 35
	DescriptionFuzzy    float64 `yaml:"description_fuzzy"`    // default: 20
	FeatureContains     float64 `yaml:"feature_contains"`     // default: 30

	// Metadata fields, additive
	CityContains         float64 `yaml:"city_contains"`         // default: 28
	CityFuzzy            float64 `yaml:"city_fuzzy"`            // default: 18
	AddressContains      float64 `yaml:"address_contains"`      // default: 25
	PostalCodeContains   float64 `yaml:"postal_code_contains"`  // default: 25
	MunicipalityContains float64 `yaml:"municipality_contains"` // default: 28
	AmenityContains      float64 `yaml:"amenity_contains"`      // default: 22
	FacilityContains     float64 `yaml:"facility_contains"`     // default: 22
	RuleTitleContains    float64 `yaml:"rule_title_contains"`   // default: 18
	RuleContentContains  float64 `yaml:"rule_content_contains"` // default: 10
	FAQQuestionContains  float64 `yaml:"faq_question_contains"` // default: 18
	FAQAnswerContains    float64 `yaml:"faq_answer_contains"`   // default: 10
	ContactContains      float64 `yaml:"contact_contains"`      // default: 15
	EventTitleContains   float64 `yaml:"event_title_contains"`  // default: 12
	EventDescContains    float64 `yaml:"event_desc_contains"`   // default: 10
	EventOrgContains     float64 `yaml:"event_org_contains"`    // default: 15
	OtherMetadata        float64 `yaml:"other_metadata"`        // default: 10

	// Applied when every token of a multi-word query occurs in the record
	MultiWordBoost float64 `yaml:"multi_word_boost"` // default: 1.5
}

// TypeaheadWeights are the branch scores used by typeahead. The best branch wins.
type TypeaheadWeights struct {
	NamePrefix          float64 `yaml:"name_prefix"`          // default: 100
	WordBoundary        float64 `yaml:"word_boundary"`        // default: 85
	SlugPrefix          float64 `yaml:"slug_prefix"`          // default: 80
	NameContains        float64 `yaml:"name_contains"`        // default: 60
	CityPrefix          float64 `yaml:"city_prefix"`          // default: 55
	CityContains        float64 `yaml:"city_contains"`        // default: 45
	SubcategoryContains float64 `yaml:"subcategory_contains"` // default: 42
	CategoryContains    float64 `yaml:"category_contains"`    // default: 40
	NameFuzzy           float64 `yaml:"name_fuzzy"`           // default: 35
	CityFuzzy           float64 `yaml:"city_fuzzy"`           // default: 30
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		Search: SearchWeights{
			NameExact:         100,
			NamePrefix:        80,
			NameContains:      60,
			NameBoundaryBonus: 15,
			NameFuzzy:         45,

			SlugContains:        50,
			CategoryContains:    45,
			SubcategoryContains: 40,
			DescriptionContains: 35,
			DescriptionFuzzy:    20,
			FeatureContains:     30,

			CityContains:         28,
			CityFuzzy:            18,
			AddressContains:      25,
			PostalCodeContains:   25,
			MunicipalityContains: 28,
			AmenityContains:      22,
			FacilityContains:     22,
			RuleTitleContains:    18,
			RuleContentContains:  10,
			FAQQuestionContains:  18,
			FAQAnswerContains:    10,
			ContactContains:      15,
			EventTitleContains:   12,
			EventDescContains:    10,
			EventOrgContains:     15,
			OtherMetadata:        10,

			MultiWordBoost: 1.5,
		},
		Typeahead: TypeaheadWeights{
			NamePrefix:          100,
			WordBoundary:        85,
			SlugPrefix:          80,
			NameContains:        60,
			CityPrefix:          55,
			CityContains:        45,
			SubcategoryContains: 42,
			CategoryContains:    40,
			NameFuzzy:           35,
			CityFuzzy:           30,
		},
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()
	s, ds := &c.Search, &defaults.Search

	// Name scoring
	setDefault(&s.NameExact, ds.NameExact)
	setDefault(&s.NamePrefix, ds.NamePrefix)
	setDefault(&s.NameContains, ds.NameContains)
	setDefault(&s.NameBoundaryBonus, ds.NameBoundaryBonus)
	setDefault(&s.NameFuzzy, ds.NameFuzzy)

	// Record fields
	setDefault(&s.SlugContains, ds.SlugContains)
	setDefault(&s.CategoryContains, ds.CategoryContains)
	setDefault(&s.SubcategoryContains, ds.SubcategoryContains)
	setDefault(&s.DescriptionContains, ds.DescriptionContains)
	setDefault(&s.DescriptionFuzzy, ds.DescriptionFuzzy)
	setDefault(&s.FeatureContains, ds.FeatureContains)

	// Metadata fields
	setDefault(&s.CityContains, ds.CityContains)
	setDefault(&s.CityFuzzy, ds.CityFuzzy)
	setDefault(&s.AddressContains, ds.AddressContains)
	setDefault(&s.PostalCodeContains, ds.PostalCodeContains)
	setDefault(&s.MunicipalityContains, ds.MunicipalityContains)
	setDefault(&s.AmenityContains, ds.AmenityContains)
	setDefault(&s.FacilityContains, ds.FacilityContains)
	setDefault(&s.RuleTitleContains, ds.RuleTitleContains)
	setDefault(&s.RuleContentContains, ds.RuleContentContains)
	setDefault(&s.FAQQuestionContains, ds.FAQQuestionContains)
	setDefault(&s.FAQAnswerContains, ds.FAQAnswerContains)
	setDefault(&s.ContactContains, ds.ContactContains)
	setDefault(&s.EventTitleContains, ds.EventTitleContains)
	setDefault(&s.EventDescContains, ds.EventDescContains)
	setDefault(&s.EventOrgContains, ds.EventOrgContains)
	setDefault(&s.OtherMetadata, ds.OtherMetadata)

	setDefault(&s.MultiWordBoost, ds.MultiWordBoost)

	t, dt := &c.Typeahead, &defaults.Typeahead
	setDefault(&t.NamePrefix, dt.NamePrefix)
	setDefault(&t.WordBoundary, dt.WordBoundary)
	setDefault(&t.SlugPrefix, dt.SlugPrefix)
	setDefault(&t.NameContains, dt.NameContains)
	setDefault(&t.CityPrefix, dt.CityPrefix)
	setDefault(&t.CityContains, dt.CityContains)
	setDefault(&t.SubcategoryContains, dt.SubcategoryContains)
	setDefault(&t.CategoryContains, dt.CategoryContains)
	setDefault(&t.NameFuzzy, dt.NameFuzzy)
	setDefault(&t.CityFuzzy, dt.CityFuzzy)
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}
