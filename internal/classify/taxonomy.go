// Package classify guesses which catalog category and which user intent a
// free-text query is about.
package classify

// Category is one entry of the catalog taxonomy.
type Category struct {
	Key         string
	Name        string
	Description string
	Keywords    []string
	Synonyms    []string
}

// Intent maps a user goal to the keywords that reveal it.
type Intent struct {
	Key         string
	Label       string
	Description string
	Action      string
	Keywords    []string
}

// PopularSearch is a curated query shown when the user has not typed much yet.
type PopularSearch struct {
	Term     string
	Category string
	Label    string
}

// DefaultTaxonomy returns the built-in category taxonomy.
func DefaultTaxonomy() []Category {
	return []Category{
		{
			Key:         "LOKALER",
			Name:        "Lokaler",
			Description: "Møterom, selskapslokaler, konferansesaler og andre rom til leie",
			Keywords:    []string{"møterom", "selskapslokale", "konferanse", "festsal", "klasserom", "kontor", "sal"},
			Synonyms:    []string{"rom", "lokale", "venue", "meeting room", "hall"},
		},
		{
			Key:         "SPORT",
			Name:        "Sport",
			Description: "Idrettshaller, baner og treningsfasiliteter",
			Keywords:    []string{"tennis", "fotball", "idrettshall", "padel", "svømming", "gymsal", "bane", "trening"},
			Synonyms:    []string{"idrett", "sports", "court", "gym"},
		},
		{
			Key:         "ARRANGEMENTER",
			Name:        "Arrangementer",
			Description: "Konserter, kurs, festivaler og andre arrangementer",
			Keywords:    []string{"konsert", "kurs", "festival", "forestilling", "workshop", "foredrag"},
			Synonyms:    []string{"event", "happening", "show"},
		},
		{
			Key:         "TORGET",
			Name:        "Torget",
			Description: "Utstyr og ting til utlån eller leie",
			Keywords:    []string{"utstyr", "telt", "lydanlegg", "projektor", "sykkel", "verktøy"},
			Synonyms:    []string{"utlån", "utleie", "equipment"},
		},
	}
}

// DefaultIntents returns the built-in intent table.
func DefaultIntents() []Intent {
	return []Intent{
		{
			Key:         "booking",
			Label:       "Book nå",
			Description: "Finn ledige tider og reserver",
			Action:      "open_booking",
			Keywords:    []string{"book", "booke", "booking", "reserver", "reservasjon", "leie", "lei"},
		},
		{
			Key:         "event",
			Label:       "Arrangementer",
			Description: "Se kommende arrangementer",
			Action:      "filter_events",
			Keywords:    []string{"arrangement", "event", "konsert", "kurs", "festival"},
		},
		{
			Key:         "location",
			Label:       "I nærheten",
			Description: "Finn steder i nærheten",
			Action:      "filter_location",
			Keywords:    []string{"nær", "nærheten", "sentrum", "område", "nearby"},
		},
		{
			Key:         "price",
			Label:       "Pris",
			Description: "Sorter etter pris",
			Action:      "sort_price",
			Keywords:    []string{"pris", "billig", "gratis", "kostnad", "price", "cheap", "free"},
		},
	}
}

// DefaultPopularSearches returns the curated popular searches, most popular first.
func DefaultPopularSearches() []PopularSearch {
	return []PopularSearch{
		{Term: "møterom", Category: "LOKALER", Label: "Møterom"},
		{Term: "tennis", Category: "SPORT", Label: "Tennisbane"},
		{Term: "selskapslokale", Category: "LOKALER", Label: "Selskapslokale"},
		{Term: "idrettshall", Category: "SPORT", Label: "Idrettshall"},
		{Term: "konsert", Category: "ARRANGEMENTER", Label: "Konserter"},
		{Term: "kurs", Category: "ARRANGEMENTER", Label: "Kurs"},
	}
}
