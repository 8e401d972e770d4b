// Package models defines core data structures for catalog records, search requests, and search responses.
package models

import "time"

// Status is the lifecycle state of a catalog record. The set is open: unknown
// values are carried through untouched.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// CatalogRecord is a bookable catalog entry as returned by a catalog reader.
// Only ID, Name, Slug and Status are always present; empty strings and nil
// slices mean the field is absent.
type CatalogRecord struct {
	ID              string    `json:"id" yaml:"id"`
	TenantID        string    `json:"tenant_id,omitempty" yaml:"tenant_id,omitempty"`
	Name            string    `json:"name" yaml:"name"`
	Slug            string    `json:"slug" yaml:"slug"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	CategoryKey     string    `json:"category_key,omitempty" yaml:"category_key,omitempty"`
	SubcategoryKeys []string  `json:"subcategory_keys,omitempty" yaml:"subcategory_keys,omitempty"`
	Status          Status    `json:"status" yaml:"status"`
	Features        []Feature `json:"features,omitempty" yaml:"features,omitempty"`
	Images          []string  `json:"images,omitempty" yaml:"images,omitempty"`
	Metadata        *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// Feature is a named attribute of a record, e.g. {"Kapasitet", "40"}.
type Feature struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Metadata holds the optional, loosely structured details of a record.
type Metadata struct {
	City         string            `json:"city,omitempty" yaml:"city,omitempty"`
	Address      string            `json:"address,omitempty" yaml:"address,omitempty"`
	PostalCode   string            `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Municipality string            `json:"municipality,omitempty" yaml:"municipality,omitempty"`
	Location     *Location         `json:"location,omitempty" yaml:"location,omitempty"`
	Amenities    []string          `json:"amenities,omitempty" yaml:"amenities,omitempty"`
	Facilities   []string          `json:"facilities,omitempty" yaml:"facilities,omitempty"`
	Rules        []Rule            `json:"rules,omitempty" yaml:"rules,omitempty"`
	FAQ          []FAQEntry        `json:"faq,omitempty" yaml:"faq,omitempty"`
	Events       []Event           `json:"events,omitempty" yaml:"events,omitempty"`
	Contact      *Contact          `json:"contact,omitempty" yaml:"contact,omitempty"`
	Extra        map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Location is the nested geographic block. Its address fields are used when
// the corresponding top-level metadata field is empty.
type Location struct {
	Address      string   `json:"address,omitempty" yaml:"address,omitempty"`
	City         string   `json:"city,omitempty" yaml:"city,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Municipality string   `json:"municipality,omitempty" yaml:"municipality,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// Rule is a house rule shown on the record page.
type Rule struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// FAQEntry is a question/answer pair.
type FAQEntry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// Event is a scheduled happening hosted at the record.
type Event struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Organizer   string `json:"organizer,omitempty" yaml:"organizer,omitempty"`
}

// Contact holds the contact fields of a record.
type Contact struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website string `json:"website,omitempty" yaml:"website,omitempty"`
}

// EffectiveCity returns the top-level city, falling back to location.city.
// The second return value is the dotted field path the value came from.
func (m *Metadata) EffectiveCity() (string, string) {
	if m == nil {
		return "", ""
	}
	if m.City != "" {
		return m.City, "metadata.city"
	}
	if m.Location != nil && m.Location.City != "" {
		return m.Location.City, "metadata.location.city"
	}
	return "", ""
}

// EffectiveAddress returns the top-level address, falling back to location.address.
func (m *Metadata) EffectiveAddress() (string, string) {
	if m == nil {
		return "", ""
	}
	if m.Address != "" {
		return m.Address, "metadata.address"
	}
	if m.Location != nil && m.Location.Address != "" {
		return m.Location.Address, "metadata.location.address"
	}
	return "", ""
}

// EffectivePostalCode returns the top-level postal code, falling back to location.postal_code.
func (m *Metadata) EffectivePostalCode() (string, string) {
	if m == nil {
		return "", ""
	}
	if m.PostalCode != "" {
		return m.PostalCode, "metadata.postalCode"
	}
	if m.Location != nil && m.Location.PostalCode != "" {
		return m.Location.PostalCode, "metadata.location.postalCode"
	}
	return "", ""
}

// EffectiveMunicipality returns the top-level municipality, falling back to location.municipality.
func (m *Metadata) EffectiveMunicipality() (string, string) {
	if m == nil {
		return "", ""
	}
	if m.Municipality != "" {
		return m.Municipality, "metadata.municipality"
	}
	if m.Location != nil && m.Location.Municipality != "" {
		return m.Location.Municipality, "metadata.location.municipality"
	}
	return "", ""
}

// City is a shorthand for the effective city value of a record.
func (r *CatalogRecord) City() string {
	city, _ := r.Metadata.EffectiveCity()
	return city
}
