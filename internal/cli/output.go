// Package cli provides output formatting for the katalog command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/katalog/internal/models"
	"github.com/hyperjump/katalog/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one tab-separated line per hit.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to a format. Unknown values are text.
func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case OutputJSON:
		return OutputJSON
	case OutputCompact:
		return OutputCompact
	default:
		return OutputText
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const rule = "─────────────────────────────────────────────────────────"

// WriteSearchResults writes a search response to w in the given format.
func WriteSearchResults(w io.Writer, resp *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, resp)
	case OutputCompact:
		for _, r := range resp.Results {
			fmt.Fprintf(w, "%.2f\t%s\t%s\n", r.Score, r.ID, r.Name)
		}
		return nil
	}

	fmt.Fprintf(w, "\nFound %d results for %q (showing %d)\n\n", resp.Total, resp.Query, len(resp.Results))
	for _, r := range resp.Results {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%s  [%s]  Score: %.2f\n", r.Name, r.ID, r.Score)
		if r.CategoryKey != "" {
			fmt.Fprintf(w, "Category: %s", r.CategoryKey)
			if len(r.SubcategoryKeys) > 0 {
				fmt.Fprintf(w, " / %s", strings.Join(r.SubcategoryKeys, ", "))
			}
			fmt.Fprintln(w)
		}
		if r.Description != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(r.Description, 200))
		}
		if len(r.Matches) > 0 {
			fields := make([]string, 0, len(r.Matches))
			for _, m := range r.Matches {
				fields = append(fields, fmt.Sprintf("%s(%s %.0f)", m.Field, m.Kind, m.Weight))
			}
			fmt.Fprintf(w, "Matched: %s\n", strings.Join(fields, ", "))
		}
		fmt.Fprintln(w)
	}
	if resp.HasMore {
		fmt.Fprintln(w, "More results available; use -offset to page.")
	}
	writeIntentSuggestions(w, "Categories", categoryLines(resp.CategorySuggestions))
	writeIntentSuggestions(w, "Suggestions", intentLines(resp.IntentSuggestions))
	writeIntentSuggestions(w, "Popular", intentLines(resp.PopularSuggestions))
	return nil
}

func categoryLines(suggestions []models.CategorySuggestion) []string {
	lines := make([]string, 0, len(suggestions))
	for _, c := range suggestions {
		line := fmt.Sprintf("%s (%s) %.0f", c.Name, c.Key, c.Score)
		if c.Count != nil {
			line += fmt.Sprintf(", %d records", *c.Count)
		}
		lines = append(lines, line)
	}
	return lines
}

func intentLines(suggestions []models.IntentSuggestion) []string {
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("[%s] %s %.0f", s.Kind, s.Label, s.Score))
	}
	return lines
}

func writeIntentSuggestions(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// WriteTypeahead writes typeahead suggestions to w in the given format.
func WriteTypeahead(w io.Writer, resp *models.TypeaheadResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	for _, s := range resp.Suggestions {
		if format == OutputCompact {
			fmt.Fprintf(w, "%.0f\t%s\t%s\n", s.Score, s.ID, s.Name)
			continue
		}
		line := fmt.Sprintf("%-40s %5.0f", s.Name, s.Score)
		if s.City != "" {
			line += "  " + s.City
		}
		fmt.Fprintln(w, line)
	}
	if format == OutputText {
		writeIntentSuggestions(w, "Categories", categoryLines(resp.CategorySuggestions))
	}
	return nil
}

// WriteFacets writes facet counts to w in the given format.
func WriteFacets(w io.Writer, resp *models.FacetResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	dims := []struct {
		name   string
		counts []models.FacetCount
	}{
		{"category", resp.Categories},
		{"subcategory", resp.Subcategories},
		{"city", resp.Cities},
		{"status", resp.Statuses},
	}
	if format == OutputText {
		fmt.Fprintf(w, "Total: %d\n", resp.Total)
	}
	for _, d := range dims {
		if format == OutputText && len(d.counts) > 0 {
			fmt.Fprintf(w, "\n%s:\n", d.name)
		}
		for _, c := range d.counts {
			if format == OutputCompact {
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.name, c.Key, c.Count)
			} else {
				fmt.Fprintf(w, "  %-30s %d\n", c.Key, c.Count)
			}
		}
	}
	return nil
}

// WriteSuggestions writes distinct value suggestions to w in the given format.
func WriteSuggestions(w io.Writer, suggestions []models.Suggestion, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, map[string]interface{}{"suggestions": suggestions})
	}
	for _, s := range suggestions {
		if format == OutputCompact {
			fmt.Fprintf(w, "%s\t%s\n", s.Type, s.Value)
		} else {
			fmt.Fprintf(w, "%-12s %s\n", s.Type, s.Value)
		}
	}
	return nil
}
