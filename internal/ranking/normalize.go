package ranking

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer maps the Scandinavian letters that have no canonical
// decomposition to their plain Latin equivalents. Input is already lower-cased.
var foldReplacer = strings.NewReplacer(
	"æ", "ae",
	"ø", "o",
	"å", "a",
)

var nonSpacingMarks = runes.In(unicode.Mn)

// Normalize lower-cases text and folds accented letters to ASCII, so that
// "Møterom", "MOTEROM" and "moterom" compare equal. It never fails; on a
// transform error the lower-cased, Scandinavian-folded text is returned.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded := foldReplacer.Replace(strings.ToLower(text))
	// transform chains are stateful; build one per call so Normalize is safe
	// for concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(nonSpacingMarks), norm.NFC)
	out, _, err := transform.String(t, folded)
	if err != nil {
		return folded
	}
	return out
}

// Tokenize splits normalized text on whitespace.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
