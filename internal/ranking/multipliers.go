package ranking

import (
	"encoding/json"
)

// MultiWordMultiplier boosts records in which every term of a multi-word
// query occurs somewhere in the name, the description or the metadata.
type MultiWordMultiplier struct {
	boost float64
}

// NewMultiWordMultiplier creates a new MultiWordMultiplier.
func NewMultiWordMultiplier(weights *SearchWeights) *MultiWordMultiplier {
	return &MultiWordMultiplier{boost: weights.MultiWordBoost}
}

// Name returns the multiplier name.
func (m *MultiWordMultiplier) Name() string {
	return "multi_word"
}

// Multiply applies the boost when all terms are covered.
func (m *MultiWordMultiplier) Multiply(ctx *ScoringContext, baseScore float64) float64 {
	if baseScore <= 0 || !ctx.Query.IsMultiWord() || ctx.Record == nil {
		return baseScore
	}
	if AllTermsCovered(ctx.Query.Terms, searchableTexts(ctx)) {
		return baseScore * m.boost
	}
	return baseScore
}

// searchableTexts returns the normalized name, description and serialized
// metadata of the record in the context.
func searchableTexts(ctx *ScoringContext) []string {
	rec := ctx.Record
	texts := []string{Normalize(rec.Name), Normalize(rec.Description)}
	if rec.Metadata != nil {
		if raw, err := json.Marshal(rec.Metadata); err == nil {
			texts = append(texts, Normalize(string(raw)))
		}
	}
	return texts
}

// AllTermsCovered reports whether every term is contained in at least one of texts.
func AllTermsCovered(terms []string, texts []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		found := false
		for _, text := range texts {
			if Contains(text, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ApplyMultipliers applies a list of multipliers to a base score.
func ApplyMultipliers(ctx *ScoringContext, baseScore float64, multipliers []Multiplier) float64 {
	score := baseScore
	for _, m := range multipliers {
		score = m.Multiply(ctx, score)
	}
	return score
}
