package services

import (
	"strings"
	"unicode"

	"trustguard/internal/domain/models"
)

// LexicalScanner flags keyword categories and stylistic anomalies in
// message text. Pure function of its input, no shared state.
type LexicalScanner struct {
	categories []KeywordCategory
}

// NewLexicalScanner creates a scanner over the default keyword tables
func NewLexicalScanner() *LexicalScanner {
	return &LexicalScanner{categories: KeywordCategories()}
}

// Scan returns the flags raised by the text plus their combined score
// contribution. Matching is case-insensitive substring membership; each
// category yields at most one flag no matter how many keywords hit.
func (s *LexicalScanner) Scan(text string) ([]models.Flag, int) {
	textLower := strings.ToLower(text)

	var flags []models.Flag
	score := 0

	for _, cat := range s.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(textLower, kw) {
				flags = append(flags, models.Flag{
					ID:          cat.ID,
					Title:       cat.Title,
					Severity:    cat.Severity,
					Explanation: cat.Explanation,
				})
				score += cat.Weight
				break
			}
		}
	}

	if hasStyleAnomaly(text) {
		flags = append(flags, models.Flag{
			ID:          models.FlagStyle,
			Title:       "Shouting or excessive punctuation",
			Severity:    styleSeverity,
			Explanation: "Unusual formatting can be a social-engineering tactic.",
		})
		score += styleWeight
	}

	return flags, score
}

// hasStyleAnomaly reports shouting: three or more exclamation marks, or
// upper-case letters above 40% of all characters in non-empty text.
func hasStyleAnomaly(text string) bool {
	if strings.Count(text, "!") >= styleExclamationMin {
		return true
	}

	total := 0
	upper := 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return total > 0 && float64(upper) > styleUppercaseRatio*float64(total)
}
