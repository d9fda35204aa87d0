package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"trustguard/internal/domain/models"
)

// LookalikeMatcher compares URL hosts against known brand domains and
// flags near-matches that are likely typosquats or homographs. Exact
// matches are the real brand and never flagged.
type LookalikeMatcher struct {
	threshold float64
	dmp       *diffmatchpatch.DiffMatchPatch
}

// NewLookalikeMatcher creates a matcher with the default similarity threshold
func NewLookalikeMatcher() *LookalikeMatcher {
	return &LookalikeMatcher{
		threshold: lookalikeThreshold,
		dmp:       diffmatchpatch.New(),
	}
}

// Match scans each host against the brand list in order. A host that
// exactly equals any brand is the real thing and is never flagged, no
// matter how closely it resembles another brand. Otherwise the first
// brand whose similarity exceeds the threshold claims the host and the
// scan moves on to the next host. Returns the "host (approximately)
// brand" pairs in host order and the total score contribution, one
// weight per matched host.
func (m *LookalikeMatcher) Match(hosts, brands []string) ([]string, int) {
	var pairs []string
	score := 0
	for _, host := range hosts {
		if isExactBrand(host, brands) {
			continue
		}
		for _, brand := range brands {
			if m.similarity(host, brand) > m.threshold {
				pairs = append(pairs, fmt.Sprintf("%s≈%s", host, brand))
				score += lookalikeWeight
				break
			}
		}
	}
	return pairs, score
}

func isExactBrand(host string, brands []string) bool {
	for _, brand := range brands {
		if host == brand {
			return true
		}
	}
	return false
}

// Flag builds the single aggregate lookalike flag for a set of pairs
func (m *LookalikeMatcher) Flag(pairs []string) models.Flag {
	return models.Flag{
		ID:          models.FlagLookalike,
		Title:       "Brand lookalike domain",
		Severity:    lookalikeSeverity,
		Explanation: "These domains resemble well-known brands: " + strings.Join(pairs, ", "),
	}
}

// similarity is 1 minus the normalized Levenshtein distance between the
// two strings, measured in runes. Identical strings score 1.0, fully
// disjoint strings score 0.0.
func (m *LookalikeMatcher) similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	diffs := m.dmp.DiffMain(a, b, false)
	dist := m.dmp.DiffLevenshtein(diffs)
	return 1.0 - float64(dist)/float64(maxLen)
}
