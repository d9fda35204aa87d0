package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"trustguard/internal/domain/services"
)

// PatternsHandler serves the reference detection tables so clients can
// run the same checks offline.
type PatternsHandler struct {
	version string
}

// NewPatternsHandler creates a new PatternsHandler
func NewPatternsHandler(version string) *PatternsHandler {
	return &PatternsHandler{version: version}
}

// KeywordPatterns describes one lexical category
type KeywordPatterns struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Severity int      `json:"severity"`
	Weight   int      `json:"weight"`
	Keywords []string `json:"keywords"`
}

// PatternsResponse is the full reference table payload
type PatternsResponse struct {
	Version        string            `json:"version"`
	Categories     []KeywordPatterns `json:"categories"`
	SuspiciousTLDs []string          `json:"suspicious_tlds"`
	KnownBrands    []string          `json:"known_brands"`
}

// Get handles GET /api/v1/patterns
func (h *PatternsHandler) Get(w http.ResponseWriter, r *http.Request) {
	categories := services.KeywordCategories()
	cats := make([]KeywordPatterns, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, KeywordPatterns{
			ID:       string(c.ID),
			Title:    c.Title,
			Severity: c.Severity,
			Weight:   c.Weight,
			Keywords: c.Keywords,
		})
	}

	tlds := make([]string, 0, len(services.SuspiciousTLDs()))
	for tld := range services.SuspiciousTLDs() {
		tlds = append(tlds, tld)
	}
	sort.Strings(tlds)

	response := PatternsResponse{
		Version:        h.version,
		Categories:     cats,
		SuspiciousTLDs: tlds,
		KnownBrands:    services.KnownBrands(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
