package services

import (
	"strings"

	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

// Analyzer composes the lexical, URL, domain, and lookalike checks into
// a single message risk assessment. Analysis is deterministic and pure:
// the same text always yields the same result, and no network or clock
// access happens on this path.
type Analyzer struct {
	brands    []string
	lexical   *LexicalScanner
	urls      *URLExtractor
	domains   *DomainAnalyzer
	lookalike *LookalikeMatcher
	logger    *logger.Logger
}

// NewAnalyzer creates an Analyzer over the given brand list. A nil or
// empty list falls back to the built-in known brands. The list is
// copied so later mutation by the caller cannot affect analysis.
func NewAnalyzer(brands []string, log *logger.Logger) *Analyzer {
	if len(brands) == 0 {
		brands = KnownBrands()
	}
	owned := make([]string, len(brands))
	copy(owned, brands)

	return &Analyzer{
		brands:    owned,
		lexical:   NewLexicalScanner(),
		urls:      NewURLExtractor(),
		domains:   NewDomainAnalyzer(),
		lookalike: NewLookalikeMatcher(),
		logger:    log.WithComponent("analyzer"),
	}
}

// Analyze assesses a message with no per-request allowlist.
func (a *Analyzer) Analyze(text string) models.AnalysisResult {
	return a.AnalyzeWith(text, nil)
}

// AnalyzeWith assesses a message, treating the allowlist entries as
// additional trusted brand domains for the lookalike check. Flags are
// ordered keyword categories first, then style, then per-URL flags in
// URL order, with the lookalike flag always last.
func (a *Analyzer) AnalyzeWith(text string, allowlist []string) models.AnalysisResult {
	flags := make([]models.Flag, 0, 4)

	lexFlags, lexScore := a.lexical.Scan(text)
	flags = append(flags, lexFlags...)

	urls := a.urls.Extract(text)
	hosts := a.domains.Hosts(urls)

	domainFlags, domainScore := a.domains.Check(hosts)
	flags = append(flags, domainFlags...)

	pairs, lookalikeScore := a.lookalike.Match(hosts, a.mergedBrands(allowlist))
	if len(pairs) > 0 {
		flags = append(flags, a.lookalike.Flag(pairs))
	}

	score := models.ClampScore(lexScore + domainScore + lookalikeScore)
	verdict, color := models.VerdictForScore(score)

	a.logger.Debug().
		Int("score", score).
		Str("verdict", string(verdict)).
		Int("flags", len(flags)).
		Int("urls", len(urls)).
		Msg("Message analyzed")

	return models.AnalysisResult{
		Score:   score,
		Verdict: verdict,
		Color:   color,
		Flags:   flags,
		URLs:    urls,
	}
}

// mergedBrands returns a fresh slice of the configured brands plus any
// normalized allowlist entries. The analyzer's own list is never
// mutated.
func (a *Analyzer) mergedBrands(allowlist []string) []string {
	if len(allowlist) == 0 {
		return a.brands
	}
	merged := make([]string, len(a.brands), len(a.brands)+len(allowlist))
	copy(merged, a.brands)
	for _, entry := range allowlist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			merged = append(merged, entry)
		}
	}
	return merged
}
