package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/runenames"

	"trustguard/internal/domain/models"
)

// DomainAnalyzer inspects the hosts of extracted URLs for homograph
// tricks (non-ASCII or mixed-script characters) and high-risk TLDs.
type DomainAnalyzer struct {
	suspiciousTLDs map[string]bool
}

// NewDomainAnalyzer creates a new DomainAnalyzer over the default TLD set
func NewDomainAnalyzer() *DomainAnalyzer {
	return &DomainAnalyzer{suspiciousTLDs: SuspiciousTLDs()}
}

// Hosts derives the host of each URL, preserving URL order. URLs whose
// host cannot be derived are skipped silently.
func (a *DomainAnalyzer) Hosts(urls []string) []string {
	hosts := make([]string, 0, len(urls))
	for _, u := range urls {
		if h := HostOf(u); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// Check runs the unicode and TLD checks over each host in order. Flags
// of the same id are recorded once, keeping the first qualifying host's
// explanation, while the score contribution is added once per
// qualifying host.
func (a *DomainAnalyzer) Check(hosts []string) ([]models.Flag, int) {
	var flags []models.Flag
	score := 0
	seen := make(map[models.FlagID]bool)

	for _, host := range hosts {
		if containsNonASCII(host) || hasMixedScripts(host) {
			if !seen[models.FlagUnicode] {
				seen[models.FlagUnicode] = true
				flags = append(flags, models.Flag{
					ID:          models.FlagUnicode,
					Title:       "Non-ASCII or mixed-script domain",
					Severity:    unicodeSeverity,
					Explanation: fmt.Sprintf("Domain '%s' contains non-ASCII or mixed scripts that can hide lookalikes.", host),
				})
			}
			score += unicodeWeight
		}

		if a.suspiciousTLDs[lastLabel(host)] {
			if !seen[models.FlagTLD] {
				seen[models.FlagTLD] = true
				flags = append(flags, models.Flag{
					ID:          models.FlagTLD,
					Title:       "Unfamiliar or high-risk TLD",
					Severity:    tldSeverity,
					Explanation: fmt.Sprintf("Domain '%s' uses a TLD often seen in spam.", host),
				})
			}
			score += tldWeight
		}
	}

	return flags, score
}

// lastLabel returns the final dot-separated label of a host
func lastLabel(host string) string {
	idx := strings.LastIndex(host, ".")
	return host[idx+1:]
}

// containsNonASCII reports whether any character falls outside ASCII
func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

// hasMixedScripts reports whether the characters span more than one of
// the Latin, Cyrillic, and Greek script families. Classification uses
// the Unicode character name; characters whose family cannot be
// determined are ignored, not treated as suspicious.
func hasMixedScripts(s string) bool {
	scripts := make(map[string]bool)
	for _, r := range s {
		name := runenames.Name(r)
		switch {
		case strings.Contains(name, "CYRILLIC"):
			scripts["CYRILLIC"] = true
		case strings.Contains(name, "GREEK"):
			scripts["GREEK"] = true
		case strings.Contains(name, "LATIN"):
			scripts["LATIN"] = true
		}
	}
	return len(scripts) > 1
}
