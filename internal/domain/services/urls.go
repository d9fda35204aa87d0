package services

import (
	"net/url"
	"regexp"
	"strings"
)

// urlPattern matches an http(s) scheme followed by anything up to the
// next whitespace. No further well-formedness validation happens here.
var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// URLExtractor finds URL-like substrings in message text
type URLExtractor struct{}

// NewURLExtractor creates a new URLExtractor
func NewURLExtractor() *URLExtractor {
	return &URLExtractor{}
}

// Extract returns all URL-like substrings in first-seen order with
// duplicates preserved exactly as they appear.
func (e *URLExtractor) Extract(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// HostOf derives the host of a URL: the network location, lower-cased,
// with any port stripped. Returns "" when the URL cannot be parsed or
// has no host; callers treat that as "no signal", not an error.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
