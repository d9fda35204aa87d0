package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/domain/models"
)

func TestDomainAnalyzerHosts(t *testing.T) {
	analyzer := NewDomainAnalyzer()

	urls := []string{
		"https://First.example/path",
		"http://",
		"://broken",
		"https://second.example",
	}

	assert.Equal(t, []string{"first.example", "second.example"}, analyzer.Hosts(urls))
}

func TestDomainAnalyzerCheck(t *testing.T) {
	analyzer := NewDomainAnalyzer()

	testCases := []struct {
		name      string
		hosts     []string
		wantIDs   []models.FlagID
		wantScore int
	}{
		{
			name:      "no hosts",
			hosts:     nil,
			wantIDs:   []models.FlagID{},
			wantScore: 0,
		},
		{
			name:      "plain ascii host",
			hosts:     []string{"example.com"},
			wantIDs:   []models.FlagID{},
			wantScore: 0,
		},
		{
			name:      "suspicious tld",
			hosts:     []string{"evil.top"},
			wantIDs:   []models.FlagID{models.FlagTLD},
			wantScore: 5,
		},
		{
			name:      "greek omicron lookalike host",
			hosts:     []string{"gοogle.com"},
			wantIDs:   []models.FlagID{models.FlagUnicode},
			wantScore: 20,
		},
		{
			name:      "cyrillic host with risky tld",
			hosts:     []string{"почта.ru"},
			wantIDs:   []models.FlagID{models.FlagUnicode, models.FlagTLD},
			wantScore: 25,
		},
		{
			name:      "duplicate tld flags collapse but still add up",
			hosts:     []string{"evil.top", "worse.top"},
			wantIDs:   []models.FlagID{models.FlagTLD},
			wantScore: 10,
		},
		{
			name:      "host without a dot",
			hosts:     []string{"localhost"},
			wantIDs:   []models.FlagID{},
			wantScore: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			flags, score := analyzer.Check(tc.hosts)

			gotIDs := make([]models.FlagID, 0, len(flags))
			for _, f := range flags {
				gotIDs = append(gotIDs, f.ID)
			}

			assert.Equal(t, tc.wantIDs, gotIDs)
			assert.Equal(t, tc.wantScore, score)
		})
	}
}

func TestDomainAnalyzerCheckKeepsFirstExplanation(t *testing.T) {
	analyzer := NewDomainAnalyzer()

	flags, score := analyzer.Check([]string{"evil.top", "worse.top"})
	require.Len(t, flags, 1)

	assert.Equal(t, models.FlagTLD, flags[0].ID)
	assert.Equal(t, "Unfamiliar or high-risk TLD", flags[0].Title)
	assert.Equal(t, 1, flags[0].Severity)
	assert.Equal(t, "Domain 'evil.top' uses a TLD often seen in spam.", flags[0].Explanation)
	assert.Equal(t, 10, score)
}

func TestHasMixedScripts(t *testing.T) {
	testCases := []struct {
		name string
		host string
		want bool
	}{
		{name: "pure latin", host: "google.com", want: false},
		{name: "latin with greek omicron", host: "gοogle.com", want: true},
		{name: "latin with cyrillic a", host: "pаypal.com", want: true},
		{name: "pure cyrillic", host: "почта", want: false},
		{name: "digits and punctuation are neutral", host: "pay-pal123.com", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hasMixedScripts(tc.host))
		})
	}
}
