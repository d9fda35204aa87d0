package services

import "trustguard/internal/domain/models"

// KeywordCategory groups the keywords of one lexical check together
// with the flag it raises and the score it contributes.
type KeywordCategory struct {
	ID          models.FlagID
	Title       string
	Severity    int
	Weight      int
	Keywords    []string
	Explanation string
}

// KeywordCategories returns the lexical checks in detection order.
// Keywords are lower case; matching is substring membership against
// lower-cased text, at most one flag per category.
func KeywordCategories() []KeywordCategory {
	return []KeywordCategory{
		{
			ID:       models.FlagUrgency,
			Title:    "Urgency or pressure",
			Severity: 2,
			Weight:   15,
			Keywords: []string{
				"urgent", "immediately", "act now", "24 hours", "final notice",
				"your account will be", "suspended", "last warning", "overdue",
			},
			Explanation: "The message uses urgency/pressure (e.g., 'act now', 'suspended').",
		},
		{
			ID:       models.FlagThreat,
			Title:    "Threatening language",
			Severity: 2,
			Weight:   10,
			Keywords: []string{
				"legal action", "police", "lawsuit", "prosecution", "fine",
			},
			Explanation: "Mentions threats or legal action to force quick decisions.",
		},
		{
			ID:       models.FlagPayment,
			Title:    "Unusual payment request",
			Severity: 3,
			Weight:   25,
			Keywords: []string{
				"gift card", "itunes card", "bitcoin", "crypto", "wire transfer",
				"western union", "moneygram", "voucher",
			},
			Explanation: "Asks for gift cards, crypto, or non-reversible transfers.",
		},
		{
			ID:       models.FlagCredentials,
			Title:    "Requests codes or passwords",
			Severity: 3,
			Weight:   25,
			Keywords: []string{
				"password", "otp", "2fa", "verification code", "pin", "passcode",
			},
			Explanation: "Legitimate support will not ask for your OTP, 2FA, or password.",
		},
	}
}

// Style anomaly parameters
const (
	styleWeight         = 5
	styleSeverity       = 1
	styleExclamationMin = 3
	styleUppercaseRatio = 0.4
)

// Per-host check weights
const (
	unicodeWeight   = 20
	unicodeSeverity = 3
	tldWeight       = 5
	tldSeverity     = 1
)

// Lookalike matching parameters
const (
	lookalikeWeight    = 25
	lookalikeSeverity  = 3
	lookalikeThreshold = 0.75
)

// SuspiciousTLDs returns top-level domains often seen in spam. This is
// a heuristic signal, not a blocklist.
func SuspiciousTLDs() map[string]bool {
	return map[string]bool{
		"zip":  true,
		"top":  true,
		"cam":  true,
		"info": true,
		"biz":  true,
		"ru":   true,
		"cn":   true,
	}
}

// KnownBrands returns the canonical brand domains used as the lookalike
// matching reference. Callers needing per-request allowlists must merge
// into a fresh copy, never mutate the returned slice in place.
func KnownBrands() []string {
	return []string{
		"microsoft.com",
		"google.com",
		"apple.com",
		"paypal.com",
		"amazon.com",
		"facebook.com",
		"bankofamerica.com",
		"hsbc.com",
		"slsp.sk",
		"tatrabanka.sk",
	}
}
