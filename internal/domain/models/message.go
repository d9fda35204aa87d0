package models

// Channel identifies where a message arrived from
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelChat  Channel = "chat"
)

// Message represents a single inbound message to screen. It is an
// immutable input: one analysis call, no persistence.
type Message struct {
	Text      string   `json:"text"`
	Sender    string   `json:"sender,omitempty"`
	Channel   Channel  `json:"channel,omitempty"`
	Allowlist []string `json:"allowlist,omitempty"`
}

// FlagID identifies a category of risk evidence
type FlagID string

const (
	FlagUrgency     FlagID = "urgency"     // urgency or pressure wording
	FlagThreat      FlagID = "threat"      // threats of legal or police action
	FlagPayment     FlagID = "payment"     // unusual payment method request
	FlagCredentials FlagID = "credentials" // asks for codes or passwords
	FlagStyle       FlagID = "style"       // shouting or punctuation abuse
	FlagUnicode     FlagID = "unicode"     // non-ASCII or mixed-script host
	FlagTLD         FlagID = "tld"         // high-risk top-level domain
	FlagLookalike   FlagID = "lookalike"   // brand lookalike host
)

// Flag is a single piece of evidence contributing to the risk score.
// Immutable once produced; owned by the AnalysisResult containing it.
type Flag struct {
	ID          FlagID `json:"id"`
	Title       string `json:"title"`
	Severity    int    `json:"severity"`
	Explanation string `json:"explanation"`
}

// Verdict is the three-tier risk classification
type Verdict string

const (
	VerdictHighRisk   Verdict = "High Risk"
	VerdictCaution    Verdict = "Caution"
	VerdictLikelySafe Verdict = "Likely Safe"
)

// Slug returns the verdict in snake_case for counter keys and stream
// subjects.
func (v Verdict) Slug() string {
	switch v {
	case VerdictHighRisk:
		return "high_risk"
	case VerdictCaution:
		return "caution"
	case VerdictLikelySafe:
		return "likely_safe"
	default:
		return "unknown"
	}
}

// Color is the display color derived from a verdict
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
)

// Score bounds and verdict thresholds
const (
	ScoreMin = 0
	ScoreMax = 100

	HighRiskThreshold = 70
	CautionThreshold  = 35
)

// ClampScore bounds a raw score sum to [ScoreMin, ScoreMax]
func ClampScore(score int) int {
	if score < ScoreMin {
		return ScoreMin
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}

// VerdictForScore maps a clamped score to its verdict and display color
func VerdictForScore(score int) (Verdict, Color) {
	switch {
	case score >= HighRiskThreshold:
		return VerdictHighRisk, ColorRed
	case score >= CautionThreshold:
		return VerdictCaution, ColorOrange
	default:
		return VerdictLikelySafe, ColorGreen
	}
}

// AnalysisResult is the outcome of one analysis pass. It is a pure
// value: identical input text always yields an identical result. Flags
// keep detection order; URLs keep first-seen order with duplicates.
type AnalysisResult struct {
	Score   int      `json:"score"`
	Verdict Verdict  `json:"verdict"`
	Color   Color    `json:"color"`
	Flags   []Flag   `json:"flags"`
	URLs    []string `json:"urls"`
}
