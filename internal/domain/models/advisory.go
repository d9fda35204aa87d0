package models

// Judgment is the advisory service's assessment of a message. It has
// the same shape as an analysis verdict plus free-form reasoning.
type Judgment struct {
	Score      int      `json:"score"`
	Verdict    Verdict  `json:"verdict"`
	Reasons    []string `json:"reasons"`
	Advice     []string `json:"advice"`
	Confidence float64  `json:"confidence"`
}

// AdvisoryStatus classifies how an advisory judgment was obtained
type AdvisoryStatus string

const (
	AdvisoryOK           AdvisoryStatus = "ok"            // parsed service response
	AdvisoryConfigError  AdvisoryStatus = "config_error"  // missing credentials, no call attempted
	AdvisoryServiceError AdvisoryStatus = "service_error" // transport failure, fallback judgment
	AdvisoryParseError   AdvisoryStatus = "parse_error"   // malformed payload, fallback judgment
)

// AdvisoryOutcome carries a judgment together with how it was produced.
// Degraded outcomes hold a conservative local fallback; a config error
// holds no judgment at all and must stop the caller.
type AdvisoryOutcome struct {
	Status   AdvisoryStatus `json:"status"`
	Judgment *Judgment      `json:"judgment,omitempty"`
	Err      error          `json:"-"`
}

// Degraded reports whether the judgment is a local fallback rather than
// a parsed service response.
func (o AdvisoryOutcome) Degraded() bool {
	return o.Status == AdvisoryServiceError || o.Status == AdvisoryParseError
}

// Failed reports whether the outcome carries no judgment at all
func (o AdvisoryOutcome) Failed() bool {
	return o.Status == AdvisoryConfigError
}
