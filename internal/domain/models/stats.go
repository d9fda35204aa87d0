package models

// UsageStats are the service counters kept in Redis. All counters are
// zero when the cache is unavailable; they are best-effort telemetry,
// never an input to analysis.
type UsageStats struct {
	Analyzed   int64            `json:"analyzed"`
	Advisories int64            `json:"advisories"`
	Reports    int64            `json:"reports"`
	Verdicts   map[string]int64 `json:"verdicts"`
}
