package streaming

import (
	"time"

	"github.com/google/uuid"

	"trustguard/internal/domain/models"
)

// EventType represents the type of streamed event
type EventType string

const (
	EventTypeVerdict  EventType = "verdict"
	EventTypeAdvisory EventType = "advisory"
	EventTypeReport   EventType = "report"
)

// VerdictEvent is the real-time record of one screened message. It
// carries the assessment, never the message text itself: subscribers
// see what was decided, not what was said.
type VerdictEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Assessment details
	Score   int             `json:"score"`
	Verdict models.Verdict  `json:"verdict"`
	Color   models.Color    `json:"color"`
	FlagIDs []models.FlagID `json:"flag_ids,omitempty"`
	URLs    int             `json:"urls"`

	// Request context
	Channel models.Channel `json:"channel,omitempty"`
	Source  string         `json:"source,omitempty"`

	// Advisory context, present on advisory events
	AdvisoryStatus models.AdvisoryStatus `json:"advisory_status,omitempty"`
	Confidence     float64               `json:"confidence,omitempty"`
}

// NewVerdictEvent creates a verdict event from an analysis result
func NewVerdictEvent(result models.AnalysisResult, channel models.Channel, source string) *VerdictEvent {
	flagIDs := make([]models.FlagID, len(result.Flags))
	for i, f := range result.Flags {
		flagIDs[i] = f.ID
	}

	return &VerdictEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeVerdict,
		Timestamp: time.Now(),
		Score:     result.Score,
		Verdict:   result.Verdict,
		Color:     result.Color,
		FlagIDs:   flagIDs,
		URLs:      len(result.URLs),
		Channel:   channel,
		Source:    source,
	}
}

// NewAdvisoryEvent creates an event for a completed advisory call
func NewAdvisoryEvent(outcome models.AdvisoryOutcome, channel models.Channel, source string) *VerdictEvent {
	event := &VerdictEvent{
		ID:             uuid.New().String(),
		Type:           EventTypeAdvisory,
		Timestamp:      time.Now(),
		Channel:        channel,
		Source:         source,
		AdvisoryStatus: outcome.Status,
	}
	if outcome.Judgment != nil {
		event.Score = outcome.Judgment.Score
		event.Verdict = outcome.Judgment.Verdict
		_, event.Color = models.VerdictForScore(outcome.Judgment.Score)
		event.Confidence = outcome.Judgment.Confidence
	}
	return event
}

// Subscription represents a client's subscription preferences
type Subscription struct {
	// Drop events scoring below this value
	MinScore int `json:"min_score,omitempty"`

	// Filter by verdict (empty = all)
	Verdicts []models.Verdict `json:"verdicts,omitempty"`

	// Filter by message channel (empty = all)
	Channels []models.Channel `json:"channels,omitempty"`

	// Filter by event type (empty = all)
	Types []EventType `json:"types,omitempty"`
}

// Matches checks if an event matches the subscription filters
func (s *Subscription) Matches(event *VerdictEvent) bool {
	if event.Score < s.MinScore {
		return false
	}

	if len(s.Verdicts) > 0 {
		found := false
		for _, v := range s.Verdicts {
			if v == event.Verdict {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(s.Channels) > 0 {
		found := false
		for _, c := range s.Channels {
			if c == event.Channel {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(s.Types) > 0 {
		found := false
		for _, t := range s.Types {
			if t == event.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
