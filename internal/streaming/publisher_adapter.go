package streaming

import (
	"context"

	"trustguard/internal/domain/models"
)

// VerdictPublisher fans analysis outcomes out to the event bus and any
// connected WebSocket clients. Both targets are optional; a nil target
// is skipped.
type VerdictPublisher struct {
	eventBus *EventBus
	wsHub    *WebSocketHub
}

// NewVerdictPublisher creates a new publisher adapter
func NewVerdictPublisher(eventBus *EventBus, wsHub *WebSocketHub) *VerdictPublisher {
	return &VerdictPublisher{
		eventBus: eventBus,
		wsHub:    wsHub,
	}
}

// PublishVerdict publishes the outcome of one message analysis
func (p *VerdictPublisher) PublishVerdict(ctx context.Context, result models.AnalysisResult, channel models.Channel, source string) error {
	event := NewVerdictEvent(result, channel, source)

	// Publish to event bus (NATS + local subscribers)
	if p.eventBus != nil {
		if err := p.eventBus.Publish(ctx, event); err != nil {
			return err
		}
	}

	// Broadcast to WebSocket clients (caregiver dashboards)
	if p.wsHub != nil {
		p.wsHub.BroadcastEvent(event)
	}

	return nil
}

// PublishAdvisory publishes the outcome of one advisory call
func (p *VerdictPublisher) PublishAdvisory(ctx context.Context, outcome models.AdvisoryOutcome, channel models.Channel, source string) error {
	event := NewAdvisoryEvent(outcome, channel, source)

	if p.eventBus != nil {
		if err := p.eventBus.Publish(ctx, event); err != nil {
			return err
		}
	}

	if p.wsHub != nil {
		p.wsHub.BroadcastEvent(event)
	}

	return nil
}
