// Package notify delivers committed-transition events to the operational log.
// It stands in for the notification dispatcher and audit log writer: every
// event lands as a structured log record with its name and payload fields.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// SlogEventPublisher publishes domain events as structured log records.
// Publish never fails; this adapter has no delivery to lose.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher writing to the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With(slog.String("component", "events")),
	}
}

// Publish implements ports.EventPublisher.
func (p *SlogEventPublisher) Publish(ctx context.Context, event ports.Event) {
	switch e := event.(type) {
	case ports.OrderTransitionedEvent:
		p.logger.InfoContext(ctx, e.EventName(),
			"order_id", e.OrderID.String(),
			"from", e.From.String(),
			"to", e.To.String(),
			"actor_role", e.ActorRole.String(),
			"occurred_at", e.OccurredAt,
		)
	case ports.PackingSessionTimedOutEvent:
		p.logger.WarnContext(ctx, e.EventName(),
			"session_id", e.SessionID.String(),
			"order_id", e.OrderID.String(),
			"packer_id", e.PackerID.String(),
			"occurred_at", e.OccurredAt,
		)
	case ports.BackorderResolvedEvent:
		p.logger.InfoContext(ctx, e.EventName(),
			"order_id", e.OrderID.String(),
			"decision", e.Decision.String(),
			"occurred_at", e.OccurredAt,
		)
	default:
		p.logger.InfoContext(ctx, event.EventName())
	}
}
