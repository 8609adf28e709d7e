package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
)

// Event is a domain event emitted after a committed transition.
type Event interface {
	EventName() string
}

// EventPublisher delivers committed-transition events to external
// collaborators: the notification dispatcher and the audit log writer.
//
// Publish is fire-and-forget and is called strictly after commit, never
// inside the transaction. Implementations log delivery failures and swallow
// them; a failed notification or audit write never invalidates a committed
// transition.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// OrderTransitionedEvent records one committed status change. It carries the
// fields the audit log writer persists.
type OrderTransitionedEvent struct {
	OrderID    kernel.UUID
	From       order.Status
	To         order.Status
	ActorRole  staff.Role
	OccurredAt time.Time
}

// EventName implements Event.
func (OrderTransitionedEvent) EventName() string {
	return "order.transitioned"
}

// PackingSessionTimedOutEvent records a stale packing session reverted by the
// timeout sweep. Consumed by the notification dispatcher to alert the packer.
type PackingSessionTimedOutEvent struct {
	SessionID  kernel.UUID
	OrderID    kernel.UUID
	PackerID   kernel.UUID
	OccurredAt time.Time
}

// EventName implements Event.
func (PackingSessionTimedOutEvent) EventName() string {
	return "packing.session_timed_out"
}

// BackorderResolvedEvent records the approval decision taken on a pending
// backorder.
type BackorderResolvedEvent struct {
	OrderID    kernel.UUID
	Decision   order.BackorderStatus
	OccurredAt time.Time
}

// EventName implements Event.
func (BackorderResolvedEvent) EventName() string {
	return "order.backorder_resolved"
}
