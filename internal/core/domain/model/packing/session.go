// Package packing provides the packing session aggregate: the bounded period
// during which one packer is actively fulfilling one order's line items.
// A session exists exactly while its order is in the packing status; sessions
// whose activity goes stale are reverted by the timeout sweep.
package packing

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not
	// created through the NewSession factory method.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

	// ErrSessionIsNotActive indicates activity recorded against a session that
	// was already closed.
	ErrSessionIsNotActive = errors.New("packing session is not active")
)

// Session is the aggregate root for one packing session. It is owned 1:1 by
// its order while active and marked inactive when the order leaves packing in
// either direction: forward to ready-for-delivery, or reverted to confirmed
// or cancelled.
type Session struct {
	id             kernel.UUID
	orderID        kernel.UUID
	packerID       kernel.UUID
	startedAt      time.Time
	lastActivityAt time.Time
	active         bool

	isConstructed bool
}

// NewSession creates an active packing session starting now.
func NewSession(id, orderID, packerID kernel.UUID, now time.Time) (*Session, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), packerID.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:             id,
		orderID:        orderID,
		packerID:       packerID,
		startedAt:      now,
		lastActivityAt: now,
		active:         true,
		isConstructed:  true,
	}, nil
}

// RestoreSession reconstructs a packing session from persistence.
func RestoreSession(
	id, orderID, packerID kernel.UUID,
	startedAt, lastActivityAt time.Time,
	active bool,
) (*Session, error) {
	session, err := NewSession(id, orderID, packerID, startedAt)
	if err != nil {
		return nil, err
	}

	session.lastActivityAt = lastActivityAt
	session.active = active
	return session, nil
}

// Validate ensures the Session was created through its constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the order being packed.
func (s *Session) OrderID() kernel.UUID {
	return s.orderID
}

// PackerID returns the identifier of the packer running the session.
func (s *Session) PackerID() kernel.UUID {
	return s.packerID
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// LastActivityAt returns the time of the most recent packing activity.
func (s *Session) LastActivityAt() time.Time {
	return s.lastActivityAt
}

// Active reports whether the session is still running.
func (s *Session) Active() bool {
	return s.active
}

// Touch records packing activity, pushing the staleness deadline forward.
// Fails for a closed session.
func (s *Session) Touch(now time.Time) error {
	if !s.active {
		return ErrSessionIsNotActive
	}

	s.lastActivityAt = now
	return nil
}

// Close marks the session inactive. Closing an already closed session is a
// no-op so both race losers and normal teardown can call it safely.
func (s *Session) Close() {
	s.active = false
}

// IsStale reports whether the session is active but has seen no activity for
// longer than threshold. Stale sessions are reverted by the timeout sweep.
func (s *Session) IsStale(threshold time.Duration, now time.Time) bool {
	return s.active && now.Sub(s.lastActivityAt) > threshold
}
