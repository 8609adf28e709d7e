package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SweepPackingSessionsCommandHandler reverts orders stuck in Packing.
//
// The sweep finds active sessions with no activity past the staleness
// threshold and pushes each order back to Confirmed through the regular
// transition path under the System role, which may drive exactly that edge
// and nothing else. At most one sweep runs at a time: a sweep that fires
// while another is in flight skips, it never queues.
//
// An order that a human moved between listing and revert yields a denied
// transition; that lost race is expected and logged quietly. Any other
// per-order failure is logged and the sweep carries on with the rest of the
// batch.
type SweepPackingSessionsCommandHandler struct {
	uowFactory  UoWFactory
	transitions *TransitionOrderCommandHandler
	publisher   ports.EventPublisher
	staleAfter  time.Duration
	logger      *slog.Logger
	clock       func() time.Time

	running atomic.Bool
}

// NewSweepPackingSessionsCommandHandler creates a handler for the packing
// timeout sweep. staleAfter is the inactivity threshold after which a session
// counts as abandoned.
func NewSweepPackingSessionsCommandHandler(
	uowFactory UoWFactory,
	transitions *TransitionOrderCommandHandler,
	publisher ports.EventPublisher,
	staleAfter time.Duration,
	logger *slog.Logger,
) *SweepPackingSessionsCommandHandler {
	return &SweepPackingSessionsCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		publisher:   publisher,
		staleAfter:  staleAfter,
		logger:      logger,
		clock:       time.Now,
	}
}

// Handle runs one sweep over all stale packing sessions.
func (h *SweepPackingSessionsCommandHandler) Handle(ctx context.Context, cmd SweepPackingSessionsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.running.CompareAndSwap(false, true) {
		h.logger.Debug("packing sweep already running, skipping")
		return nil
	}
	defer h.running.Store(false)

	stale, err := h.findStaleSessions(ctx)
	if err != nil {
		return err
	}

	for _, session := range stale {
		if err = h.revert(ctx, session); err != nil {
			h.logger.Error("failed to revert stale packing session",
				"session_id", session.ID().String(),
				"order_id", session.OrderID().String(),
				"error", err)
		}
	}

	return nil
}

func (h *SweepPackingSessionsCommandHandler) findStaleSessions(
	ctx context.Context,
) ([]*packing.Session, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.PackingSessionRepository().GetAllStale(ctx, h.clock().Add(-h.staleAfter))
}

// revert pushes one stale order back to Confirmed. The transition handler
// closes the session as part of leaving Packing, in the same transaction as
// the status change.
func (h *SweepPackingSessionsCommandHandler) revert(ctx context.Context, session *packing.Session) error {
	cmd, err := NewTransitionOrderCommand(
		session.OrderID(), order.Confirmed, staff.System, TransitionOptions{},
	)
	if err != nil {
		return err
	}

	if _, err = h.transitions.Handle(ctx, cmd); err != nil {
		if errors.Is(err, services.ErrNoSuchEdge) || errors.Is(err, services.ErrNoOpTransition) {
			h.logger.Debug("stale packing session already moved on, skipping",
				"session_id", session.ID().String(),
				"order_id", session.OrderID().String())
			return nil
		}
		return err
	}

	h.publisher.Publish(ctx, ports.PackingSessionTimedOutEvent{
		SessionID:  session.ID(),
		OrderID:    session.OrderID(),
		PackerID:   session.PackerID(),
		OccurredAt: h.clock(),
	})

	return nil
}
