package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ApproveBackorderCommandHandler resolves pending backorder decisions.
//
// The handler records the approval outcome on the aggregate (Approved,
// Partial or Rejected) and then drives the follow-up status change through
// the regular transition path: Confirmed when anything was approved,
// Cancelled on a full rejection. Both steps share one transaction, so the
// credit reservation taken on confirmation is checked against the
// approved-only total and a failed reservation rolls the decision back too.
type ApproveBackorderCommandHandler struct {
	uowFactory  UoWFactory
	transitions *TransitionOrderCommandHandler
	publisher   ports.EventPublisher
	clock       func() time.Time
}

// NewApproveBackorderCommandHandler creates a handler for backorder approval
// operations.
func NewApproveBackorderCommandHandler(
	uowFactory UoWFactory,
	transitions *TransitionOrderCommandHandler,
	publisher ports.EventPublisher,
) ApproveBackorderCommandHandler {
	return ApproveBackorderCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		publisher:   publisher,
		clock:       time.Now,
	}
}

// Handle processes the approval command and returns the order after its
// follow-up transition.
func (h *ApproveBackorderCommandHandler) Handle(
	ctx context.Context, cmd ApproveBackorderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	decision, err := o.ResolveBackorder(cmd.ApprovedItemIDs())
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	target := order.Confirmed
	if decision == order.BackorderRejected {
		target = order.Cancelled
	}

	transitionCmd, err := NewTransitionOrderCommand(cmd.OrderID(), target, cmd.ActorRole(), TransitionOptions{})
	if err != nil {
		return nil, err
	}

	o, events, err := h.transitions.applyTransition(ctx, uow, transitionCmd)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, ports.BackorderResolvedEvent{
		OrderID:    cmd.OrderID(),
		Decision:   decision,
		OccurredAt: h.clock(),
	})
	for _, event := range events {
		h.publisher.Publish(ctx, event)
	}

	return o, nil
}
