package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// defaultStockRetryLimit bounds how many times a transition is retried after
// losing an optimistic-lock race on a stock record.
const defaultStockRetryLimit = 3

// TransitionOrderCommandHandler is the single entry point for order status
// changes. Every transition, human-requested or sweep-requested, runs the
// same sequence:
//
//  1. load the order under a row-level write lock
//  2. ask the authorization gate whether the edge exists and the role may
//     drive it
//  3. apply the side effects the target status requires: stock consumption
//     on entering ReadyForDelivery, stock restore and credit release on
//     cancellation, credit reservation on confirmation from
//     AwaitingApproval, packing session open/close on entering/leaving
//     Packing
//  4. commit the status change and all side effects in one transaction
//  5. publish the transition event after commit, fire-and-forget
//
// A transition that loses an optimistic-lock race on a stock record rolls
// back and retries on fresh state, up to the retry limit; exhaustion surfaces
// as insufficient stock.
type TransitionOrderCommandHandler struct {
	uowFactory      UoWFactory
	gate            *services.AuthorizationGate
	ledger          *services.StockLedger
	creditGuard     *services.CreditGuard
	publisher       ports.EventPublisher
	stockRetryLimit int
	clock           func() time.Time
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	gate *services.AuthorizationGate,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:      uowFactory,
		gate:            gate,
		ledger:          services.NewStockLedger(),
		creditGuard:     services.NewCreditGuard(),
		publisher:       publisher,
		stockRetryLimit: defaultStockRetryLimit,
		clock:           time.Now,
	}
}

// Handle processes the transition command and returns the order in its new
// status.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= h.stockRetryLimit; attempt++ {
		transitioned, err := h.handleOnce(ctx, cmd)
		if err == nil {
			return transitioned, nil
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: stock contention persisted after retries: %v",
		stock.ErrInsufficientStock, lastErr)
}

// handleOnce runs one transition attempt in its own transaction. A failed
// attempt rolls back completely, so a retry starts from clean state.
func (h *TransitionOrderCommandHandler) handleOnce(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transitioned, events, err := h.applyTransition(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range events {
		h.publisher.Publish(ctx, event)
	}

	return transitioned, nil
}

// applyTransition performs the gate check and the side effects of one
// transition inside the caller's transaction. It returns the events to
// publish once that transaction commits. Shared with the backorder approval
// handler, which resolves the approval decision and the follow-up transition
// in a single transaction.
func (h *TransitionOrderCommandHandler) applyTransition(
	ctx context.Context, uow UoW, cmd TransitionOrderCommand,
) (*order.Order, []ports.Event, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	from := o.Status()
	if err = h.gate.Check(from, cmd.Target(), cmd.ActorRole()); err != nil {
		return nil, nil, err
	}

	if from == order.Packing {
		if err = h.closePackingSession(ctx, uow, o, cmd); err != nil {
			return nil, nil, err
		}
	}

	switch cmd.Target() {
	case order.Confirmed:
		if from == order.AwaitingApproval {
			if err = h.reserveCredit(ctx, uow, o); err != nil {
				return nil, nil, err
			}
		}
	case order.ReadyForDelivery:
		if from == order.Packing {
			if err = h.consumeStock(ctx, uow, o); err != nil {
				return nil, nil, err
			}
		}
	case order.Cancelled:
		if err = h.compensate(ctx, uow, o, from); err != nil {
			return nil, nil, err
		}
	}

	if err = o.ChangeStatus(cmd.Target()); err != nil {
		return nil, nil, err
	}

	if cmd.Target() == order.Packing {
		if err = h.openPackingSession(ctx, uow, o, cmd); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, nil, err
	}

	events := []ports.Event{
		ports.OrderTransitionedEvent{
			OrderID:    o.ID(),
			From:       from,
			To:         o.Status(),
			ActorRole:  cmd.ActorRole(),
			OccurredAt: h.clock(),
		},
	}

	return o, events, nil
}

// reserveCredit reserves the order's chargeable total against the customer's
// credit limit. The account row is locked for update, so concurrent
// reservations for the same customer serialize and cannot jointly exceed the
// limit.
func (h *TransitionOrderCommandHandler) reserveCredit(ctx context.Context, uow UoW, o *order.Order) error {
	account, err := uow.CreditRepository().GetForUpdate(ctx, o.CustomerID())
	if err != nil {
		return err
	}
	if err = h.creditGuard.CheckAndReserve(account, o.ChargeableTotalCents()); err != nil {
		return err
	}

	return uow.CreditRepository().Update(ctx, account)
}

// consumeStock decrements stock for the order's approved items. An order
// whose stock is already consumed passes through unchanged, so a replayed
// transition cannot double-decrement.
func (h *TransitionOrderCommandHandler) consumeStock(ctx context.Context, uow UoW, o *order.Order) error {
	records, err := uow.StockRepository().GetByProductIDs(ctx, productIDs(o.ApprovedItems()))
	if err != nil {
		return err
	}

	if err = h.ledger.Consume(o, records); err != nil {
		if errors.Is(err, order.ErrStockAlreadyConsumed) {
			return nil
		}
		return err
	}

	return h.updateStockRecords(ctx, uow, records)
}

// compensate applies the cancellation side effects. Stock is restored when it
// was consumed and the goods never left the warehouse; a delivered order
// keeps its consumption because the goods are gone. Reserved credit is
// released whenever the order got past AwaitingApproval, including the
// credit-note case of cancelling a delivered order.
func (h *TransitionOrderCommandHandler) compensate(
	ctx context.Context, uow UoW, o *order.Order, from order.Status,
) error {
	if o.StockConsumed() && from != order.Delivered {
		records, err := uow.StockRepository().GetByProductIDs(ctx, productIDs(o.ApprovedItems()))
		if err != nil {
			return err
		}
		if err = h.ledger.Restore(o, records); err != nil {
			return err
		}
		if err = h.updateStockRecords(ctx, uow, records); err != nil {
			return err
		}
	}

	if from != order.AwaitingApproval && o.ChargeableTotalCents() > 0 {
		account, err := uow.CreditRepository().GetForUpdate(ctx, o.CustomerID())
		if err != nil {
			return err
		}
		if err = h.creditGuard.Release(account, o.ChargeableTotalCents()); err != nil {
			return err
		}
		if err = uow.CreditRepository().Update(ctx, account); err != nil {
			return err
		}
	}

	return nil
}

// openPackingSession starts a packing session owned by the requesting packer
// and links it to the order. Runs after the status change; a session may only
// attach to an order in Packing status.
func (h *TransitionOrderCommandHandler) openPackingSession(
	ctx context.Context, uow UoW, o *order.Order, cmd TransitionOrderCommand,
) error {
	packerID := cmd.PackerID()
	if packerID == nil {
		return ErrPackerIsRequired
	}

	session, err := packing.NewSession(kernel.NewUUID(), o.ID(), *packerID, h.clock())
	if err != nil {
		return err
	}
	if err = uow.PackingSessionRepository().Add(ctx, session); err != nil {
		return err
	}

	return o.AttachPackingSession(session.ID())
}

// closePackingSession ends the order's active packing session on any
// transition out of Packing. Completing packing (target ReadyForDelivery) on
// a session started on an earlier calendar day is refused unless the caller
// confirmed cross-day packing or holds an administrator override.
func (h *TransitionOrderCommandHandler) closePackingSession(
	ctx context.Context, uow UoW, o *order.Order, cmd TransitionOrderCommand,
) error {
	session, err := uow.PackingSessionRepository().GetActiveByOrderID(ctx, o.ID())
	if err != nil {
		return err
	}

	if cmd.Target() == order.ReadyForDelivery &&
		!sameDay(session.StartedAt(), h.clock()) &&
		!cmd.AllowCrossDayPacking() && !cmd.AdminOverride() {
		return ErrCrossDayPacking
	}

	session.Close()
	if err = uow.PackingSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	o.DetachPackingSession()
	return nil
}

func (h *TransitionOrderCommandHandler) updateStockRecords(
	ctx context.Context, uow UoW, records map[kernel.UUID]*stock.Record,
) error {
	for _, record := range records {
		if err := uow.StockRepository().Update(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
