package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// AdjustPackingQuantityCommandHandler records the physically packed quantity
// of a line item while the order is being packed.
//
// The adjustment is transactional across three aggregates: the item quantity
// on the order, the activity timestamp on the packing session, and the
// customer's credit balance when the chargeable total moved. The original
// credit reservation covered the ordered quantity, so an upward adjustment
// reserves the difference (and may fail on the limit) and a downward one
// releases it. Stock is checked, not consumed; consumption happens when
// packing completes.
type AdjustPackingQuantityCommandHandler struct {
	uowFactory  UoWFactory
	creditGuard *services.CreditGuard
	clock       func() time.Time
}

// NewAdjustPackingQuantityCommandHandler creates a handler for packing
// quantity adjustments.
func NewAdjustPackingQuantityCommandHandler(uowFactory UoWFactory) AdjustPackingQuantityCommandHandler {
	return AdjustPackingQuantityCommandHandler{
		uowFactory:  uowFactory,
		creditGuard: services.NewCreditGuard(),
		clock:       time.Now,
	}
}

// Handle processes the adjustment and returns the order with the new
// quantity.
func (h *AdjustPackingQuantityCommandHandler) Handle(
	ctx context.Context, cmd AdjustPackingQuantityCommand,
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

	session, err := uow.PackingSessionRepository().GetActiveByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	chargedBefore := o.ChargeableTotalCents()
	if err = o.AdjustItemQuantity(cmd.ItemID(), cmd.Quantity()); err != nil {
		return nil, err
	}

	if err = h.checkStockCovers(ctx, uow, o, cmd); err != nil {
		return nil, err
	}

	if err = h.rebalanceCredit(ctx, uow, o, chargedBefore); err != nil {
		return nil, err
	}

	if err = session.Touch(h.clock()); err != nil {
		return nil, err
	}
	if err = uow.PackingSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// checkStockCovers verifies the adjusted quantity is available. Stock for a
// packing order has not been consumed yet, so the current count is the amount
// the warehouse can still pack.
func (h *AdjustPackingQuantityCommandHandler) checkStockCovers(
	ctx context.Context, uow UoW, o *order.Order, cmd AdjustPackingQuantityCommand,
) error {
	var productID kernel.UUID
	for _, item := range o.Items() {
		if item.ID().IsEqual(cmd.ItemID()) {
			productID = item.ProductID()
			break
		}
	}
	if err := productID.Validate(); err != nil {
		return errs.NewObjectNotFoundError("line item", cmd.ItemID().String())
	}

	record, err := uow.StockRepository().GetByProductID(ctx, productID)
	if err != nil {
		return err
	}
	if record.CurrentStock() < cmd.Quantity() {
		return &stock.InsufficientStockError{
			ProductID: productID,
			Requested: cmd.Quantity(),
			Available: record.CurrentStock(),
		}
	}

	return nil
}

// rebalanceCredit moves the customer's reserved balance by the difference the
// adjustment made to the chargeable total.
func (h *AdjustPackingQuantityCommandHandler) rebalanceCredit(
	ctx context.Context, uow UoW, o *order.Order, chargedBefore int64,
) error {
	delta := o.ChargeableTotalCents() - chargedBefore
	if delta == 0 {
		return nil
	}

	account, err := uow.CreditRepository().GetForUpdate(ctx, o.CustomerID())
	if err != nil {
		return err
	}

	if delta > 0 {
		err = h.creditGuard.CheckAndReserve(account, delta)
	} else {
		err = h.creditGuard.Release(account, -delta)
	}
	if err != nil {
		return err
	}

	return uow.CreditRepository().Update(ctx, account)
}
