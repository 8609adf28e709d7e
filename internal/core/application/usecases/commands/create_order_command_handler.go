package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// A new order is confirmed immediately when every line item is covered by
// current stock: the chargeable total is reserved against the customer's
// credit limit and the order lands in Confirmed status. When any item is
// under-stocked the order stays in AwaitingApproval with a pending backorder
// decision and no credit is reserved yet; the reservation happens later on
// the approval path, against the approved-only total.
//
// A failed credit reservation on the in-stock path fails the whole creation:
// nothing is persisted and the caller gets the typed credit error.
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	creditGuard *services.CreditGuard
	publisher   ports.EventPublisher
	clock       func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		creditGuard: services.NewCreditGuard(),
		publisher:   publisher,
		clock:       time.Now,
	}
}

// Handle processes the order creation command and returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.Items())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records, err := uow.StockRepository().GetByProductIDs(ctx, productIDs(newOrder.Items()))
	if err != nil {
		return nil, err
	}

	if stockCovers(newOrder.Items(), records) {
		if err = h.reserveCredit(ctx, uow, newOrder); err != nil {
			return nil, err
		}
		if err = newOrder.ChangeStatus(order.Confirmed); err != nil {
			return nil, err
		}
	} else {
		if err = newOrder.MarkBackorderPending(); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if newOrder.Status() == order.Confirmed {
		h.publisher.Publish(ctx, ports.OrderTransitionedEvent{
			OrderID:    newOrder.ID(),
			From:       order.AwaitingApproval,
			To:         order.Confirmed,
			ActorRole:  cmd.ActorRole(),
			OccurredAt: h.clock(),
		})
	}

	return newOrder, nil
}

func (h *CreateOrderCommandHandler) reserveCredit(ctx context.Context, uow UoW, o *order.Order) error {
	account, err := uow.CreditRepository().GetForUpdate(ctx, o.CustomerID())
	if err != nil {
		return err
	}
	if err = h.creditGuard.CheckAndReserve(account, o.ChargeableTotalCents()); err != nil {
		return err
	}

	return uow.CreditRepository().Update(ctx, account)
}

// productIDs collects the distinct product identifiers of the given items.
func productIDs(items []order.LineItem) []kernel.UUID {
	seen := make(map[kernel.UUID]bool, len(items))
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if seen[item.ProductID()] {
			continue
		}
		seen[item.ProductID()] = true
		ids = append(ids, item.ProductID())
	}
	return ids
}

// stockCovers reports whether current stock covers every item, summing
// quantities of items that share a product.
func stockCovers(items []order.LineItem, records map[kernel.UUID]*stock.Record) bool {
	required := make(map[kernel.UUID]float64, len(items))
	for _, item := range items {
		required[item.ProductID()] += item.Quantity()
	}

	for productID, quantity := range required {
		record, ok := records[productID]
		if !ok || record.CurrentStock() < quantity {
			return false
		}
	}
	return true
}
