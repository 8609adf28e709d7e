// Package queries contains read-only operations for the CQRS architecture.
// Query handlers read the database directly and return flat response models;
// they never load or mutate domain aggregates.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items for display.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.ID, resp.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LineItemResponse represents one order line in a query response.
type LineItemResponse struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	Quantity       float64
	UnitPriceCents int64
	Approved       bool
}

// GetOrderQueryResponse represents an order read model: lifecycle state,
// backorder decision and the priced line items.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	Status               order.Status
	BackorderStatus      order.BackorderStatus
	StockConsumed        bool
	Items                []LineItemResponse
	TotalCents           int64
	ChargeableTotalCents int64
}
