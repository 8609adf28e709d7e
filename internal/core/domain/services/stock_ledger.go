package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"
)

// StockLedger applies inventory side effects of order transitions: consuming
// stock when an order becomes ready for delivery, and restoring it when a
// stocked order is cancelled before handover.
//
// Both operations are idempotent per order through the order's stockConsumed
// flag: a second consume returns order.ErrStockAlreadyConsumed without
// touching any count, a restore without prior consumption returns
// order.ErrStockNotConsumed. Consumption is all-or-nothing across the item
// set: if any line item is under-stocked, no count is decremented.
//
// The ledger mutates in-memory aggregates only; durability and write
// serialization (the optimistic version check per stock record) are the
// repository's concern, inside the same transaction as the status commit.
type StockLedger struct{}

// NewStockLedger creates a stock ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Consume decrements stock for every approved line item of the order and
// marks the order's stock as consumed.
//
// records must contain a stock record for every approved product; quantities
// for the same product across multiple line items are summed. On any failure
// no record is modified: availability is validated for the whole set before
// the first decrement.
func (l *StockLedger) Consume(o *order.Order, records map[kernel.UUID]*stock.Record) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.StockConsumed() {
		return order.ErrStockAlreadyConsumed
	}

	quantities, err := l.requiredQuantities(o, records)
	if err != nil {
		return err
	}

	for productID, quantity := range quantities {
		record := records[productID]
		if record.CurrentStock() < quantity {
			return &stock.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: record.CurrentStock(),
			}
		}
	}

	for productID, quantity := range quantities {
		if err := records[productID].Decrement(quantity); err != nil {
			return err
		}
	}

	return o.MarkStockConsumed()
}

// Restore increments stock for every approved line item of the order and
// clears the order's stock-consumed flag. Symmetric to Consume; applies only
// when stock was consumed and not yet restored.
func (l *StockLedger) Restore(o *order.Order, records map[kernel.UUID]*stock.Record) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.StockConsumed() {
		return order.ErrStockNotConsumed
	}

	quantities, err := l.requiredQuantities(o, records)
	if err != nil {
		return err
	}

	for productID, quantity := range quantities {
		if err := records[productID].Increment(quantity); err != nil {
			return err
		}
	}

	return o.MarkStockRestored()
}

// requiredQuantities sums approved item quantities per product and verifies a
// record is present for each product.
func (l *StockLedger) requiredQuantities(
	o *order.Order, records map[kernel.UUID]*stock.Record,
) (map[kernel.UUID]float64, error) {
	quantities := make(map[kernel.UUID]float64)
	for _, item := range o.ApprovedItems() {
		if _, ok := records[item.ProductID()]; !ok {
			return nil, errs.NewObjectNotFoundError("stock record", item.ProductID().String())
		}
		quantities[item.ProductID()] += item.Quantity()
	}
	return quantities, nil
}
