// Package stock provides the stock record aggregate: the per-product inventory
// count mutated exclusively by the stock ledger. Counts are fractional because
// weight-based products are stocked in fractional units.
package stock

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not created
	// through the NewRecord factory method.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrInsufficientStock is the unwrap target for InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError indicates that a decrement would drive a product's
// stock below zero. It carries the product and quantities involved so callers
// can surface a precise message or start the backorder flow.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product %s has %v, requested %v",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Record is the aggregate root for one product's inventory count.
//
// currentStock is mutated only through Decrement and Increment, and only the
// stock ledger calls those. The version field is the optimistic-lock token:
// the repository bumps it on every update and refuses writes against a stale
// version, which serializes concurrent consumers of the same product.
type Record struct {
	productID    kernel.UUID
	currentStock float64
	version      int64

	isConstructed bool
}

// NewRecord creates a stock record for a product with an initial count.
// The count must not be negative.
func NewRecord(productID kernel.UUID, initialStock float64) (*Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if initialStock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stock is invalid",
			fmt.Errorf("%v is negative", initialStock),
		)
	}

	return &Record{
		productID:     productID,
		currentStock:  initialStock,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a stock record from persistence, including its
// optimistic-lock version.
func RestoreRecord(productID kernel.UUID, currentStock float64, version int64) (*Record, error) {
	record, err := NewRecord(productID, currentStock)
	if err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("stock record version", fmt.Errorf("%d is below 1", version))
	}

	record.version = version
	return record, nil
}

// Validate ensures the Record was created through its constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ProductID returns the identifier of the stocked product.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// CurrentStock returns the current inventory count.
func (r *Record) CurrentStock() float64 {
	return r.currentStock
}

// Version returns the optimistic-lock token for this record.
func (r *Record) Version() int64 {
	return r.version
}

// Decrement reduces the count by quantity. Fails with InsufficientStockError
// when the count would go negative; the record is left unchanged on failure.
func (r *Record) Decrement(quantity float64) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if r.currentStock < quantity {
		return &InsufficientStockError{
			ProductID: r.productID,
			Requested: quantity,
			Available: r.currentStock,
		}
	}

	r.currentStock -= quantity
	return nil
}

// Increment raises the count by quantity. Used by the compensating restore
// when a stocked order is cancelled before handover.
func (r *Record) Increment(quantity float64) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	r.currentStock += quantity
	return nil
}

func validateQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is not greater than 0", quantity),
		)
	}
	return nil
}
