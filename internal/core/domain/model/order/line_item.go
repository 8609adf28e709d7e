package order

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is a value object describing one product position on an order:
// the product, the requested quantity and the unit price agreed at creation
// time. Quantity is a float because weight-based products sell in fractional
// units (e.g. 1.25 kg).
//
// The approved flag participates in the backorder flow: items start approved,
// and a backorder decision may withdraw approval for the rejected subset.
// Only approved items count toward the chargeable order total.
type LineItem struct {
	id             kernel.UUID
	productID      kernel.UUID
	quantity       float64
	unitPriceCents int64
	approved       bool
}

// NewLineItem creates a validated line item for the given product.
// Quantity must be positive; unit price must not be negative.
func NewLineItem(id, productID kernel.UUID, quantity float64, unitPriceCents int64) (LineItem, error) {
	if err := id.Validate(); err != nil {
		return LineItem{}, err
	}
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is not greater than 0", quantity),
		)
	}
	if unitPriceCents < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%d is negative", unitPriceCents),
		)
	}

	return LineItem{
		id:             id,
		productID:      productID,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		approved:       true,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistence without
// re-running creation-time validation beyond identity checks.
func RestoreLineItem(
	id, productID kernel.UUID, quantity float64, unitPriceCents int64, approved bool,
) (LineItem, error) {
	item, err := NewLineItem(id, productID, quantity, unitPriceCents)
	if err != nil {
		return LineItem{}, err
	}
	item.approved = approved
	return item, nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// ProductID returns the identifier of the ordered product.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the requested quantity. Fractional values are valid for
// weight-based units.
func (li LineItem) Quantity() float64 {
	return li.quantity
}

// UnitPriceCents returns the agreed unit price in cents.
func (li LineItem) UnitPriceCents() int64 {
	return li.unitPriceCents
}

// Approved reports whether the item counts toward the chargeable total.
func (li LineItem) Approved() bool {
	return li.approved
}

// SubtotalCents returns quantity times unit price, rounded to whole cents.
func (li LineItem) SubtotalCents() int64 {
	return int64(math.Round(li.quantity * float64(li.unitPriceCents)))
}

// ErrLineItemsAreRequired is returned when an order is created without items.
var ErrLineItemsAreRequired = errors.New("order must have at least one line item")
