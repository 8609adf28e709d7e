package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// BackorderStatus tracks the approval decision for orders that were created
// with one or more under-stocked line items.
//
// The zero value, BackorderNone, is the normal case: every line item was in
// stock at creation time and no approval is needed.
type BackorderStatus int

const (
	// BackorderNone indicates the order is not a backorder.
	BackorderNone BackorderStatus = iota

	// BackorderPending indicates the order has under-stocked items and is
	// waiting for an approval decision.
	BackorderPending

	// BackorderApproved indicates every line item was approved.
	BackorderApproved

	// BackorderRejected indicates every line item was rejected; the order
	// is cancelled without ever consuming stock.
	BackorderRejected

	// BackorderPartial indicates a subset of line items was approved; the
	// order total is recomputed over the approved subset only.
	BackorderPartial
)

func getBackorderStatusStrings() map[BackorderStatus]string {
	return map[BackorderStatus]string{
		BackorderNone:     "none",
		BackorderPending:  "pending_approval",
		BackorderApproved: "approved",
		BackorderRejected: "rejected",
		BackorderPartial:  "partial_approved",
	}
}

// Validate checks if the BackorderStatus value is valid.
func (b BackorderStatus) Validate() error {
	if _, ok := getBackorderStatusStrings()[b]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"backorder status is invalid",
			fmt.Errorf("%d is not a valid backorder status", b),
		)
	}
	return nil
}

// String returns the snake_case wire name of the backorder status.
// This method implements the fmt.Stringer interface.
func (b BackorderStatus) String() string {
	if str, ok := getBackorderStatusStrings()[b]; ok {
		return str
	}
	return "Unknown"
}

// IsResolved reports whether an approval decision has been made.
func (b BackorderStatus) IsResolved() bool {
	return b == BackorderApproved || b == BackorderRejected || b == BackorderPartial
}
