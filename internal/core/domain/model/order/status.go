package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The full transition graph, including the roles that may drive each edge,
// lives in the injected transition table (services.TransitionTable). Status
// itself only knows the set of valid states, their wire names, and which
// states are terminal.
//
// Lifecycle:
//
//	AwaitingApproval ──> Confirmed ──> Packing ──> ReadyForDelivery ──> OutForDelivery ──> Delivered
//	                          ^            │  ^            │   ^              │
//	                          └────────────┘  └────────────┘   └──────────────┘
//	                        (packing and delivery steps are revertible)
//
// Every non-terminal state can also transition to Cancelled. Cancelled has no
// outgoing edges and cancelled orders are retained for audit, never deleted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// AwaitingApproval is the initial status of orders that need a credit or
	// backorder decision before fulfilment can start.
	AwaitingApproval

	// Confirmed indicates the order passed its credit check and is queued
	// for the warehouse.
	Confirmed

	// Packing indicates a packer is actively fulfilling the order's line
	// items. An active packing session exists exactly while an order is in
	// this status.
	Packing

	// ReadyForDelivery indicates packing finished and stock has been
	// consumed for every line item.
	ReadyForDelivery

	// OutForDelivery indicates a driver has taken the goods out.
	OutForDelivery

	// Delivered indicates the goods were handed to the customer.
	// Cancelling from here is a financial credit-note event only.
	Delivered

	// Cancelled is the terminal state. No transitions leave it.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		AwaitingApproval: "awaiting_approval",
		Confirmed:        "confirmed",
		Packing:          "packing",
		ReadyForDelivery: "ready_for_delivery",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		AwaitingApproval: "awaiting_approval",
		Confirmed:        "confirmed",
		Packing:          "packing",
		ReadyForDelivery: "ready_for_delivery",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case wire name of the status, or "Unknown" for
// invalid values. This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the snake_case wire name of a status as produced by
// String. Used when reconstructing orders from persistence and when parsing
// transition requests at the transport boundary.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Cancelled
}
