package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrStockAlreadyConsumed indicates a second attempt to consume stock for an
	// order whose stock was already consumed. Callers treat this as a no-op.
	ErrStockAlreadyConsumed = errors.New("stock already consumed for order")

	// ErrStockNotConsumed indicates an attempt to restore stock for an order that
	// never consumed it, or whose consumption was already restored.
	ErrStockNotConsumed = errors.New("stock not consumed for order")

	// ErrBackorderIsNotPending indicates a backorder decision was attempted on an
	// order that has no pending backorder.
	ErrBackorderIsNotPending = errors.New("order has no pending backorder")

	// ErrPackingSessionConflict indicates a packing session operation that would
	// break the rule that a session exists exactly while the order is packing.
	ErrPackingSessionConflict = errors.New("packing session conflicts with order status")

	// ErrOrderIsNotPacking indicates a packing-only operation (such as a
	// quantity adjustment) on an order outside the Packing status.
	ErrOrderIsNotPacking = errors.New("order is not being packed")
)

// Order represents a customer order moving through the fulfilment workflow.
// It is the aggregate root for the order lifecycle: status, backorder decision,
// stock-consumption idempotency flag and the link to an active packing session.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and customer identifier
//   - Must carry at least one line item
//   - Status is mutated only through ChangeStatus, driven by the state machine
//   - stockConsumed flips false to true at most once, and true to false at most
//     once on a compensating restore; it never double-fires
//   - A packing session is attached exactly while the status is Packing
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	items            []LineItem
	status           Status
	backorderStatus  BackorderStatus
	stockConsumed    bool
	packingSessionID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order in AwaitingApproval status with no backorder
// decision pending. The caller (the create-order use case) decides whether the
// order needs a backorder approval, and whether it can be confirmed right away
// through the regular transition path.
func NewOrder(id, customerID kernel.UUID, items []LineItem) (*Order, error) {
	o := &Order{
		status:          AwaitingApproval,
		backorderStatus: BackorderNone,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full state.
// Used by repository implementations; validates identity and enum values but
// trusts the stored lifecycle flags.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []LineItem,
	status Status,
	backorderStatus BackorderStatus,
	stockConsumed bool,
	packingSessionID *kernel.UUID,
) (*Order, error) {
	o, err := NewOrder(id, customerID, items)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), backorderStatus.Validate()); err != nil {
		return nil, err
	}
	if packingSessionID != nil {
		if err = packingSessionID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.backorderStatus = backorderStatus
	o.stockConsumed = stockConsumed
	o.packingSessionID = packingSessionID
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ApprovedItems returns the line items that count toward fulfilment and
// charging. For orders without a backorder decision this is every item.
func (o *Order) ApprovedItems() []LineItem {
	items := make([]LineItem, 0, len(o.items))
	for _, item := range o.items {
		if item.Approved() {
			items = append(items, item)
		}
	}
	return items
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// BackorderStatus returns the order's backorder decision state.
func (o *Order) BackorderStatus() BackorderStatus {
	return o.backorderStatus
}

// StockConsumed reports whether inventory has been decremented for this order
// and not yet restored.
func (o *Order) StockConsumed() bool {
	return o.stockConsumed
}

// PackingSessionID returns the identifier of the active packing session,
// or nil when the order is not being packed.
func (o *Order) PackingSessionID() *kernel.UUID {
	return o.packingSessionID
}

// TotalCents returns the order total over every line item, in cents.
func (o *Order) TotalCents() int64 {
	var total int64
	for _, item := range o.items {
		total += item.SubtotalCents()
	}
	return total
}

// ChargeableTotalCents returns the order total over approved line items only.
// This is the amount reserved against the customer's credit limit; after a
// partial backorder approval it is lower than TotalCents.
func (o *Order) ChargeableTotalCents() int64 {
	var total int64
	for _, item := range o.items {
		if item.Approved() {
			total += item.SubtotalCents()
		}
	}
	return total
}

// ChangeStatus commits a new lifecycle status on the aggregate.
//
// Full transition validation (edge existence and role permission) is the
// responsibility of the authorization gate; this method only enforces the
// invariants the aggregate can never allow to break: the target must be a
// valid status, the current status must not be terminal, and same-state
// transitions are rejected so idempotent retries are handled explicitly by
// callers instead of silently succeeding.
func (o *Order) ChangeStatus(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and has no outgoing transitions", o.status),
		)
	}
	if o.status == target {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("order is already %s", target),
		)
	}

	o.status = target
	return nil
}

// MarkBackorderPending flags the order as a backorder awaiting approval.
// Only valid at the start of the lifecycle, before any approval decision.
func (o *Order) MarkBackorderPending() error {
	if o.status != AwaitingApproval || o.backorderStatus != BackorderNone {
		return errs.NewValueIsInvalidErrorWithCause(
			"backorder status is invalid",
			fmt.Errorf("cannot mark %s order with backorder status %s as pending", o.status, o.backorderStatus),
		)
	}

	o.backorderStatus = BackorderPending
	return nil
}

// ResolveBackorder records the approval decision for a pending backorder.
//
// Items listed in approvedItemIDs keep their approval; all other items lose
// it and no longer count toward the chargeable total. The resulting backorder
// status is Approved (all items), Partial (a proper subset) or Rejected
// (empty list). Returns the resulting status so the caller can decide the
// follow-up transition: Confirmed for approvals, Cancelled for a rejection.
func (o *Order) ResolveBackorder(approvedItemIDs []kernel.UUID) (BackorderStatus, error) {
	if o.status != AwaitingApproval || o.backorderStatus != BackorderPending {
		return BackorderNone, ErrBackorderIsNotPending
	}

	approved := make(map[string]bool, len(approvedItemIDs))
	for _, id := range approvedItemIDs {
		if err := id.Validate(); err != nil {
			return BackorderNone, err
		}
		approved[id.String()] = true
	}

	for _, id := range approvedItemIDs {
		if !o.hasItem(id) {
			return BackorderNone, errs.NewObjectNotFoundError("line item", id.String())
		}
	}

	approvedCount := 0
	for i := range o.items {
		o.items[i].approved = approved[o.items[i].id.String()]
		if o.items[i].approved {
			approvedCount++
		}
	}

	switch {
	case approvedCount == 0:
		o.backorderStatus = BackorderRejected
	case approvedCount == len(o.items):
		o.backorderStatus = BackorderApproved
	default:
		o.backorderStatus = BackorderPartial
	}

	return o.backorderStatus, nil
}

// AdjustItemQuantity changes the requested quantity of one line item to the
// physically packed amount; weight-based products rarely pack to the exact
// gram. Only valid while the order is in Packing status, and only for items
// still approved after the backorder decision. The caller re-checks stock and
// credit against the new quantity, since the original checks covered the old
// one.
func (o *Order) AdjustItemQuantity(itemID kernel.UUID, quantity float64) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	if o.status != Packing {
		return ErrOrderIsNotPacking
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%v is not greater than 0", quantity),
		)
	}

	for i := range o.items {
		if !o.items[i].id.IsEqual(itemID) {
			continue
		}
		if !o.items[i].approved {
			return errs.NewValueIsInvalidErrorWithCause(
				"line item is invalid",
				fmt.Errorf("item %s was withdrawn by the backorder decision", itemID),
			)
		}

		o.items[i].quantity = quantity
		return nil
	}

	return errs.NewObjectNotFoundError("line item", itemID.String())
}

// MarkStockConsumed flips the stock-consumption flag false to true.
// Returns ErrStockAlreadyConsumed when stock was already consumed, so a
// repeated consume is a detectable no-op rather than a double decrement.
func (o *Order) MarkStockConsumed() error {
	if o.stockConsumed {
		return ErrStockAlreadyConsumed
	}

	o.stockConsumed = true
	return nil
}

// MarkStockRestored flips the stock-consumption flag true to false on a
// compensating restore. Returns ErrStockNotConsumed when there is nothing
// to restore.
func (o *Order) MarkStockRestored() error {
	if !o.stockConsumed {
		return ErrStockNotConsumed
	}

	o.stockConsumed = false
	return nil
}

// AttachPackingSession links the order to its active packing session.
// Valid only while the order is in Packing status, and only when no other
// session is attached.
func (o *Order) AttachPackingSession(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	if o.status != Packing || o.packingSessionID != nil {
		return ErrPackingSessionConflict
	}

	o.packingSessionID = &sessionID
	return nil
}

// DetachPackingSession removes the link to the packing session when the order
// leaves Packing in either direction.
func (o *Order) DetachPackingSession() {
	o.packingSessionID = nil
}

func (o *Order) hasItem(id kernel.UUID) bool {
	for _, item := range o.items {
		if item.id.IsEqual(id) {
			return true
		}
	}
	return false
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
