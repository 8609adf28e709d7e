// Package order provides domain entities and business logic for order
// lifecycle management in the fulfilment engine. It implements the Order
// aggregate root with its status, backorder decision and stock-consumption
// idempotency flag.
//
// The package includes:
//   - Order: The aggregate root managing identity, line items, and lifecycle flags
//   - Status: The set of lifecycle states with wire names and terminality
//   - BackorderStatus: The approval decision for under-stocked orders
//   - LineItem: A value object for one product position on an order
//
// Key business rules:
//   - Orders carry at least one line item and belong to exactly one customer
//   - Status changes are committed only through ChangeStatus; edge and role
//     validation happens in the authorization gate before commit
//   - Stock consumption flips false->true at most once per order, and back
//     true->false at most once on a compensating restore
//   - A packing session is attached exactly while the order is in Packing
//   - Cancelled orders are retained for audit and never deleted
package order
