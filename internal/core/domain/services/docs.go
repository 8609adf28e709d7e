// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfilment engine. It
// implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - TransitionTable: The immutable, role-keyed order lifecycle graph
//   - AuthorizationGate: Validation of requested transitions against the table
//   - StockLedger: Idempotent, all-or-nothing consume/restore of stock counts
//   - CreditGuard: Check-and-reserve of order totals against credit limits
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
