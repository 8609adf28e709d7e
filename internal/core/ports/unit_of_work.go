package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary spanning the order,
// stock, credit and packing-session aggregates. A transition commits its
// status change and every required side effect through one unit of work, so
// either the whole transition lands or none of it does.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// StockRepository returns a StockRepository bound to the current transaction.
	StockRepository() StockRepository

	// CreditRepository returns a CreditRepository bound to the current transaction.
	CreditRepository() CreditRepository

	// PackingSessionRepository returns a PackingSessionRepository bound to the
	// current transaction.
	PackingSessionRepository() PackingSessionRepository
}
