// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// CreditRepoFactory provides access to the credit repository within a transaction.
	CreditRepoFactory interface {
		CreditRepository() ports.CreditRepository
	}

	// PackingSessionRepoFactory provides access to the packing session repository
	// within a transaction.
	PackingSessionRepoFactory interface {
		PackingSessionRepository() ports.PackingSessionRepository
	}

	// UoW manages transactions across the order, stock, credit and packing
	// session aggregates. A status transition commits its order update and
	// every required side effect through one unit of work, so either the whole
	// transition lands or none of it does.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   stockRepo := uow.StockRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		CreditRepoFactory
		PackingSessionRepoFactory
	}

	// UoWFactory creates new unit of work instances for command handlers.
	UoWFactory interface {
		Create() UoW
	}
)
