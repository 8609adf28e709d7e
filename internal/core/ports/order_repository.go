package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate under a row-level write lock.
	// Concurrent transitions for the same order serialize on this lock: the
	// loser blocks until the winner commits and then sees the updated status.
	// Must be called within an active transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
