package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
)

// PackingSessionRepository defines the persistence contract for packing sessions.
type PackingSessionRepository interface {
	// Add persists a new packing session.
	Add(ctx context.Context, aggregate *packing.Session) error

	// Update persists changes to an existing packing session.
	Update(ctx context.Context, aggregate *packing.Session) error

	// Get retrieves a packing session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*packing.Session, error)

	// GetActiveByOrderID retrieves the active session for an order.
	// Returns an object-not-found error when the order is not being packed.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*packing.Session, error)

	// GetAllStale retrieves every active session whose last activity is
	// older than the cutoff. Used by the packing timeout sweep.
	GetAllStale(ctx context.Context, cutoff time.Time) ([]*packing.Session, error)
}
