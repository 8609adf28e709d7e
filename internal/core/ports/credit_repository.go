package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"
)

// CreditRepository defines the persistence contract for credit accounts.
type CreditRepository interface {
	// Add persists a new credit account.
	Add(ctx context.Context, aggregate *credit.Account) error

	// GetForUpdate retrieves a customer's credit account under a row-level
	// write lock. Concurrent reservations for the same customer serialize on
	// this lock, so two orders each within the limit cannot jointly exceed
	// it. Must be called within an active transaction.
	GetForUpdate(ctx context.Context, customerID kernel.UUID) (*credit.Account, error)

	// Update persists changes to a credit account.
	Update(ctx context.Context, aggregate *credit.Account) error
}
