package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for stock records.
type StockRepository interface {
	// Add persists a new stock record.
	Add(ctx context.Context, aggregate *stock.Record) error

	// GetByProductID retrieves the stock record for one product.
	GetByProductID(ctx context.Context, productID kernel.UUID) (*stock.Record, error)

	// GetByProductIDs retrieves stock records for a set of products, keyed by
	// product identifier. Products without a record are absent from the map;
	// callers treat them as zero availability.
	GetByProductIDs(ctx context.Context, productIDs []kernel.UUID) (map[kernel.UUID]*stock.Record, error)

	// Update persists a stock record using its optimistic-lock version: the
	// write applies only if the stored version still matches the version the
	// record was loaded with, and bumps it by one. A concurrent writer that
	// got there first causes errs.ErrVersionIsInvalid; the caller reloads the
	// refreshed record and retries up to its retry budget.
	Update(ctx context.Context, aggregate *stock.Record) error
}
