package stockrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock record to the database.
func (r *GormStockRepository) Add(ctx context.Context, aggregate *stock.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ProductID(), aggregate)
	return nil
}

// GetByProductID retrieves the stock record for one product.
func (r *GormStockRepository) GetByProductID(ctx context.Context, productID kernel.UUID) (*stock.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock record", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByProductIDs retrieves stock records for a set of products, keyed by
// product identifier. Products without a stock record are simply absent from
// the map; a product that was never stocked reads as zero availability.
func (r *GormStockRepository) GetByProductIDs(
	ctx context.Context, productIDs []kernel.UUID,
) (map[kernel.UUID]*stock.Record, error) {
	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, productID := range productIDs {
		if err := productID.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, productID.Bytes())
	}

	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "product_id IN ?", ids).Error; err != nil {
		return nil, err
	}

	records := make(map[kernel.UUID]*stock.Record, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records[record.ProductID()] = record
	}

	return records, nil
}

// Update persists a stock record guarded by its optimistic-lock version.
// The write only applies when the stored version still matches the version
// the record was loaded with, and bumps it by one. Zero affected rows means
// a concurrent writer won the race; the caller reloads and retries.
func (r *GormStockRepository) Update(ctx context.Context, aggregate *stock.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("product_id = ? AND version = ?", dto.ProductID, dto.Version).
		Updates(map[string]any{
			"current_stock": dto.CurrentStock,
			"version":       dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("stock record " + aggregate.ProductID().String())
	}

	r.tracker.TrackAggregate(aggregate.ProductID(), aggregate)
	return nil
}
