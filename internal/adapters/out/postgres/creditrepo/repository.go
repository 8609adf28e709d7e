package creditrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCreditRepository implements CreditRepository using GORM.
type GormCreditRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCreditRepository creates a new GORM credit repository.
func NewGormCreditRepository(db *gorm.DB, tracker aggregateTracker) *GormCreditRepository {
	return &GormCreditRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new credit account to the database.
func (r *GormCreditRepository) Add(ctx context.Context, aggregate *credit.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.CustomerID(), aggregate)
	return nil
}

// GetForUpdate retrieves a customer's credit account under a row-level write
// lock. Must run within an active transaction.
func (r *GormCreditRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*credit.Account, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("credit account", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update saves an existing credit account to the database.
func (r *GormCreditRepository) Update(ctx context.Context, aggregate *credit.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("customer_id = ?", dto.CustomerID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.CustomerID(), aggregate)
	return nil
}
