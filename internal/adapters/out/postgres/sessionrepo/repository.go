package sessionrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackingSessionRepository implements PackingSessionRepository using GORM.
type GormPackingSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackingSessionRepository creates a new GORM packing session repository.
func NewGormPackingSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormPackingSessionRepository {
	return &GormPackingSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new packing session to the database.
func (r *GormPackingSessionRepository) Add(ctx context.Context, aggregate *packing.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing packing session to the database.
func (r *GormPackingSessionRepository) Update(ctx context.Context, aggregate *packing.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a packing session by ID.
func (r *GormPackingSessionRepository) Get(ctx context.Context, id kernel.UUID) (*packing.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packing session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrderID retrieves the active session for an order.
// Returns an object-not-found error when the order is not being packed.
func (r *GormPackingSessionRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*packing.Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND active", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active packing session", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllStale retrieves every active session whose last activity is older
// than the cutoff, oldest first.
func (r *GormPackingSessionRepository) GetAllStale(
	ctx context.Context, cutoff time.Time,
) ([]*packing.Session, error) {
	var dtos []SessionDTO
	err := r.db.WithContext(ctx).
		Where("active AND last_activity_at < ?", cutoff).
		Order("last_activity_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*packing.Session, 0, len(dtos))
	for _, dto := range dtos {
		session, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
