// Package sessionrepo persists packing sessions and serves the staleness
// listing the packing timeout sweep runs on.
package sessionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting packing sessions.
type SessionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	PackerID       uuid.UUID `gorm:"type:uuid"`
	StartedAt      time.Time
	LastActivityAt time.Time `gorm:"index"`
	Active         bool      `gorm:"index"`
}

// TableName specifies the database table name for packing sessions.
func (SessionDTO) TableName() string {
	return "packing_sessions"
}

func fromDomain(session *packing.Session) SessionDTO {
	return SessionDTO{
		ID:             session.ID().Bytes(),
		OrderID:        session.OrderID().Bytes(),
		PackerID:       session.PackerID().Bytes(),
		StartedAt:      session.StartedAt(),
		LastActivityAt: session.LastActivityAt(),
		Active:         session.Active(),
	}
}

func toDomain(dto SessionDTO) (*packing.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	packerID, err := kernel.UUIDFromBytes(dto.PackerID[:])
	if err != nil {
		return nil, err
	}

	return packing.RestoreSession(id, orderID, packerID, dto.StartedAt, dto.LastActivityAt, dto.Active)
}
