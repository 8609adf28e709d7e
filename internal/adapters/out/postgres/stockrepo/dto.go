// Package stockrepo persists stock records with an optimistic-lock version
// column. Stock rows are the system's contention hot spot: many orders touch
// the same product, so writes are guarded by a version token instead of a
// row lock held across the whole transition.
package stockrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting stock records.
type RecordDTO struct {
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentStock float64
	Version      int64
}

// TableName specifies the database table name for stock records.
func (RecordDTO) TableName() string {
	return "stock_records"
}

func fromDomain(record *stock.Record) RecordDTO {
	return RecordDTO{
		ProductID:    record.ProductID().Bytes(),
		CurrentStock: record.CurrentStock(),
		Version:      record.Version(),
	}
}

func toDomain(dto RecordDTO) (*stock.Record, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return stock.RestoreRecord(productID, dto.CurrentStock, dto.Version)
}
