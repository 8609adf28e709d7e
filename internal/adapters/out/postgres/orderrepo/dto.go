// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are embedded as a JSONB column: items never change independently
// of their order and are always loaded with it.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	Status           int        `gorm:"index"`
	BackorderStatus  int
	StockConsumed    bool
	PackingSessionID *uuid.UUID `gorm:"type:uuid"`
	Items            []byte     `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// lineItemDTO is the JSONB encoding of one order line.
type lineItemDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       float64   `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Approved       bool      `json:"approved"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Items()
	itemDTOs := make([]lineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, lineItemDTO{
			ID:             item.ID().Bytes(),
			ProductID:      item.ProductID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			Approved:       item.Approved(),
		})
	}

	itemsRaw, err := json.Marshal(itemDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	var sessionID *uuid.UUID
	if id := aggregate.PackingSessionID(); id != nil {
		raw := id.Bytes()
		sessionID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		Status:           int(aggregate.Status()),
		BackorderStatus:  int(aggregate.BackorderStatus()),
		StockConsumed:    aggregate.StockConsumed(),
		PackingSessionID: sessionID,
		Items:            itemsRaw,
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle flags using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var itemDTOs []lineItemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreLineItem(
			itemID, productID, itemDTO.Quantity, itemDTO.UnitPriceCents, itemDTO.Approved,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var sessionID *kernel.UUID
	if dto.PackingSessionID != nil {
		sID, sessionErr := kernel.UUIDFromBytes((*dto.PackingSessionID)[:])
		if sessionErr != nil {
			return nil, sessionErr
		}
		sessionID = &sID
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		order.Status(dto.Status),
		order.BackorderStatus(dto.BackorderStatus),
		dto.StockConsumed,
		sessionID,
	)
}
