// Package creditrepo persists customer credit accounts. The account row is
// read under FOR UPDATE whenever a reservation or release is taken, so
// concurrent credit movements for one customer serialize at the database.
package creditrepo

import (
	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting credit accounts.
type AccountDTO struct {
	CustomerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LimitCents   int64
	BalanceCents int64
}

// TableName specifies the database table name for credit accounts.
func (AccountDTO) TableName() string {
	return "credit_accounts"
}

func fromDomain(account *credit.Account) AccountDTO {
	return AccountDTO{
		CustomerID:   account.CustomerID().Bytes(),
		LimitCents:   account.LimitCents(),
		BalanceCents: account.BalanceCents(),
	}
}

func toDomain(dto AccountDTO) (*credit.Account, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return credit.RestoreAccount(customerID, dto.LimitCents, dto.BalanceCents)
}
