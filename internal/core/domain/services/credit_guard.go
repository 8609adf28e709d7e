package services

import (
	"fulfillment/internal/core/domain/model/credit"
)

// CreditGuard applies credit side effects of order transitions: reserving the
// chargeable order total against the customer's limit at confirmation, and
// releasing it on cancellation or credit-note issuance.
//
// The guard must be re-invoked whenever an order's total changes after
// creation (for instance after a partial backorder approval) — a credit check
// taken against an earlier total is not a valid substitute. Serialization of
// concurrent reservations for the same customer comes from the FOR UPDATE
// lock the repository takes when loading the account, so two orders that are
// each individually under the limit can never jointly exceed it.
type CreditGuard struct{}

// NewCreditGuard creates a credit guard.
func NewCreditGuard() *CreditGuard {
	return &CreditGuard{}
}

// CheckAndReserve reserves totalCents against the account, failing with
// credit.CreditLimitExceededError when the limit would be exceeded.
// A zero total (a fully rejected backorder has no chargeable items) reserves
// nothing and succeeds.
func (g *CreditGuard) CheckAndReserve(account *credit.Account, totalCents int64) error {
	if err := account.Validate(); err != nil {
		return err
	}
	if totalCents == 0 {
		return nil
	}

	return account.Reserve(totalCents)
}

// Release frees totalCents of reserved balance. A zero total is a no-op.
func (g *CreditGuard) Release(account *credit.Account, totalCents int64) error {
	if err := account.Validate(); err != nil {
		return err
	}
	if totalCents == 0 {
		return nil
	}

	return account.Release(totalCents)
}
