// Package credit provides the customer credit account aggregate: a per-customer
// ceiling on outstanding order value, enforced at order confirmation time and
// released on cancellation or credit-note issuance. The balance is mutated
// exclusively by the credit guard.
package credit

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through the NewAccount factory method.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

	// ErrCreditLimitExceeded is the unwrap target for CreditLimitExceededError.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
)

// CreditLimitExceededError indicates that reserving an amount would push the
// customer's outstanding balance above their limit. Recoverable: the caller
// may reduce the order total or route the order through approval.
type CreditLimitExceededError struct {
	CustomerID     kernel.UUID
	LimitCents     int64
	BalanceCents   int64
	RequestedCents int64
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded: customer %s has balance %d of limit %d, requested %d",
		e.CustomerID, e.BalanceCents, e.LimitCents, e.RequestedCents)
}

func (e *CreditLimitExceededError) Unwrap() error {
	return ErrCreditLimitExceeded
}

// Account is the aggregate root for one customer's credit standing.
// All amounts are in cents.
type Account struct {
	customerID   kernel.UUID
	limitCents   int64
	balanceCents int64

	isConstructed bool
}

// NewAccount creates a credit account with a zero balance.
// The limit must not be negative.
func NewAccount(customerID kernel.UUID, limitCents int64) (*Account, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if limitCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"credit limit is invalid",
			fmt.Errorf("%d is negative", limitCents),
		)
	}

	return &Account{
		customerID:    customerID,
		limitCents:    limitCents,
		isConstructed: true,
	}, nil
}

// RestoreAccount reconstructs a credit account from persistence.
func RestoreAccount(customerID kernel.UUID, limitCents, balanceCents int64) (*Account, error) {
	account, err := NewAccount(customerID, limitCents)
	if err != nil {
		return nil, err
	}
	if balanceCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"credit balance is invalid",
			fmt.Errorf("%d is negative", balanceCents),
		)
	}

	account.balanceCents = balanceCents
	return account, nil
}

// Validate ensures the Account was created through its constructor.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// CustomerID returns the identifier of the account's customer.
func (a *Account) CustomerID() kernel.UUID {
	return a.customerID
}

// LimitCents returns the credit ceiling in cents.
func (a *Account) LimitCents() int64 {
	return a.limitCents
}

// BalanceCents returns the outstanding reserved balance in cents.
func (a *Account) BalanceCents() int64 {
	return a.balanceCents
}

// Reserve adds amount to the outstanding balance if the result stays within
// the limit; otherwise fails with CreditLimitExceededError and leaves the
// balance unchanged. The check and the increment are one operation on the
// aggregate; atomicity across callers comes from the row lock the repository
// takes when loading the account for update.
func (a *Account) Reserve(amountCents int64) error {
	if err := validateAmount(amountCents); err != nil {
		return err
	}
	if a.balanceCents+amountCents > a.limitCents {
		return &CreditLimitExceededError{
			CustomerID:     a.customerID,
			LimitCents:     a.limitCents,
			BalanceCents:   a.balanceCents,
			RequestedCents: amountCents,
		}
	}

	a.balanceCents += amountCents
	return nil
}

// Release subtracts amount from the outstanding balance on cancellation or
// credit-note issuance. The balance never goes below zero.
func (a *Account) Release(amountCents int64) error {
	if err := validateAmount(amountCents); err != nil {
		return err
	}

	a.balanceCents -= amountCents
	if a.balanceCents < 0 {
		a.balanceCents = 0
	}
	return nil
}

func validateAmount(amountCents int64) error {
	if amountCents <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is not greater than 0", amountCents),
		)
	}
	return nil
}
