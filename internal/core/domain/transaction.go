package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction against its account.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// IsValid reports whether t is CREDIT or DEBIT.
func (t TransactionType) IsValid() bool {
	return t == Credit || t == Debit
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsValid reports whether s is a known status.
func (s TransactionStatus) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

// Transaction is a single credit or debit posted against one account.
// Amount is always a positive magnitude; direction is carried by TransactionType.
type Transaction struct {
	TransactionID    string            `json:"transactionID"`
	AccountID        string            `json:"accountID"`
	TransactionType  TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"`
	CurrencyCode     string            `json:"currency"`
	Description      string            `json:"description"`
	SubType          string            `json:"subType,omitempty"` // e.g. DEPOSIT, PAYMENT
	Status           TransactionStatus `json:"status"`
	GatewayReference string            `json:"gatewayReference,omitempty"`
	AuditFields
}

// SignedAmount returns the effect this transaction has on its account balance
// once completed: +Amount for CREDIT, -Amount for DEBIT.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CanTransitionTo reports whether the state machine allows moving to target.
// Only PENDING -> COMPLETED and PENDING -> FAILED are permitted.
func (t Transaction) CanTransitionTo(target TransactionStatus) bool {
	return t.Status == StatusPending && target.IsTerminal()
}

// Resolve moves a PENDING transaction to target and stamps the update time.
// It returns ErrIllegalTransition when the state machine forbids the move.
func (t *Transaction) Resolve(target TransactionStatus, now time.Time) error {
	if !t.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.Status, target)
	}
	t.Status = target
	t.LastUpdatedAt = now
	return nil
}

// ErrIllegalTransition is returned by Resolve for a forbidden status change.
var ErrIllegalTransition = errors.New("illegal transaction status transition")

// Validate checks the structural invariants of a transaction.
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return errors.New("account ID is required")
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("transaction type must be CREDIT or DEBIT, got %q", t.TransactionType)
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if t.CurrencyCode == "" {
		return errors.New("currency is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("unknown transaction status %q", t.Status)
	}
	return nil
}
