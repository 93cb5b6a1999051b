package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a monetary account owned by a single user.
// Balance is only ever changed through the account store's balance adjustment.
type Account struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID"`      // Owner
	AccountType  string          `json:"accountType"` // Free-form, e.g. "savings", "checking"
	AccountName  string          `json:"accountName"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// IsOwnedBy reports whether userID owns the account.
func (a Account) IsOwnedBy(userID string) bool {
	return userID != "" && a.UserID == userID
}
