package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row shape of the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	AccountType  string          `db:"account_type"`
	AccountName  string          `db:"account_name"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"` // NUMERIC(20,4)
	IsActive     bool            `db:"is_active"`
	AuditFields
}
