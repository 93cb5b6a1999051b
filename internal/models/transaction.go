package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	AccountID        string          `db:"account_id"`
	TransactionType  string          `db:"transaction_type"`
	Amount           decimal.Decimal `db:"amount"`
	CurrencyCode     string          `db:"currency_code"`
	Description      string          `db:"description"`
	SubType          sql.NullString  `db:"sub_type"`
	Status           string          `db:"status"`
	GatewayReference sql.NullString  `db:"gateway_reference"`
	AuditFields
}
