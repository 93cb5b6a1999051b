package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionMapping_OptionalColumns(t *testing.T) {
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   "t1",
		AccountID:       "a1",
		TransactionType: domain.Credit,
		Amount:          decimal.RequireFromString("2.71"),
		CurrencyCode:    "USD",
		Description:     "refund",
		Status:          domain.StatusPending,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	m := ToModelTransaction(txn)
	assert.False(t, m.SubType.Valid)
	assert.False(t, m.GatewayReference.Valid)
	assert.Equal(t, txn, ToDomainTransaction(m))

	txn.SubType = "DEPOSIT"
	txn.GatewayReference = "PG-1"
	m = ToModelTransaction(txn)
	assert.True(t, m.SubType.Valid)
	assert.Equal(t, "PG-1", m.GatewayReference.String)
	assert.Equal(t, txn, ToDomainTransaction(m))
}
