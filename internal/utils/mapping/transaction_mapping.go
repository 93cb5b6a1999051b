package mapping

import (
	"database/sql"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		AccountID:        d.AccountID,
		TransactionType:  string(d.TransactionType),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		Description:      d.Description,
		SubType:          nullString(d.SubType),
		Status:           string(d.Status),
		GatewayReference: nullString(d.GatewayReference),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		AccountID:        m.AccountID,
		TransactionType:  domain.TransactionType(m.TransactionType),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		Description:      m.Description,
		SubType:          m.SubType.String,
		Status:           domain.TransactionStatus(m.Status),
		GatewayReference: m.GatewayReference.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
