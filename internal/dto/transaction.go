package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountPlaces matches the NUMERIC(20,4) columns of the store.
const amountPlaces = 4

// CreateTransactionRequest defines the data needed to post a transaction.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"accountId" validate:"required"`
	Type        domain.TransactionType `json:"type" validate:"required,oneof=CREDIT DEBIT"`
	Amount      decimal.Decimal        `json:"amount"`
	Currency    string                 `json:"currency" validate:"required,len=3,alpha"`
	Description string                 `json:"description" validate:"required,max=255"`
	SubType     string                 `json:"subType,omitempty" validate:"omitempty,max=32"`
}

// Validate checks the request and normalises the currency code.
func (r *CreateTransactionRequest) Validate() error {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	return runChecks(
		structTags(r),
		positiveAmount("amount", r.Amount),
		maxDecimalPlaces("amount", r.Amount, amountPlaces),
	)
}

// UpdateTransactionStatusRequest carries the target status of an admin resolution.
type UpdateTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" validate:"required,oneof=COMPLETED FAILED"`
}

// Validate checks the request.
func (r *UpdateTransactionStatusRequest) Validate() error {
	return runChecks(structTags(r))
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string                   `json:"transactionID"`
	AccountID        string                   `json:"accountID"`
	Type             domain.TransactionType   `json:"type"`
	Amount           decimal.Decimal          `json:"amount"`
	Currency         string                   `json:"currency"`
	Description      string                   `json:"description"`
	SubType          string                   `json:"subType,omitempty"`
	Status           domain.TransactionStatus `json:"status"`
	GatewayReference string                   `json:"gatewayReference,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    txn.TransactionID,
		AccountID:        txn.AccountID,
		Type:             txn.TransactionType,
		Amount:           txn.Amount,
		Currency:         txn.CurrencyCode,
		Description:      txn.Description,
		SubType:          txn.SubType,
		Status:           txn.Status,
		GatewayReference: txn.GatewayReference,
		CreatedAt:        txn.CreatedAt,
		UpdatedAt:        txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// TransactionEnvelope is the body returned for single-transaction endpoints.
type TransactionEnvelope struct {
	Message     string              `json:"message,omitempty"`
	Transaction TransactionResponse `json:"transaction"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
