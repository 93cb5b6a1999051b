package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountType string `json:"accountType" validate:"required,max=50"`
	AccountName string `json:"accountName" validate:"required,max=100"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
}

// Validate checks the request and normalises the currency code.
func (r *CreateAccountRequest) Validate() error {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	return runChecks(structTags(r))
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	AccountType string          `json:"accountType"`
	AccountName string          `json:"accountName"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		UserID:      acc.UserID,
		AccountType: acc.AccountType,
		AccountName: acc.AccountName,
		Currency:    acc.CurrencyCode,
		Balance:     acc.Balance,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
