package services

import (
	"context"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier, without access checks.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountForUser retrieves an account if the requesting user is its owner or an admin.
	GetAccountForUser(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error)

	// GetAccountsByUserID retrieves all accounts owned by a user.
	GetAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates a zero-balance active account owned by ownerUserID.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerUserID string) (*domain.Account, error)

	// AdjustBalance applies a signed delta to the account balance.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive if the requesting user is its owner or an admin.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
