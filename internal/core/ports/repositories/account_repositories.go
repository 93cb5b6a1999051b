package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByUserID retrieves every account owned by the given user.
	FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AdjustBalance atomically adds delta to the account balance and returns the updated account.
	// It is the only path through which a balance may change.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive and returns the updated account.
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
