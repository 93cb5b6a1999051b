package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves all transactions posted against an account, oldest first.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateGatewayReference records the processor reference of a transaction
	// the gateway has accepted but not yet settled.
	UpdateGatewayReference(ctx context.Context, transactionID string, gatewayRef string, now time.Time) (*domain.Transaction, error)

	// ResolveTransaction moves a PENDING transaction to a terminal status. The status write and,
	// for COMPLETED, the balance adjustment of the owning account happen in one storage transaction.
	// Returns apperrors.ErrInvalidState if the transaction is no longer PENDING.
	ResolveTransaction(ctx context.Context, transactionID string, status domain.TransactionStatus, gatewayRef string, now time.Time) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
