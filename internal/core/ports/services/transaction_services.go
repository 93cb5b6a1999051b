package services

import (
	"context"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionDetails returns a transaction if the requesting user owns its account or is an admin.
	GetTransactionDetails(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// GetTransactionsByAccountID lists the transactions of an account. Callers enforce access.
	GetTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the lifecycle operations of transactions
type TransactionWriterSvc interface {
	// CreateTransaction posts a transaction through the payment gateway and returns it in its resolved state.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransactionStatus resolves a PENDING transaction to COMPLETED or FAILED.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
