package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/google/uuid"
)

// DefaultGatewayTimeout bounds a single payment gateway call.
const DefaultGatewayTimeout = 5 * time.Second

// transactionService drives transactions through PENDING -> COMPLETED | FAILED.
type transactionService struct {
	BaseService
	accountRepo    portsrepo.AccountReader
	txnRepo        portsrepo.TransactionRepositoryFacade
	gateway        gateways.PaymentGateway
	publisher      gateways.EventPublisher
	access         portssvc.AccessPolicySvc
	gatewayTimeout time.Duration
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithEventPublisher publishes lifecycle events after every status change.
func WithEventPublisher(publisher gateways.EventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = publisher
	}
}

// WithTransactionAccessPolicy sets the policy used for owner-or-admin checks.
func WithTransactionAccessPolicy(access portssvc.AccessPolicySvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.access = access
	}
}

// WithGatewayTimeout overrides DefaultGatewayTimeout. Non-positive values are ignored.
func WithGatewayTimeout(timeout time.Duration) TransactionServiceOption {
	return func(s *transactionService) {
		if timeout > 0 {
			s.gatewayTimeout = timeout
		}
	}
}

// WithTransactionClock overrides the clock used for audit timestamps.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates the transaction engine.
func NewTransactionService(
	accountRepo portsrepo.AccountReader,
	txnRepo portsrepo.TransactionRepositoryFacade,
	gateway gateways.PaymentGateway,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountRepo:    accountRepo,
		txnRepo:        txnRepo,
		gateway:        gateway,
		gatewayTimeout: DefaultGatewayTimeout,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// CreateTransaction persists the transaction as PENDING, asks the gateway to
// process it and resolves it according to the outcome. A gateway timeout leaves
// the transaction PENDING for later resolution by an admin.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for transaction",
				slog.String("account_id", req.AccountID))
		}
		return nil, err
	}
	if account.CurrencyCode != req.Currency {
		return nil, apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "currency",
			Message: fmt.Sprintf("must match account currency %s", account.CurrencyCode),
		}})
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       account.AccountID,
		TransactionType: req.Type,
		Amount:          req.Amount,
		CurrencyCode:    req.Currency,
		Description:     req.Description,
		SubType:         req.SubType,
		Status:          domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID))

	result, err := s.processPayment(ctx, txn)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			logger.Warn("Payment gateway did not answer in time, transaction left pending",
				slog.Duration("timeout", s.gatewayTimeout))
			s.publish(ctx, txn)
			return &txn, nil
		}
		logger.Error("Payment gateway failed, transaction left pending", slog.String("error", err.Error()))
		s.publish(ctx, txn)
		return nil, fmt.Errorf("%w: payment gateway: %v", apperrors.ErrUpstream, err)
	}

	status := domain.StatusForOutcome(result.Outcome)
	logger.Info("Payment gateway answered",
		slog.String("outcome", string(result.Outcome)),
		slog.String("status", string(status)),
		slog.String("gateway_reference", result.Reference))

	if !status.IsTerminal() {
		txn.GatewayReference = result.Reference
		updated, err := s.txnRepo.UpdateGatewayReference(context.WithoutCancel(ctx), txn.TransactionID, result.Reference, s.Now())
		if err != nil {
			// The payment is still pending either way; the reference is in the log above.
			logger.Error("Failed to store gateway reference", slog.String("error", err.Error()))
		} else {
			txn = *updated
		}
		s.publish(ctx, txn)
		return &txn, nil
	}

	// The gateway has charged or declined by now; the outcome must be recorded
	// even if the caller has gone away.
	resolved, err := s.txnRepo.ResolveTransaction(context.WithoutCancel(ctx), txn.TransactionID, status, result.Reference, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// Resolved concurrently, e.g. by an admin; report what is stored.
			logger.Warn("Transaction was resolved concurrently")
			return s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
		}
		logger.Error("Failed to resolve transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve transaction: %w", err)
	}

	s.publish(ctx, *resolved)
	return resolved, nil
}

func (s *transactionService) processPayment(ctx context.Context, txn domain.Transaction) (domain.PaymentResult, error) {
	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()
	return s.gateway.ProcessPayment(gwCtx, txn.Amount, txn.CurrencyCode)
}

func (s *transactionService) GetTransactionDetails(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account of transaction",
				slog.String("transaction_id", transactionID),
				slog.String("account_id", txn.AccountID))
		}
		return nil, err
	}

	if s.access != nil {
		if err := s.access.AuthorizeAccountAccess(ctx, *account, requestingUserID); err != nil {
			return nil, err
		}
	} else if !account.IsOwnedBy(requestingUserID) {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

func (s *transactionService) GetTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransactionStatus resolves a PENDING transaction. Completing it applies
// the signed amount to the account balance exactly once.
func (s *transactionService) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	if !status.IsTerminal() {
		return nil, apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "status",
			Message: "must be one of: COMPLETED FAILED",
		}})
	}

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if !existing.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot update status of non-pending transaction", apperrors.ErrInvalidState)
	}

	resolved, err := s.txnRepo.ResolveTransaction(ctx, transactionID, status, existing.GatewayReference, s.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, fmt.Errorf("%w: cannot update status of non-pending transaction", apperrors.ErrInvalidState)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve transaction",
				slog.String("transaction_id", transactionID),
				slog.String("status", string(status)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(status)))
	s.publish(ctx, *resolved)
	return resolved, nil
}

// publish is best effort: the stored transaction is the source of truth.
func (s *transactionService) publish(ctx context.Context, txn domain.Transaction) {
	if s.publisher == nil {
		return
	}
	event := domain.TransactionEvent{
		EventID:       uuid.NewString(),
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          txn.TransactionType,
		Amount:        txn.Amount.String(),
		Currency:      txn.CurrencyCode,
		Status:        txn.Status,
		OccurredAt:    s.Now(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to publish transaction event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("routing_key", event.RoutingKey()))
	}
}
