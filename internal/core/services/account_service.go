package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	access      portssvc.AccessPolicySvc
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAccessPolicy sets the policy used for owner-or-admin checks.
func WithAccountAccessPolicy(access portssvc.AccessPolicySvc) AccountServiceOption {
	return func(s *accountService) {
		s.access = access
	}
}

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerUserID string) (*domain.Account, error) {
	if ownerUserID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       ownerUserID,
		AccountType:  req.AccountType,
		AccountName:  req.AccountName,
		CurrencyCode: req.Currency,
		Balance:      decimal.Zero,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("user_id", ownerUserID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("user_id", ownerUserID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountForUser(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, *account, requestingUserID); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for user",
			slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) (*domain.Account, error) {
	account, err := s.accountRepo.AdjustBalance(ctx, accountID, delta, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to adjust account balance",
				slog.String("account_id", accountID),
				slog.String("delta", delta.String()))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Account balance adjusted",
		slog.String("account_id", accountID),
		slog.String("delta", delta.String()),
		slog.String("balance", account.Balance.String()))
	return account, nil
}

// DeactivateAccount clears the active flag. Inactive accounts still accept
// balance changes from transactions already in flight.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	if _, err := s.GetAccountForUser(ctx, accountID, requestingUserID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.DeactivateAccount(ctx, accountID, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("user_id", requestingUserID))
	return account, nil
}

// authorize applies the access policy. Without a policy only the owner passes.
func (s *accountService) authorize(ctx context.Context, account domain.Account, userID string) error {
	if s.access != nil {
		return s.access.AuthorizeAccountAccess(ctx, account, userID)
	}
	if account.IsOwnedBy(userID) {
		return nil
	}
	return apperrors.ErrForbidden
}
