package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// AccountRepository implements portsrepo.AccountRepositoryFacade over a Store.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	s := r.store
	s.accountsMu.Lock()
	defer s.accountsMu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = &accountEntry{account: account}
	s.byOwner[account.UserID] = append(s.byOwner[account.UserID], account.AccountID)
	return nil
}

func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	e, ok := r.store.entry(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	acc := e.account
	return &acc, nil
}

func (r *AccountRepository) FindAccountsByUserID(_ context.Context, userID string) ([]domain.Account, error) {
	s := r.store
	s.accountsMu.RLock()
	ids := append([]string(nil), s.byOwner[userID]...)
	entries := make([]*accountEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, s.accounts[id])
	}
	s.accountsMu.RUnlock()

	accounts := make([]domain.Account, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		accounts = append(accounts, e.account)
		e.mu.Unlock()
	}
	return accounts, nil
}

func (r *AccountRepository) AdjustBalance(_ context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	e, ok := r.store.entry(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	acc := e.adjust(delta, now)
	return &acc, nil
}

func (r *AccountRepository) DeactivateAccount(_ context.Context, accountID string, now time.Time) (*domain.Account, error) {
	e, ok := r.store.entry(accountID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.account.IsActive = false
	e.account.LastUpdatedAt = now
	acc := e.account
	return &acc, nil
}
