package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
)

// TransactionRepository implements portsrepo.TransactionRepositoryFacade over a Store.
type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s := r.store
	if _, ok := s.entry(txn.AccountID); !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
	}
	s.txnMu.Lock()
	defer s.txnMu.Unlock()
	if _, exists := s.txns[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	s.txns[txn.TransactionID] = txn
	s.byAccount[txn.AccountID] = append(s.byAccount[txn.AccountID], txn.TransactionID)
	return nil
}

func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s := r.store
	s.txnMu.RLock()
	defer s.txnMu.RUnlock()
	txn, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *TransactionRepository) FindTransactionsByAccountID(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s := r.store
	s.txnMu.RLock()
	defer s.txnMu.RUnlock()
	ids := s.byAccount[accountID]
	txns := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, s.txns[id])
	}
	return txns, nil
}

func (r *TransactionRepository) UpdateGatewayReference(_ context.Context, transactionID string, gatewayRef string, now time.Time) (*domain.Transaction, error) {
	s := r.store
	s.txnMu.Lock()
	defer s.txnMu.Unlock()
	txn, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	txn.GatewayReference = gatewayRef
	txn.LastUpdatedAt = now
	s.txns[transactionID] = txn
	return &txn, nil
}

// ResolveTransaction holds the owning account's lock across the status check,
// the status write and the balance change, so the effect is applied once.
func (r *TransactionRepository) ResolveTransaction(_ context.Context, transactionID string, status domain.TransactionStatus, gatewayRef string, now time.Time) (*domain.Transaction, error) {
	s := r.store

	s.txnMu.RLock()
	current, ok := s.txns[transactionID]
	s.txnMu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	e, ok := s.entry(current.AccountID)
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, current.AccountID)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s.txnMu.Lock()
	defer s.txnMu.Unlock()

	txn := s.txns[transactionID]
	if err := txn.Resolve(status, now); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidState, err)
	}
	if gatewayRef != "" {
		txn.GatewayReference = gatewayRef
	}
	if status == domain.StatusCompleted {
		e.adjust(txn.SignedAmount(), now)
	}
	s.txns[transactionID] = txn
	return &txn, nil
}
