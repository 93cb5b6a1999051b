// Package memory is an in-process implementation of the repository ports,
// used for local runs and tests.
package memory

import (
	"sync"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// accountEntry guards a single account. Its mutex serialises every balance
// change and every resolution of the account's transactions.
type accountEntry struct {
	mu      sync.Mutex
	account domain.Account
}

// adjust is the only place a balance changes. Callers hold e.mu.
func (e *accountEntry) adjust(delta decimal.Decimal, now time.Time) domain.Account {
	e.account.Balance = e.account.Balance.Add(delta)
	e.account.LastUpdatedAt = now
	return e.account
}

// Store holds all state. Lock order: accountEntry.mu before txnMu.
type Store struct {
	accountsMu sync.RWMutex
	accounts   map[string]*accountEntry
	byOwner    map[string][]string

	txnMu     sync.RWMutex
	txns      map[string]domain.Transaction
	byAccount map[string][]string

	usersMu sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*accountEntry),
		byOwner:   make(map[string][]string),
		txns:      make(map[string]domain.Transaction),
		byAccount: make(map[string][]string),
		users:     make(map[string]domain.User),
		byEmail:   make(map[string]string),
	}
}

func (s *Store) entry(accountID string) (*accountEntry, bool) {
	s.accountsMu.RLock()
	defer s.accountsMu.RUnlock()
	e, ok := s.accounts[accountID]
	return e, ok
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     &AccountRepository{store: store},
		TransactionRepo: &TransactionRepository{store: store},
		UserRepo:        &UserRepository{store: store},
	}
}
