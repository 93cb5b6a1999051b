package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, r *AccountRepository, id string, balance string) {
	t.Helper()
	require.NoError(t, r.SaveAccount(context.Background(), domain.Account{
		AccountID:    id,
		UserID:       "owner",
		CurrencyCode: "USD",
		Balance:      decimal.RequireFromString(balance),
		IsActive:     true,
	}))
}

func pendingTxn(id, accountID string, typ domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		AccountID:       accountID,
		TransactionType: typ,
		Amount:          decimal.RequireFromString(amount),
		CurrencyCode:    "USD",
		Status:          domain.StatusPending,
	}
}

func TestAccountRepository_Basics(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	accounts := repos.AccountRepo.(*AccountRepository)
	seedAccount(t, accounts, "a1", "0")

	err := accounts.SaveAccount(ctx, domain.Account{AccountID: "a1", UserID: "owner"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = accounts.FindAccountByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = accounts.AdjustBalance(ctx, "missing", decimal.NewFromInt(1), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	owned, err := accounts.FindAccountsByUserID(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	deactivated, err := accounts.DeactivateAccount(ctx, "a1", time.Now())
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Inactive accounts still accept balance changes.
	adjusted, err := accounts.AdjustBalance(ctx, "a1", decimal.RequireFromString("12.5"), time.Now())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(adjusted.Balance))
}

func TestAccountRepository_ConcurrentAdjustBalance(t *testing.T) {
	ctx := context.Background()
	accounts := &AccountRepository{store: NewStore()}
	seedAccount(t, accounts, "a1", "100")

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := decimal.RequireFromString("1.25")
			if i%2 == 1 {
				delta = delta.Neg().Add(decimal.RequireFromString("0.5"))
			}
			_, err := accounts.AdjustBalance(ctx, "a1", delta, time.Now())
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	acc, err := accounts.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	// 100 credits of 1.25 and 100 debits of 0.75.
	assert.True(t, decimal.RequireFromString("150").Equal(acc.Balance), "got %s", acc.Balance)
}

func TestTransactionRepository_ResolveAppliesBalanceOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	accounts := &AccountRepository{store: store}
	txns := &TransactionRepository{store: store}
	seedAccount(t, accounts, "a1", "100")
	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("t1", "a1", domain.Debit, "40")))

	const racers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, invalid := 0, 0
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := txns.ResolveTransaction(ctx, "t1", domain.StatusCompleted, "PG-1", time.Now())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, apperrors.ErrInvalidState) {
				invalid++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, racers-1, invalid)

	acc, err := accounts.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("60").Equal(acc.Balance), "got %s", acc.Balance)

	txn, err := txns.FindTransactionByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, txn.Status)
	assert.Equal(t, "PG-1", txn.GatewayReference)
}

func TestTransactionRepository_ResolveAndAdjustShareBalancePath(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	accounts := &AccountRepository{store: store}
	txns := &TransactionRepository{store: store}
	seedAccount(t, accounts, "a1", "0")

	const n = 50
	for i := 0; i < n; i++ {
		require.NoError(t, txns.SaveTransaction(ctx, pendingTxn(fmt.Sprintf("t%d", i), "a1", domain.Credit, "2")))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := txns.ResolveTransaction(ctx, fmt.Sprintf("t%d", i), domain.StatusCompleted, "", time.Now())
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := accounts.AdjustBalance(ctx, "a1", decimal.NewFromInt(-1), time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	acc, err := accounts.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(n).Equal(acc.Balance), "got %s", acc.Balance)

	resolvedAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("late", "a1", domain.Debit, "1")))
	_, err = txns.ResolveTransaction(ctx, "late", domain.StatusCompleted, "", resolvedAt)
	require.NoError(t, err)
	acc, err = accounts.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, resolvedAt, acc.LastUpdatedAt)
}

func TestTransactionRepository_UpdateGatewayReference(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	accounts := &AccountRepository{store: store}
	txns := &TransactionRepository{store: store}
	seedAccount(t, accounts, "a1", "0")
	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("t1", "a1", domain.Credit, "2.71")))

	updated, err := txns.UpdateGatewayReference(ctx, "t1", "PG-9", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "PG-9", updated.GatewayReference)
	assert.Equal(t, domain.StatusPending, updated.Status)

	resolved, err := txns.ResolveTransaction(ctx, "t1", domain.StatusCompleted, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "PG-9", resolved.GatewayReference)

	_, err = txns.UpdateGatewayReference(ctx, "missing", "PG-0", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionRepository_ResolveFailedLeavesBalance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	accounts := &AccountRepository{store: store}
	txns := &TransactionRepository{store: store}
	seedAccount(t, accounts, "a1", "100")
	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("t1", "a1", domain.Credit, "3.14")))

	resolved, err := txns.ResolveTransaction(ctx, "t1", domain.StatusFailed, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, resolved.Status)

	_, err = txns.ResolveTransaction(ctx, "t1", domain.StatusCompleted, "", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	acc, err := accounts.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(acc.Balance))
}

func TestTransactionRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	accounts := &AccountRepository{store: store}
	txns := &TransactionRepository{store: store}
	seedAccount(t, accounts, "a1", "0")

	err := txns.SaveTransaction(ctx, pendingTxn("t0", "missing", domain.Credit, "1"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("t1", "a1", domain.Credit, "1")))
	require.NoError(t, txns.SaveTransaction(ctx, pendingTxn("t2", "a1", domain.Debit, "2")))
	assert.ErrorIs(t, txns.SaveTransaction(ctx, pendingTxn("t1", "a1", domain.Credit, "1")), apperrors.ErrDuplicate)

	list, err := txns.FindTransactionsByAccountID(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t1", list[0].TransactionID)
	assert.Equal(t, "t2", list[1].TransactionID)

	empty, err := txns.FindTransactionsByAccountID(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = txns.ResolveTransaction(ctx, "missing", domain.StatusCompleted, "", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := &UserRepository{store: NewStore()}
	now := time.Now()

	require.NoError(t, users.SaveUser(ctx, domain.User{UserID: "u1", Email: "jane@example.com", UserType: domain.UserTypeCustomer, AuditFields: domain.AuditFields{CreatedAt: now}}))
	require.NoError(t, users.SaveUser(ctx, domain.User{UserID: "u2", Email: "joe@example.com", UserType: domain.UserTypeCustomer, AuditFields: domain.AuditFields{CreatedAt: now.Add(time.Second)}}))
	assert.ErrorIs(t, users.SaveUser(ctx, domain.User{UserID: "u3", Email: "JANE@example.com"}), apperrors.ErrDuplicate)

	found, err := users.FindUserByEmail(ctx, "Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	_, err = users.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := users.FindUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].UserID)

	promoted, err := users.UpdateUserType(ctx, "u2", domain.UserTypeAdmin, now)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	renamed, err := users.UpdateUserProfile(ctx, "u1", "Janet", "Doe", now)
	require.NoError(t, err)
	assert.Equal(t, "Janet", renamed.FirstName)

	_, err = users.UpdateUserType(ctx, "nope", domain.UserTypeAdmin, now)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
