package pgsql

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/adapters/payment"
	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/core/services"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/SscSPs/litally_fintech_api/migrations"
	"github.com/SscSPs/litally_fintech_api/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: uniqueViolation}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolation}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

// PgsqlSuite runs against a real database named by PGSQL_TEST_URL.
type PgsqlSuite struct {
	suite.Suite
	repos struct {
		accounts *PgxAccountRepository
		txns     *PgxTransactionRepository
		users    *PgxUserRepository
	}
	ownerID string
}

func TestPgsqlSuite(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	require.NoError(t, database.RunMigrations(url, migrations.FS, slog.New(slog.NewTextHandler(io.Discard, nil))))

	pool, err := database.NewPgxPool(context.Background(), url, true)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := new(PgsqlSuite)
	s.repos.accounts = newPgxAccountRepository(pool)
	s.repos.txns = newPgxTransactionRepository(pool)
	s.repos.users = newPgxUserRepository(pool)
	suite.Run(t, s)
}

func (s *PgsqlSuite) SetupTest() {
	now := time.Now().UTC()
	s.ownerID = uuid.NewString()
	s.Require().NoError(s.repos.users.SaveUser(context.Background(), domain.User{
		UserID:       s.ownerID,
		Email:        s.ownerID + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Owner",
		UserType:     domain.UserTypeCustomer,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}))
}

func (s *PgsqlSuite) newAccount(balance string) domain.Account {
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       s.ownerID,
		AccountType:  "checking",
		AccountName:  "Main",
		CurrencyCode: "USD",
		Balance:      decimal.RequireFromString(balance),
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	s.Require().NoError(s.repos.accounts.SaveAccount(context.Background(), acc))
	return acc
}

func (s *PgsqlSuite) newPending(accountID string, typ domain.TransactionType, amount string) domain.Transaction {
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		TransactionType: typ,
		Amount:          decimal.RequireFromString(amount),
		CurrencyCode:    "USD",
		Description:     "test",
		Status:          domain.StatusPending,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	s.Require().NoError(s.repos.txns.SaveTransaction(context.Background(), txn))
	return txn
}

func (s *PgsqlSuite) TestDuplicateEmail() {
	err := s.repos.users.SaveUser(context.Background(), domain.User{
		UserID:   uuid.NewString(),
		Email:    s.ownerID + "@EXAMPLE.com",
		UserType: domain.UserTypeCustomer,
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgsqlSuite) TestConcurrentAdjustBalance() {
	ctx := context.Background()
	acc := s.newAccount("0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repos.accounts.AdjustBalance(ctx, acc.AccountID, decimal.RequireFromString("0.1"), time.Now().UTC())
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.repos.accounts.FindAccountByID(ctx, acc.AccountID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(5).Equal(got.Balance), "got %s", got.Balance)
}

func (s *PgsqlSuite) TestResolveTransactionOnce() {
	ctx := context.Background()
	acc := s.newAccount("100")
	txn := s.newPending(acc.AccountID, domain.Debit, "40")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repos.txns.ResolveTransaction(ctx, txn.TransactionID, domain.StatusCompleted, "PG-x", time.Now().UTC())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else {
				s.ErrorIs(err, apperrors.ErrInvalidState)
			}
		}()
	}
	wg.Wait()
	s.Equal(1, succeeded)

	got, err := s.repos.accounts.FindAccountByID(ctx, acc.AccountID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(60).Equal(got.Balance), "got %s", got.Balance)

	stored, err := s.repos.txns.FindTransactionByID(ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, stored.Status)
	s.Equal("PG-x", stored.GatewayReference)
}

func (s *PgsqlSuite) TestListAndNotFound() {
	ctx := context.Background()
	acc := s.newAccount("0")
	first := s.newPending(acc.AccountID, domain.Credit, "1")
	time.Sleep(time.Millisecond)
	second := s.newPending(acc.AccountID, domain.Debit, "2")

	list, err := s.repos.txns.FindTransactionsByAccountID(ctx, acc.AccountID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.TransactionID, list[0].TransactionID)
	s.Equal(second.TransactionID, list[1].TransactionID)

	_, err = s.repos.txns.FindTransactionByID(ctx, uuid.NewString())
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = s.repos.txns.SaveTransaction(ctx, domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       uuid.NewString(),
		TransactionType: domain.Credit,
		Amount:          decimal.NewFromInt(1),
		CurrencyCode:    "USD",
		Status:          domain.StatusPending,
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlSuite) TestUpdateGatewayReference() {
	ctx := context.Background()
	acc := s.newAccount("0")
	txn := s.newPending(acc.AccountID, domain.Credit, "2.71")

	updated, err := s.repos.txns.UpdateGatewayReference(ctx, txn.TransactionID, "PG-pending", time.Now().UTC())
	s.Require().NoError(err)
	s.Equal("PG-pending", updated.GatewayReference)
	s.Equal(domain.StatusPending, updated.Status)

	resolved, err := s.repos.txns.ResolveTransaction(ctx, txn.TransactionID, domain.StatusCompleted, "", time.Now().UTC())
	s.Require().NoError(err)
	s.Equal("PG-pending", resolved.GatewayReference)

	_, err = s.repos.txns.UpdateGatewayReference(ctx, uuid.NewString(), "PG-none", time.Now().UTC())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// Each call waits at the gateway, so the resolutions race on the same account row.
func (s *PgsqlSuite) TestConcurrentTransactionsSumExactly() {
	ctx := context.Background()
	acc := s.newAccount("0")
	txnService := services.NewTransactionService(s.repos.accounts, s.repos.txns,
		payment.NewSimulatedGateway(payment.DefaultSentinelPolicy(), 10*time.Millisecond),
		services.WithGatewayTimeout(5*time.Second))

	const n = 40
	want := decimal.Zero
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		typ := domain.Credit
		amount := decimal.NewFromInt(int64(i + 1)).Div(decimal.NewFromInt(4))
		if i%3 == 0 {
			typ = domain.Debit
			want = want.Sub(amount)
		} else {
			want = want.Add(amount)
		}

		wg.Add(1)
		go func(typ domain.TransactionType, amount decimal.Decimal) {
			defer wg.Done()
			txn, err := txnService.CreateTransaction(ctx, dto.CreateTransactionRequest{
				AccountID:   acc.AccountID,
				Type:        typ,
				Amount:      amount,
				Currency:    "USD",
				Description: "concurrent",
			})
			if s.NoError(err) {
				s.Equal(domain.StatusCompleted, txn.Status)
			}
		}(typ, amount)
	}
	wg.Wait()

	got, err := s.repos.accounts.FindAccountByID(ctx, acc.AccountID)
	s.Require().NoError(err)
	s.True(want.Equal(got.Balance), "want %s got %s", want, got.Balance)
}
