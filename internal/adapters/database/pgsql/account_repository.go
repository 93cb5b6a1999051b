package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	"github.com/SscSPs/litally_fintech_api/internal/models"
	"github.com/SscSPs/litally_fintech_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, account_type, account_name, currency_code, balance, is_active, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountType,
		&m.AccountName,
		&m.CurrencyCode,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.AccountType,
		m.AccountName,
		m.CurrencyCode,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountsByUserID retrieves the accounts owned by a user, oldest first.
func (r *PgxAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at, account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// AdjustBalance increments the balance in a single statement so concurrent
// adjustments serialise on the row lock.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	return adjustBalance(ctx, r.Pool, accountID, delta, now)
}

func adjustBalance(ctx context.Context, q querier, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(q.QueryRow(ctx, query, accountID, delta, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	return &acc, nil
}

// DeactivateAccount clears the active flag.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	return &acc, nil
}
