package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	"github.com/SscSPs/litally_fintech_api/internal/models"
	"github.com/SscSPs/litally_fintech_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_id, transaction_type, amount, currency_code, description, sub_type, status, gateway_reference, created_at, last_updated_at`

// foreignKeyViolation is the Postgres SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.SubType,
		&m.Status,
		&m.GatewayReference,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.TransactionType,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.SubType,
		m.Status,
		m.GatewayReference,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
			case foreignKeyViolation:
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindTransactionsByAccountID retrieves an account's transactions, oldest first.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateGatewayReference stores the processor reference of a transaction.
func (r *PgxTransactionRepository) UpdateGatewayReference(ctx context.Context, transactionID string, gatewayRef string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET gateway_reference = $2, last_updated_at = $3
		WHERE transaction_id = $1
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, sql.NullString{String: gatewayRef, Valid: gatewayRef != ""}, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update gateway reference of transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ResolveTransaction locks the transaction row, re-checks that it is still
// PENDING, writes the new status and, for COMPLETED, adjusts the balance, all
// in one database transaction.
func (r *PgxTransactionRepository) ResolveTransaction(ctx context.Context, transactionID string, status domain.TransactionStatus, gatewayRef string, now time.Time) (*domain.Transaction, error) {
	var resolved domain.Transaction
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
		txn, err := scanTransaction(tx.QueryRow(ctx, lockQuery, transactionID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
		}

		if err := txn.Resolve(status, now); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidState, err)
		}
		if gatewayRef != "" {
			txn.GatewayReference = gatewayRef
		}

		m := mapping.ToModelTransaction(txn)
		updateQuery := `
			UPDATE transactions
			SET status = $2, gateway_reference = $3, last_updated_at = $4
			WHERE transaction_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, m.TransactionID, m.Status, m.GatewayReference, m.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
		}

		if status == domain.StatusCompleted {
			if _, err := adjustBalance(ctx, tx, txn.AccountID, txn.SignedAmount(), now); err != nil {
				return err
			}
		}

		resolved = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
