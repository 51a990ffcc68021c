package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shivkr/transfer-service/internal/core/domain"
	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
	"github.com/shivkr/transfer-service/internal/models"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for ledger entries.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Direction:     models.Direction(d.Direction),
		Amount:        d.Amount,
		Message:       d.Message,
		CreatedAt:     d.CreatedAt,
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Direction:     domain.Direction(m.Direction),
		Amount:        m.Amount,
		Message:       m.Message,
		CreatedAt:     m.CreatedAt,
	}
}

// AppendTransaction inserts one ledger entry within the given transaction.
func (r *PgxTransactionRepository) AppendTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, account_id, direction, amount, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	// Use sql.NullString for the optional message column.
	var message sql.NullString
	if modelTxn.Message != "" {
		message = sql.NullString{String: modelTxn.Message, Valid: true}
	}

	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Direction,
		modelTxn.Amount,
		message,
		modelTxn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for account %s: %w", modelTxn.AccountID, err)
	}
	return nil
}

// ListTransactionsByAccountID retrieves ledger entries for an account, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT transaction_id, account_id, direction, amount, message, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var modelTxn models.Transaction
		var message sql.NullString
		err := rows.Scan(
			&modelTxn.TransactionID,
			&modelTxn.AccountID,
			&modelTxn.Direction,
			&modelTxn.Amount,
			&message,
			&modelTxn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row for account %s: %w", accountID, err)
		}
		if message.Valid {
			modelTxn.Message = message.String
		}
		txns = append(txns, toDomainTransaction(modelTxn))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows for account %s: %w", accountID, err)
	}

	return txns, nil
}
