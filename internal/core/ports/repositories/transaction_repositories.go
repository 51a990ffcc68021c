package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

// TransactionRepository defines the persistence operations for ledger
// entries. The ledger is append-only: entries are never updated or deleted.
type TransactionRepository interface {
	// AppendTransaction inserts one ledger entry on the given transaction.
	// Any failure propagates and aborts the surrounding unit of work.
	AppendTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// ListTransactionsByAccountID retrieves ledger entries for an account,
	// newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}
