package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// NewTxManager creates the transaction boundary used by the transfer engine.
func NewTxManager(pool *pgxpool.Pool) portsrepo.TxManager {
	return &BaseRepository{Pool: pool}
}

var _ portsrepo.TxManager = (*BaseRepository)(nil)

// WithinTx runs fn inside a database transaction. The transaction commits
// only when fn returns nil; any error from fn rolls back every write made
// through the supplied tx and is returned to the caller unchanged.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer r.rollback(ctx, tx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *BaseRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.ErrorContext(ctx, "Failed to roll back transaction", slog.String("error", err.Error()))
	}
}
