package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager is the transaction boundary the transfer engine runs inside.
// WithinTx begins a transaction, invokes fn with it, commits when fn returns
// nil and rolls back when fn returns any error. The error is returned to the
// caller unchanged; WithinTx performs no translation.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
