package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

// AccountRepository defines the persistence operations for accounts.
// Methods taking a pgx.Tx run inside a caller-held transaction; the
// repository never begins or ends transactions itself.
type AccountRepository interface {
	// SaveAccount inserts a new account row. Returns apperrors.ErrDuplicate
	// when (routingCode, accountNumber) is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByKey retrieves an account by its composite business key.
	// Returns apperrors.ErrNotFound when the key does not resolve to a row.
	FindAccountByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error)

	// FindAccountByKeyTx is FindAccountByKey executed on the given transaction.
	FindAccountByKeyTx(ctx context.Context, tx pgx.Tx, key domain.AccountKey) (*domain.Account, error)

	// UpdateAccountWithVersion persists the account's balance with an
	// optimistic-concurrency check: the row must still carry account.Version,
	// and the stored version advances by one. Returns the number of rows
	// affected; zero means a concurrent writer won the version race and
	// nothing was written.
	UpdateAccountWithVersion(ctx context.Context, tx pgx.Tx, account domain.Account) (int64, error)
}
