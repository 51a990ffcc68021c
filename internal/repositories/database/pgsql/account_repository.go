package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shivkr/transfer-service/internal/apperrors"
	"github.com/shivkr/transfer-service/internal/core/domain"
	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
	"github.com/shivkr/transfer-service/internal/models"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		RoutingCode:   d.Key.RoutingCode,
		AccountNumber: d.Key.AccountNumber,
		Balance:       d.Balance,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Key: domain.AccountKey{
			RoutingCode:   m.RoutingCode,
			AccountNumber: m.AccountNumber,
		},
		Balance:   m.Balance,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
	}
}

// SaveAccount inserts a new account. Accounts are seeded through this path
// only; balance mutation goes through UpdateAccountWithVersion.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, routing_code, account_number, balance, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.RoutingCode,
		modelAcc.AccountNumber,
		modelAcc.Balance,
		modelAcc.Version,
		modelAcc.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account %s/%s already exists", apperrors.ErrDuplicate, modelAcc.RoutingCode, modelAcc.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s/%s: %w", modelAcc.RoutingCode, modelAcc.AccountNumber, err)
	}
	return nil
}

const findAccountQuery = `
	SELECT account_id, routing_code, account_number, balance, version, created_at
	FROM accounts
	WHERE routing_code = $1 AND account_number = $2;
`

// FindAccountByKey retrieves an account by its composite key using the pool.
func (r *PgxAccountRepository) FindAccountByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, findAccountQuery, key.RoutingCode, key.AccountNumber), key)
}

// FindAccountByKeyTx retrieves an account by its composite key within the
// given transaction. Reads take no row locks; conflicting writers are caught
// by the version check at update time instead.
func (r *PgxAccountRepository) FindAccountByKeyTx(ctx context.Context, tx pgx.Tx, key domain.AccountKey) (*domain.Account, error) {
	return scanAccount(tx.QueryRow(ctx, findAccountQuery, key.RoutingCode, key.AccountNumber), key)
}

func scanAccount(row pgx.Row, key domain.AccountKey) (*domain.Account, error) {
	var modelAcc models.Account
	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.RoutingCode,
		&modelAcc.AccountNumber,
		&modelAcc.Balance,
		&modelAcc.Version,
		&modelAcc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s/%s: %w", key.RoutingCode, key.AccountNumber, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// UpdateAccountWithVersion writes the account's new balance, guarded by the
// version the caller read. The WHERE clause carries the old version and the
// SET clause advances it; a row that moved on since the read matches nothing
// and the command reports zero rows affected.
func (r *PgxAccountRepository) UpdateAccountWithVersion(ctx context.Context, tx pgx.Tx, account domain.Account) (int64, error) {
	modelAcc := toModelAccount(account)

	query := `
		UPDATE accounts
		SET balance = $2, version = version + 1
		WHERE account_id = $1 AND version = $3;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Balance,
		modelAcc.Version,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}

	return cmdTag.RowsAffected(), nil
}
