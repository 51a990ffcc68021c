package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shivkr/transfer-service/internal/apperrors"
	"github.com/shivkr/transfer-service/internal/core/domain"
	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
	"github.com/shivkr/transfer-service/internal/core/services"
	"github.com/shivkr/transfer-service/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByKeyTx(ctx context.Context, tx pgx.Tx, key domain.AccountKey) (*domain.Account, error) {
	args := m.Called(ctx, tx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountWithVersion(ctx context.Context, tx pgx.Tx, account domain.Account) (int64, error) {
	args := m.Called(ctx, tx, account)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) AppendTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// passthroughTxManager runs the unit of work directly and records whether it
// would have committed or rolled back.
type passthroughTxManager struct {
	began      int
	rolledBack bool
}

var _ portsrepo.TxManager = (*passthroughTxManager)(nil)

func (t *passthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	t.began++
	err := fn(ctx, nil)
	t.rolledBack = err != nil
	return err
}

type transferFixture struct {
	accountRepo     *MockAccountRepository
	transactionRepo *MockTransactionRepository
	txManager       *passthroughTxManager
	svc             func() (domain.TransferResult, error)
	from            domain.Account
	to              domain.Account
	req             dto.TransferRequest
}

func newTransferFixture(t *testing.T, amount string) *transferFixture {
	t.Helper()

	f := &transferFixture{
		accountRepo:     new(MockAccountRepository),
		transactionRepo: new(MockTransactionRepository),
		txManager:       &passthroughTxManager{},
	}
	f.from = domain.Account{
		AccountID: uuid.NewString(),
		Key:       domain.AccountKey{RoutingCode: "109deposit", AccountNumber: "8910344"},
		Balance:   decimal.RequireFromString("40"),
		Version:   1,
	}
	f.to = domain.Account{
		AccountID: uuid.NewString(),
		Key:       domain.AccountKey{RoutingCode: "109deposit", AccountNumber: "8910345"},
		Balance:   decimal.RequireFromString("80"),
		Version:   1,
	}
	f.req = dto.TransferRequest{
		From:    dto.AccountRef{RoutingCode: f.from.Key.RoutingCode, AccountNumber: f.from.Key.AccountNumber},
		To:      dto.AccountRef{RoutingCode: f.to.Key.RoutingCode, AccountNumber: f.to.Key.AccountNumber},
		Amount:  decimal.RequireFromString(amount),
		Message: "loan",
	}
	svc := services.NewTransferService(f.txManager, f.accountRepo, f.transactionRepo)
	f.svc = func() (domain.TransferResult, error) {
		return svc.Transfer(context.Background(), f.req)
	}
	return f
}

func TestTransfer_Success(t *testing.T) {
	f := newTransferFixture(t, "15")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == f.from.AccountID
	})).Return(int64(1), nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == f.to.AccountID
	})).Return(int64(1), nil).Once()
	f.transactionRepo.On("AppendTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := f.svc()

	require.NoError(t, err)
	assert.True(t, result.Transferred)
	assert.Nil(t, result.ErrorCode)
	assert.False(t, f.txManager.rolledBack)

	// Both conditional updates carried the pre-read version and the
	// post-arithmetic balances: 40-15=25 out, 80+15=95 in.
	var updated []domain.Account
	for _, call := range f.accountRepo.Calls {
		if call.Method == "UpdateAccountWithVersion" {
			updated = append(updated, call.Arguments.Get(2).(domain.Account))
		}
	}
	require.Len(t, updated, 2)
	assert.True(t, updated[0].Balance.Equal(decimal.RequireFromString("25")), "source balance was %s", updated[0].Balance)
	assert.EqualValues(t, 1, updated[0].Version)
	assert.True(t, updated[1].Balance.Equal(decimal.RequireFromString("95")), "destination balance was %s", updated[1].Balance)
	assert.EqualValues(t, 1, updated[1].Version)

	// Conservation: total moved out equals total moved in.
	assert.True(t, updated[0].Balance.Add(updated[1].Balance).Equal(f.from.Balance.Add(f.to.Balance)))
}

func TestTransfer_LedgerPairing(t *testing.T) {
	f := newTransferFixture(t, "15.5")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil).Twice()
	f.transactionRepo.On("AppendTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := f.svc()

	require.NoError(t, err)
	require.True(t, result.Transferred)

	var entries []domain.Transaction
	for _, call := range f.transactionRepo.Calls {
		if call.Method == "AppendTransaction" {
			entries = append(entries, call.Arguments.Get(2).(domain.Transaction))
		}
	}
	require.Len(t, entries, 2)

	out, in := entries[0], entries[1]
	assert.Equal(t, domain.DirectionOut, out.Direction)
	assert.Equal(t, f.from.AccountID, out.AccountID)
	assert.Equal(t, domain.DirectionIn, in.Direction)
	assert.Equal(t, f.to.AccountID, in.AccountID)
	assert.True(t, out.Amount.Equal(in.Amount))
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("15.5")))
	assert.Equal(t, "loan", out.Message)
	assert.Equal(t, out.Message, in.Message)
	assert.NotEmpty(t, out.TransactionID)
	assert.NotEmpty(t, in.TransactionID)
	assert.NotEqual(t, out.TransactionID, in.TransactionID)
}

/*
 * Error codes below are asserted as string literals rather than the exported
 * constants. They are part of the API contract: if a code ever changes these
 * tests must fail, so they double as consumer contract tests.
 */

func TestTransfer_InsufficientFunds(t *testing.T) {
	f := newTransferFixture(t, "102.4")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()

	result, err := f.svc()

	require.NoError(t, err)
	assert.False(t, result.Transferred)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "from-insufficient-funds", *result.ErrorCode)
	assert.True(t, f.txManager.rolledBack)

	// The destination is never looked up once funds are known to be short.
	f.accountRepo.AssertNumberOfCalls(t, "FindAccountByKeyTx", 1)
	f.accountRepo.AssertNotCalled(t, "UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything)
	f.transactionRepo.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_ExactBalanceSucceeds(t *testing.T) {
	f := newTransferFixture(t, "40")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil).Twice()
	f.transactionRepo.On("AppendTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := f.svc()

	require.NoError(t, err)
	assert.True(t, result.Transferred)
}

func TestTransfer_FromNotFound(t *testing.T) {
	f := newTransferFixture(t, "16")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(nil, apperrors.ErrNotFound).Once()

	result, err := f.svc()

	require.NoError(t, err)
	assert.False(t, result.Transferred)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "from-not-found", *result.ErrorCode)
	assert.True(t, f.txManager.rolledBack)
	f.transactionRepo.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_FromNotFoundOutranksInsufficientFunds(t *testing.T) {
	// Missing source plus an amount no balance could cover must still report
	// from-not-found, never from-insufficient-funds.
	f := newTransferFixture(t, "99999999")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(nil, apperrors.ErrNotFound).Once()

	result, err := f.svc()

	require.NoError(t, err)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "from-not-found", *result.ErrorCode)
}

func TestTransfer_ToNotFound(t *testing.T) {
	f := newTransferFixture(t, "16")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(nil, apperrors.ErrNotFound).Once()

	result, err := f.svc()

	require.NoError(t, err)
	assert.False(t, result.Transferred)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "to-not-found", *result.ErrorCode)
	assert.True(t, f.txManager.rolledBack)

	// The debit is never persisted when the destination is missing.
	f.accountRepo.AssertNotCalled(t, "UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_OptimisticLockingOnSource(t *testing.T) {
	f := newTransferFixture(t, "15")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	result, err := f.svc()

	require.NoError(t, err)
	assert.False(t, result.Transferred)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "optimistic-locking", *result.ErrorCode)
	assert.True(t, f.txManager.rolledBack)

	// The whole transfer is abandoned after the lost race: one update
	// attempt, no ledger entries.
	f.accountRepo.AssertNumberOfCalls(t, "UpdateAccountWithVersion", 1)
	f.transactionRepo.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_OptimisticLockingOnDestination(t *testing.T) {
	f := newTransferFixture(t, "15")

	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == f.from.AccountID
	})).Return(int64(1), nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == f.to.AccountID
	})).Return(int64(0), nil).Once()

	result, err := f.svc()

	require.NoError(t, err)
	require.NotNil(t, result.ErrorCode)
	assert.Equal(t, "optimistic-locking", *result.ErrorCode)

	// The source update nominally succeeded inside the transaction, so the
	// boundary must roll the whole unit back.
	assert.True(t, f.txManager.rolledBack)
	f.transactionRepo.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_SameAccountRejected(t *testing.T) {
	f := newTransferFixture(t, "15")
	f.req.To = f.req.From

	result, err := f.svc()

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.False(t, result.Transferred)

	// Rejected before any transaction is opened.
	assert.Zero(t, f.txManager.began)
	f.accountRepo.AssertNotCalled(t, "FindAccountByKeyTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_InfrastructureErrorPropagates(t *testing.T) {
	f := newTransferFixture(t, "15")

	storeErr := errors.New("connection reset by peer")
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(nil, storeErr).Once()

	result, err := f.svc()

	// Unrecognized errors are never translated into a business code.
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, result.Transferred)
	assert.Nil(t, result.ErrorCode)
	assert.True(t, f.txManager.rolledBack)
}

func TestTransfer_AppendFailureAborts(t *testing.T) {
	f := newTransferFixture(t, "15")

	appendErr := errors.New("insert failed")
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.from.Key).Return(&f.from, nil).Once()
	f.accountRepo.On("FindAccountByKeyTx", mock.Anything, mock.Anything, f.to.Key).Return(&f.to, nil).Once()
	f.accountRepo.On("UpdateAccountWithVersion", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil).Twice()
	f.transactionRepo.On("AppendTransaction", mock.Anything, mock.Anything, mock.Anything).Return(appendErr).Once()

	result, err := f.svc()

	require.Error(t, err)
	assert.ErrorIs(t, err, appendErr)
	assert.False(t, result.Transferred)
	assert.True(t, f.txManager.rolledBack)
}
