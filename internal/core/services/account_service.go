package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shivkr/transfer-service/internal/core/domain"
	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
	portssvc "github.com/shivkr/transfer-service/internal/core/ports/services"
	"github.com/shivkr/transfer-service/internal/dto"
	"github.com/shivkr/transfer-service/internal/middleware"
)

// accountService provides the admin-facing account operations: seeding new
// accounts and reading accounts and their ledger history. Balances are only
// ever changed by the transfer engine.
type accountService struct {
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount seeds a new account with the given initial balance. New
// accounts start at version 1.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		AccountID: uuid.NewString(),
		Key: domain.AccountKey{
			RoutingCode:   req.RoutingCode,
			AccountNumber: req.AccountNumber,
		},
		Balance:   req.InitialBalance,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("routing_code", account.Key.RoutingCode),
		slog.String("account_number", account.Key.AccountNumber),
	)
	return &account, nil
}

// GetAccountByKey retrieves an account by its composite key.
func (s *accountService) GetAccountByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error) {
	return s.accountRepo.FindAccountByKey(ctx, key)
}

// ListAccountTransactions retrieves the ledger entries recorded against the
// account identified by key, newest first.
func (s *accountService) ListAccountTransactions(ctx context.Context, key domain.AccountKey, limit int, offset int) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.ListTransactionsByAccountID(ctx, account.AccountID, limit, offset)
}
