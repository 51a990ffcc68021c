package services

import (
	"context"

	"github.com/shivkr/transfer-service/internal/core/domain"
	"github.com/shivkr/transfer-service/internal/dto"
)

// AccountSvcFacade defines the admin-facing account operations. Accounts are
// seeded through this facade and only ever mutated by the transfer engine.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByKey(ctx context.Context, key domain.AccountKey) (*domain.Account, error)
	ListAccountTransactions(ctx context.Context, key domain.AccountKey, limit int, offset int) ([]domain.Transaction, error)
}
