package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

// CreateAccountRequest defines the data needed to seed a new account.
// Account creation is an admin operation; transfers never create accounts.
type CreateAccountRequest struct {
	RoutingCode    string          `json:"routingCode" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	InitialBalance decimal.Decimal `json:"initialBalance" binding:"amountscale"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	RoutingCode   string          `json:"routingCode"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		RoutingCode:   acc.Key.RoutingCode,
		AccountNumber: acc.Key.AccountNumber,
		Balance:       acc.Balance,
		Version:       acc.Version,
		CreatedAt:     acc.CreatedAt,
	}
}

// TransactionResponse defines the data returned for one ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Message       string          `json:"message,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponses converts domain ledger entries to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = TransactionResponse{
			TransactionID: txn.TransactionID,
			AccountID:     txn.AccountID,
			Direction:     string(txn.Direction),
			Amount:        txn.Amount,
			Message:       txn.Message,
			CreatedAt:     txn.CreatedAt,
		}
	}
	return out
}
