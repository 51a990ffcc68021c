package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

// AccountRef identifies one side of a transfer by its composite key.
type AccountRef struct {
	RoutingCode   string `json:"routingCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

// Key converts the reference into a domain account key.
func (r AccountRef) Key() domain.AccountKey {
	return domain.AccountKey{
		RoutingCode:   r.RoutingCode,
		AccountNumber: r.AccountNumber,
	}
}

// TransferRequest is the inbound payload for a money transfer. Amount must
// be non-negative with at most three fractional digits; the amountscale
// binding enforces that before the engine is invoked. Message is optional
// free text recorded on both ledger entries.
type TransferRequest struct {
	From    AccountRef      `json:"from" binding:"required"`
	To      AccountRef      `json:"to" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"amountscale"`
	Message string          `json:"message"`
}

// TransferResponse mirrors domain.TransferResult on the wire: errorCode is
// null exactly when transferred is true.
type TransferResponse struct {
	Transferred bool    `json:"transferred"`
	ErrorCode   *string `json:"errorCode"`
}

// ToTransferResponse converts a domain.TransferResult to its response DTO.
func ToTransferResponse(result domain.TransferResult) TransferResponse {
	return TransferResponse{
		Transferred: result.Transferred,
		ErrorCode:   result.ErrorCode,
	}
}
