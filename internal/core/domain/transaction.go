package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which side of a transfer a ledger entry records.
type Direction string

const (
	DirectionOut Direction = "OUT"
	DirectionIn  Direction = "IN"
)

// Transaction is one immutable ledger entry: one side (debit or credit) of a
// committed transfer. Every successful transfer appends exactly two, an OUT
// entry for the source account and an IN entry for the destination, with
// identical amount and message. Entries are never updated or deleted.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Direction     Direction       `json:"direction"`     // OUT or IN (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Message       string          `json:"message"`       // Nullable free-text note
	CreatedAt     time.Time       `json:"createdAt"`
}
