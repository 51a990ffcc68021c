package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which side of a transfer a ledger row records.
type Direction string

const (
	Out Direction = "OUT"
	In  Direction = "IN"
)

// Transaction is the database representation of a ledger entry row.
// Rows are insert-only.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Direction     Direction       `db:"direction"`
	Amount        decimal.Decimal `db:"amount"`
	Message       string          `db:"message"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`
}
