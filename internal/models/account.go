package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of an account row.
// (routing_code, account_number) carries a unique constraint; version backs
// the optimistic-concurrency check on every balance update.
type Account struct {
	AccountID     string          `db:"account_id"`
	RoutingCode   string          `db:"routing_code"`
	AccountNumber string          `db:"account_number"`
	Balance       decimal.Decimal `db:"balance"`
	Version       int64           `db:"version"`
	CreatedAt     time.Time       `db:"created_at"`
}
