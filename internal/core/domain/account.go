package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKey is the composite business key of an account. It is assigned at
// creation and never changes.
type AccountKey struct {
	RoutingCode   string `json:"routingCode"`
	AccountNumber string `json:"accountNumber"`
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services. It is treated as an
// immutable snapshot: balance changes produce a new value via Debited or
// Credited, and the stored row is only ever advanced through a
// version-checked conditional update.
type Account struct {
	AccountID string          `json:"accountID"` // Surrogate key (UUID), referenced by ledger entries
	Key       AccountKey      `json:"key"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"` // Increments by exactly 1 on every committed update
	CreatedAt time.Time       `json:"createdAt"`
}

// HasAtLeast reports whether the account balance covers the given amount.
func (a Account) HasAtLeast(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Debited returns a snapshot with the amount subtracted from the balance.
// Version is left untouched; the conditional update supplies old version in
// the WHERE clause and old version + 1 in the SET clause.
func (a Account) Debited(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Sub(amount)
	return a
}

// Credited returns a snapshot with the amount added to the balance.
func (a Account) Credited(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Add(amount)
	return a
}
