package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

func TestAccount_HasAtLeast(t *testing.T) {
	account := domain.Account{Balance: decimal.RequireFromString("40")}

	tests := []struct {
		name   string
		amount string
		want   bool
	}{
		{name: "below balance", amount: "15", want: true},
		{name: "exactly balance", amount: "40", want: true},
		{name: "just above balance", amount: "40.001", want: false},
		{name: "far above balance", amount: "102.4", want: false},
		{name: "zero amount", amount: "0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := account.HasAtLeast(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccount_DebitedCredited(t *testing.T) {
	account := domain.Account{
		AccountID: "acc-1",
		Balance:   decimal.RequireFromString("40"),
		Version:   3,
	}
	amount := decimal.RequireFromString("15.5")

	debited := account.Debited(amount)
	credited := account.Credited(amount)

	assert.True(t, debited.Balance.Equal(decimal.RequireFromString("24.5")))
	assert.True(t, credited.Balance.Equal(decimal.RequireFromString("55.5")))

	// Snapshots: the original is untouched, identity and version carry over.
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("40")))
	assert.EqualValues(t, 3, debited.Version)
	assert.EqualValues(t, 3, credited.Version)
	assert.Equal(t, "acc-1", debited.AccountID)
}

func TestAccount_DebitCreditRoundTrip(t *testing.T) {
	account := domain.Account{Balance: decimal.RequireFromString("80")}
	amount := decimal.RequireFromString("0.003")

	roundTripped := account.Debited(amount).Credited(amount)
	assert.True(t, roundTripped.Balance.Equal(account.Balance))
}
