package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivkr/transfer-service/internal/core/domain"
)

func TestTransferResult(t *testing.T) {
	success := domain.SuccessfulTransfer()
	assert.True(t, success.Transferred)
	assert.Nil(t, success.ErrorCode)

	failure := domain.FailedTransfer(domain.CodeOptimisticLocking)
	assert.False(t, failure.Transferred)
	require.NotNil(t, failure.ErrorCode)
	assert.Equal(t, "optimistic-locking", *failure.ErrorCode)
}

func TestTransferError(t *testing.T) {
	err := domain.NewTransferError(domain.CodeFromNotFound)
	assert.Equal(t, "transfer failed: from-not-found", err.Error())
}

func TestErrorCodes(t *testing.T) {
	// The literals are the API contract; consumers switch on these strings.
	assert.Equal(t, "from-not-found", domain.CodeFromNotFound)
	assert.Equal(t, "from-insufficient-funds", domain.CodeFromInsufficientFunds)
	assert.Equal(t, "to-not-found", domain.CodeToNotFound)
	assert.Equal(t, "optimistic-locking", domain.CodeOptimisticLocking)
}
