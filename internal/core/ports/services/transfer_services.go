package services

import (
	"context"

	"github.com/shivkr/transfer-service/internal/core/domain"
	"github.com/shivkr/transfer-service/internal/dto"
)

// TransferSvcFacade defines the single operation exposed by the transfer
// engine. A business failure comes back as a TransferResult carrying one of
// the fixed error codes with a nil error; a non-nil error means an
// infrastructure fault and carries no business meaning.
type TransferSvcFacade interface {
	Transfer(ctx context.Context, req dto.TransferRequest) (domain.TransferResult, error)
}
