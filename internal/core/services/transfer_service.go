package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shivkr/transfer-service/internal/apperrors"
	"github.com/shivkr/transfer-service/internal/core/domain"
	portsrepo "github.com/shivkr/transfer-service/internal/core/ports/repositories"
	portssvc "github.com/shivkr/transfer-service/internal/core/ports/services"
	"github.com/shivkr/transfer-service/internal/dto"
	"github.com/shivkr/transfer-service/internal/middleware"
)

// transferService moves an amount between two accounts as one atomic unit:
// both conditional balance updates and both ledger entries commit together
// or not at all. It holds no state across calls and is safe to construct
// fresh per request.
type transferService struct {
	txManager       portsrepo.TxManager
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
}

// NewTransferService creates a new TransferService.
func NewTransferService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionRepository) portssvc.TransferSvcFacade {
	return &transferService{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure transferService implements the portssvc.TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer executes the transfer described by req. Business failures come
// back as a failed TransferResult with a nil error and the whole transaction
// rolled back; a non-nil error means infrastructure trouble and is not
// translated into a business code.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest) (domain.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Transferring an account onto itself would race against its own
	// version check; rejected outright rather than silently allowed.
	if req.From.Key() == req.To.Key() {
		return domain.TransferResult{}, fmt.Errorf("%w: from and to must reference different accounts", apperrors.ErrValidation)
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.runTransfer(ctx, tx, req)
	})
	if err != nil {
		var transferErr *domain.TransferError
		if errors.As(err, &transferErr) {
			logger.Info("Transfer rejected", slog.String("error_code", transferErr.Code))
			return domain.FailedTransfer(transferErr.Code), nil
		}
		return domain.TransferResult{}, err
	}

	logger.Info("Transfer committed",
		slog.String("from", req.From.AccountNumber),
		slog.String("to", req.To.AccountNumber),
		slog.String("amount", req.Amount.String()),
	)
	return domain.SuccessfulTransfer(), nil
}

// runTransfer is the unit of work executed inside the transaction boundary.
// Returning a *domain.TransferError aborts the transaction with a business
// failure; any other error aborts it as a fault. The check order fixes the
// error priority: a missing source outranks insufficient funds, which
// outranks a missing destination, which outranks a lost version race.
func (s *transferService) runTransfer(ctx context.Context, tx pgx.Tx, req dto.TransferRequest) error {
	from, err := s.accountRepo.FindAccountByKeyTx(ctx, tx, req.From.Key())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewTransferError(domain.CodeFromNotFound)
		}
		return err
	}

	// Funds are checked before the destination is even looked up.
	if !from.HasAtLeast(req.Amount) {
		return domain.NewTransferError(domain.CodeFromInsufficientFunds)
	}

	to, err := s.accountRepo.FindAccountByKeyTx(ctx, tx, req.To.Key())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewTransferError(domain.CodeToNotFound)
		}
		return err
	}

	if err := s.updateWithVersion(ctx, tx, from.Debited(req.Amount)); err != nil {
		return err
	}
	if err := s.updateWithVersion(ctx, tx, to.Credited(req.Amount)); err != nil {
		return err
	}

	now := time.Now().UTC()
	entries := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			AccountID:     from.AccountID,
			Direction:     domain.DirectionOut,
			Amount:        req.Amount,
			Message:       req.Message,
			CreatedAt:     now,
		},
		{
			TransactionID: uuid.NewString(),
			AccountID:     to.AccountID,
			Direction:     domain.DirectionIn,
			Amount:        req.Amount,
			Message:       req.Message,
			CreatedAt:     now,
		},
	}
	for _, entry := range entries {
		if err := s.transactionRepo.AppendTransaction(ctx, tx, entry); err != nil {
			return err
		}
	}

	return nil
}

// updateWithVersion persists one account balance behind its version check.
// Zero rows affected means another writer advanced the version since our
// read; the whole transfer is abandoned, never retried here.
func (s *transferService) updateWithVersion(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	affected, err := s.accountRepo.UpdateAccountWithVersion(ctx, tx, account)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewTransferError(domain.CodeOptimisticLocking)
	}
	return nil
}
