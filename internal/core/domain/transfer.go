package domain

// Stable error codes returned to consumers when a transfer fails. These are
// part of the API contract and must not be renamed; consumers switch on the
// literal strings.
const (
	CodeFromNotFound          = "from-not-found"
	CodeFromInsufficientFunds = "from-insufficient-funds"
	CodeToNotFound            = "to-not-found"
	CodeOptimisticLocking     = "optimistic-locking"
)

// TransferError is the typed business failure raised inside the transfer
// transaction. Returning it from the unit of work aborts the transaction and
// is translated into a failed TransferResult; any other error is an
// infrastructure defect and propagates untranslated.
type TransferError struct {
	Code string
}

func (e *TransferError) Error() string {
	return "transfer failed: " + e.Code
}

// NewTransferError creates a TransferError carrying one of the fixed codes.
func NewTransferError(code string) *TransferError {
	return &TransferError{Code: code}
}

// TransferResult is the outcome of a transfer attempt. ErrorCode is nil
// exactly when Transferred is true.
type TransferResult struct {
	Transferred bool    `json:"transferred"`
	ErrorCode   *string `json:"errorCode"`
}

// SuccessfulTransfer marks a committed transfer.
func SuccessfulTransfer() TransferResult {
	return TransferResult{Transferred: true}
}

// FailedTransfer marks a rolled-back transfer with the given error code.
func FailedTransfer(code string) TransferResult {
	return TransferResult{Transferred: false, ErrorCode: &code}
}
