// Package error defines domain-specific errors for the branch ledger.
package error

import "errors"

// Ledger domain errors. These form a closed set of business outcomes
// surfaced synchronously to callers; none of them is ever retried
// automatically.
var (
	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTargetAccountNotFound is returned when a transfer's destination account does not exist.
	ErrTargetAccountNotFound = errors.New("transfer destination account not found")

	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInsufficientBalance is returned when a same-day amount update or
	// deletion would drive the account's current balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransactionType is returned when the transaction type is unknown.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrMissingTransferDestination is returned when a transfer is created without a destination account.
	ErrMissingTransferDestination = errors.New("transfer requires a destination account")

	// ErrEmptyBulkUpdate is returned when a bulk historical update carries no entries.
	ErrEmptyBulkUpdate = errors.New("bulk update list cannot be empty")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount              LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidTransactionType     LedgerErrorCode = "LDG-010002"
	ErrCodeMissingTransferDestination LedgerErrorCode = "LDG-010003"
	ErrCodeEmptyBulkUpdate            LedgerErrorCode = "LDG-010004"

	// Lookup errors (02XXXX)
	ErrCodeAccountNotFound       LedgerErrorCode = "LDG-020001"
	ErrCodeTargetAccountNotFound LedgerErrorCode = "LDG-020002"
	ErrCodeTransactionNotFound   LedgerErrorCode = "LDG-020003"

	// Balance errors (03XXXX)
	ErrCodeInsufficientBalance LedgerErrorCode = "LDG-030001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
