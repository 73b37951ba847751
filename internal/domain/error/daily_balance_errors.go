// Package error defines domain-specific errors for the branch ledger.
package error

import "errors"

// Daily balance domain errors.
var (
	// ErrAlreadyClosed is returned when closing a day whose record is already closed.
	ErrAlreadyClosed = errors.New("daily balance already closed")

	// ErrNotClosed is returned when reopening a day that has no record or is already open.
	ErrNotClosed = errors.New("daily balance is not closed")

	// ErrDailyBalanceNotFound is returned by the store when no record exists
	// for the (account, date) key. Absence of a record means the day is open.
	ErrDailyBalanceNotFound = errors.New("daily balance record not found")

	// ErrCloseInProgress is returned when another caller holds the close lock
	// for the same (account, date).
	ErrCloseInProgress = errors.New("close already in progress for this account and date")
)

// DailyBalanceErrorCode defines error codes for daily balance errors.
// Format: DBL-XXYYYY where XX is category and YYYY is specific error.
type DailyBalanceErrorCode string

const (
	// State machine errors (01XXXX)
	ErrCodeAlreadyClosed   DailyBalanceErrorCode = "DBL-010001"
	ErrCodeNotClosed       DailyBalanceErrorCode = "DBL-010002"
	ErrCodeCloseInProgress DailyBalanceErrorCode = "DBL-010003"

	// Validation errors (02XXXX)
	ErrCodeInvalidDateRange DailyBalanceErrorCode = "DBL-020001"

	// Lookup errors (03XXXX)
	ErrCodeDailyBalanceNotFound DailyBalanceErrorCode = "DBL-030001"
)

// DailyBalanceError represents a daily balance error with code and message.
type DailyBalanceError struct {
	Code    DailyBalanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DailyBalanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DailyBalanceError) Unwrap() error {
	return e.Err
}

// NewDailyBalanceError creates a new DailyBalanceError with the given code and message.
func NewDailyBalanceError(code DailyBalanceErrorCode, message string, err error) *DailyBalanceError {
	return &DailyBalanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
