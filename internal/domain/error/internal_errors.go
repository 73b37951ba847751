// Package error defines domain-specific errors for the branch ledger.
package error

import "errors"

// ErrInternal marks storage-layer failures (I/O, constraint violations).
// An internal error always means the entire atomic unit was rolled back;
// callers must not blindly retry mutating calls without confirming whether
// the original attempt committed.
var ErrInternal = errors.New("internal storage error")

// InternalError wraps a storage-layer failure with the operation that hit it.
type InternalError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op
}

// Unwrap returns ErrInternal so callers can classify with errors.Is.
func (e *InternalError) Unwrap() error {
	return ErrInternal
}

// NewInternalError creates a new InternalError for the given operation.
func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}
