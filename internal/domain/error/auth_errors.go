// Package error defines domain-specific errors for the branch ledger.
package error

import "errors"

// Auth domain errors. The engine itself trusts the actor id it is given;
// these errors only exist at the token boundary.
var (
	// ErrInvalidCredentials is returned when operator credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
type AuthErrorCode string

const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-010001"
	ErrCodeMissingToken       AuthErrorCode = "AUTH-010002"
	ErrCodeInvalidToken       AuthErrorCode = "AUTH-010003"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-010004"
)
