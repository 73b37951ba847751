// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims of an access token.
type TokenClaims struct {
	ActorID uuid.UUID
	Email   string
}

// TokenService issues and validates operator access tokens. The ledger
// engine itself never sees tokens; the middleware resolves them to an actor
// id before any usecase runs.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for the operator.
	GenerateAccessToken(ctx context.Context, actorID uuid.UUID, email string) (string, error)

	// ValidateAccessToken validates a token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordService verifies operator credentials.
type PasswordService interface {
	// HashPassword hashes a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a stored hash.
	VerifyPassword(hashedPassword, password string) error
}
