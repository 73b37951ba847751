// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

const tokenIssuer = "branch-ledger"

// CustomClaims represents the custom claims for operator access tokens.
type CustomClaims struct {
	ActorID string `json:"actor_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, duration time.Duration) adapter.TokenService {
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
	}
}

// GenerateAccessToken issues a signed access token for the operator.
func (s *tokenService) GenerateAccessToken(ctx context.Context, actorID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()
	claims := CustomClaims{
		ActorID: actorID.String(),
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   actorID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken validates a token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	actorID, err := uuid.Parse(claims.ActorID)
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}

	return &adapter.TokenClaims{
		ActorID: actorID,
		Email:   claims.Email,
	}, nil
}
