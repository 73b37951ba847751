// Package auth contains the operator token use case. Full user management
// lives outside this service; the engine only needs a verified actor id.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// IssueTokenInput represents the operator credentials.
type IssueTokenInput struct {
	Email    string
	Password string
}

// IssueTokenOutput carries the signed access token.
type IssueTokenOutput struct {
	AccessToken string
	ActorID     uuid.UUID
}

// IssueTokenUseCase verifies operator credentials against the configured
// bcrypt hash and issues a JWT access token.
type IssueTokenUseCase struct {
	operatorID      uuid.UUID
	operatorEmail   string
	passwordHash    string
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewIssueTokenUseCase creates a new IssueTokenUseCase instance.
func NewIssueTokenUseCase(
	operatorID uuid.UUID,
	operatorEmail string,
	passwordHash string,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *IssueTokenUseCase {
	return &IssueTokenUseCase{
		operatorID:      operatorID,
		operatorEmail:   operatorEmail,
		passwordHash:    passwordHash,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute verifies the credentials and issues a token.
func (uc *IssueTokenUseCase) Execute(ctx context.Context, input IssueTokenInput) (*IssueTokenOutput, error) {
	if input.Email != uc.operatorEmail {
		return nil, domainerror.ErrInvalidCredentials
	}

	if err := uc.passwordService.VerifyPassword(uc.passwordHash, input.Password); err != nil {
		return nil, domainerror.ErrInvalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, uc.operatorID, uc.operatorEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &IssueTokenOutput{
		AccessToken: token,
		ActorID:     uc.operatorID,
	}, nil
}
