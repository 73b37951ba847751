package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hash:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(ctx context.Context, actorID uuid.UUID, email string) (string, error) {
	return "token-for-" + actorID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func TestIssueToken(t *testing.T) {
	operatorID := uuid.New()
	uc := NewIssueTokenUseCase(operatorID, "operator@branch.example", "hash:secret",
		fakePasswordService{}, fakeTokenService{})

	out, err := uc.Execute(context.Background(), IssueTokenInput{
		Email:    "operator@branch.example",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ActorID != operatorID {
		t.Errorf("ActorID = %s, want %s", out.ActorID, operatorID)
	}
	if out.AccessToken != "token-for-"+operatorID.String() {
		t.Errorf("unexpected token: %s", out.AccessToken)
	}
}

func TestIssueToken_WrongPassword(t *testing.T) {
	uc := NewIssueTokenUseCase(uuid.New(), "operator@branch.example", "hash:secret",
		fakePasswordService{}, fakeTokenService{})

	_, err := uc.Execute(context.Background(), IssueTokenInput{
		Email:    "operator@branch.example",
		Password: "wrong",
	})
	if !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIssueToken_UnknownEmail(t *testing.T) {
	uc := NewIssueTokenUseCase(uuid.New(), "operator@branch.example", "hash:secret",
		fakePasswordService{}, fakeTokenService{})

	_, err := uc.Execute(context.Background(), IssueTokenInput{
		Email:    "intruder@branch.example",
		Password: "secret",
	})
	if !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
