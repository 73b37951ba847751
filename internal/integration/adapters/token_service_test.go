package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/branchledger/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)
	actorID := uuid.New()
	ctx := context.Background()

	token, err := service.GenerateAccessToken(ctx, actorID, "operator@branch.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := service.ValidateAccessToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.ActorID != actorID {
		t.Errorf("ActorID = %s, want %s", claims.ActorID, actorID)
	}
	if claims.Email != "operator@branch.example" {
		t.Errorf("Email = %s, want operator@branch.example", claims.Email)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	ctx := context.Background()
	token, err := NewTokenService("secret-a", time.Hour).GenerateAccessToken(ctx, uuid.New(), "operator@branch.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewTokenService("secret-b", time.Hour).ValidateAccessToken(ctx, token)
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	service := NewTokenService("test-secret", -time.Minute)
	ctx := context.Background()

	token, err := service.GenerateAccessToken(ctx, uuid.New(), "operator@branch.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.ValidateAccessToken(ctx, token)
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)

	_, err := service.ValidateAccessToken(context.Background(), "not-a-token")
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordService(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.HashPassword("cash-drawer-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "cash-drawer-42" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := service.VerifyPassword(hash, "cash-drawer-42"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := service.VerifyPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
