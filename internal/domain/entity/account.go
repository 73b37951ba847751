// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank account held by a branch.
//
// CurrentBalance reflects only transactions dated on the current processing
// date; past-dated transactions never touch it directly. Closing a day sets
// it to the verified actual balance for that day.
type Account struct {
	ID             uuid.UUID
	BranchID       uuid.UUID
	Name           string
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new Account entity with a zero balance.
func NewAccount(branchID uuid.UUID, name string) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:             uuid.New(),
		BranchID:       branchID,
		Name:           name,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
