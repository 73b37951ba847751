// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"type:varchar(255);not null"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:             m.ID,
		BranchID:       m.BranchID,
		Name:           m.Name,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:             account.ID,
		BranchID:       account.BranchID,
		Name:           account.Name,
		CurrentBalance: account.CurrentBalance,
		IsActive:       account.IsActive,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}
