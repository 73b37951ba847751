// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_txn_account_date,priority:1"`
	Date                time.Time       `gorm:"type:date;not null;index:idx_txn_account_date,priority:2"`
	Time                string          `gorm:"type:varchar(8);not null"`
	Type                string          `gorm:"type:varchar(10);not null;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceAfter        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	Note                string          `gorm:"type:text"`
	ReferenceNumber     string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	PairedTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy           uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		Date:                entity.DateOf(m.Date),
		Time:                m.Time,
		Type:                entity.TransactionType(m.Type),
		Amount:              m.Amount,
		BalanceAfter:        m.BalanceAfter,
		CategoryID:          m.CategoryID,
		Note:                m.Note,
		ReferenceNumber:     m.ReferenceNumber,
		PairedTransactionID: m.PairedTransactionID,
		CreatedBy:           m.CreatedBy,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                  tx.ID,
		AccountID:           tx.AccountID,
		Date:                tx.Date,
		Time:                tx.Time,
		Type:                string(tx.Type),
		Amount:              tx.Amount,
		BalanceAfter:        tx.BalanceAfter,
		CategoryID:          tx.CategoryID,
		Note:                tx.Note,
		ReferenceNumber:     tx.ReferenceNumber,
		PairedTransactionID: tx.PairedTransactionID,
		CreatedBy:           tx.CreatedBy,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}
