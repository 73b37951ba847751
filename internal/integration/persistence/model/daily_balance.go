// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/domain/entity"
)

// DailyBalanceModel represents the daily_balances table in the database.
//
// Grain: (account_id, balance_date). Records are created on first close and
// never deleted.
type DailyBalanceModel struct {
	AccountID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BalanceDate      time.Time       `gorm:"type:date;primaryKey"`
	OpeningBalance   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	ClosingBalance   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	ActualBalance    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	TotalDeposits    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	TotalWithdrawals decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	TotalExpenses    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	TotalTransfers   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	UnknownDeposits  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Profit           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	TransactionCount int             `gorm:"not null;default:0"`
	IsClosed         bool            `gorm:"not null;default:false;index"`
	ClosedBy         *uuid.UUID      `gorm:"type:uuid"`
	ClosedAt         sql.NullTime    `gorm:"type:timestamptz"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the DailyBalanceModel.
func (DailyBalanceModel) TableName() string {
	return "daily_balances"
}

// ToEntity converts a DailyBalanceModel to a domain DailyBalance entity.
func (m *DailyBalanceModel) ToEntity() *entity.DailyBalance {
	var closedAt *time.Time
	if m.ClosedAt.Valid {
		t := m.ClosedAt.Time
		closedAt = &t
	}

	return &entity.DailyBalance{
		AccountID:        m.AccountID,
		BalanceDate:      entity.DateOf(m.BalanceDate),
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		ActualBalance:    m.ActualBalance,
		TotalDeposits:    m.TotalDeposits,
		TotalWithdrawals: m.TotalWithdrawals,
		TotalExpenses:    m.TotalExpenses,
		TotalTransfers:   m.TotalTransfers,
		UnknownDeposits:  m.UnknownDeposits,
		Profit:           m.Profit,
		TransactionCount: m.TransactionCount,
		IsClosed:         m.IsClosed,
		ClosedBy:         m.ClosedBy,
		ClosedAt:         closedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// DailyBalanceFromEntity creates a DailyBalanceModel from a domain DailyBalance entity.
func DailyBalanceFromEntity(record *entity.DailyBalance) *DailyBalanceModel {
	var closedAt sql.NullTime
	if record.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *record.ClosedAt, Valid: true}
	}

	return &DailyBalanceModel{
		AccountID:        record.AccountID,
		BalanceDate:      record.BalanceDate,
		OpeningBalance:   record.OpeningBalance,
		ClosingBalance:   record.ClosingBalance,
		ActualBalance:    record.ActualBalance,
		TotalDeposits:    record.TotalDeposits,
		TotalWithdrawals: record.TotalWithdrawals,
		TotalExpenses:    record.TotalExpenses,
		TotalTransfers:   record.TotalTransfers,
		UnknownDeposits:  record.UnknownDeposits,
		Profit:           record.Profit,
		TransactionCount: record.TransactionCount,
		IsClosed:         record.IsClosed,
		ClosedBy:         record.ClosedBy,
		ClosedAt:         closedAt,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
