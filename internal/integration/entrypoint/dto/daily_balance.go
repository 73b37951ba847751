// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/branchledger/backend/internal/application/usecase/dailybalance"
	"github.com/branchledger/backend/internal/domain/entity"
)

// CloseDailyBalanceRequest represents the request body for closing a day.
type CloseDailyBalanceRequest struct {
	ActualBalance string `json:"actual_balance" binding:"required"`
}

// RecalculateFromRequest represents the request body for a bulk reopen.
type RecalculateFromRequest struct {
	FromDate string `json:"from_date" binding:"required"`
}

// RecalculateFromResponse represents the response for a bulk reopen.
type RecalculateFromResponse struct {
	AffectedDayCount int `json:"affected_day_count"`
}

// CalculationResponse represents a read-only daily balance preview.
type CalculationResponse struct {
	AccountID        string `json:"account_id"`
	Date             string `json:"date"`
	OpeningBalance   string `json:"opening_balance"`
	ClosingBalance   string `json:"closing_balance"`
	TotalDeposits    string `json:"total_deposits"`
	TotalWithdrawals string `json:"total_withdrawals"`
	TotalExpenses    string `json:"total_expenses"`
	TotalTransfers   string `json:"total_transfers"`
	TransactionCount int    `json:"transaction_count"`
}

// DailyBalanceResponse represents a daily balance record in API responses.
type DailyBalanceResponse struct {
	AccountID        string     `json:"account_id"`
	BalanceDate      string     `json:"balance_date"`
	OpeningBalance   string     `json:"opening_balance"`
	ClosingBalance   string     `json:"closing_balance"`
	ActualBalance    string     `json:"actual_balance"`
	TotalDeposits    string     `json:"total_deposits"`
	TotalWithdrawals string     `json:"total_withdrawals"`
	TotalExpenses    string     `json:"total_expenses"`
	TotalTransfers   string     `json:"total_transfers"`
	UnknownDeposits  string     `json:"unknown_deposits"`
	Profit           string     `json:"profit"`
	TransactionCount int        `json:"transaction_count"`
	IsClosed         bool       `json:"is_closed"`
	ClosedBy         *string    `json:"closed_by,omitempty"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

// ToCalculationResponse converts a Calculation to its response DTO.
func ToCalculationResponse(calc *dailybalance.Calculation) CalculationResponse {
	return CalculationResponse{
		AccountID:        calc.AccountID.String(),
		Date:             calc.Date.Format("2006-01-02"),
		OpeningBalance:   calc.OpeningBalance.String(),
		ClosingBalance:   calc.ClosingBalance.String(),
		TotalDeposits:    calc.TotalDeposits.String(),
		TotalWithdrawals: calc.TotalWithdrawals.String(),
		TotalExpenses:    calc.TotalExpenses.String(),
		TotalTransfers:   calc.TotalTransfers.String(),
		TransactionCount: calc.TransactionCount,
	}
}

// ToDailyBalanceResponse converts a domain DailyBalance entity to its response DTO.
func ToDailyBalanceResponse(record *entity.DailyBalance) DailyBalanceResponse {
	var closedBy *string
	if record.ClosedBy != nil {
		s := record.ClosedBy.String()
		closedBy = &s
	}

	return DailyBalanceResponse{
		AccountID:        record.AccountID.String(),
		BalanceDate:      record.BalanceDate.Format("2006-01-02"),
		OpeningBalance:   record.OpeningBalance.String(),
		ClosingBalance:   record.ClosingBalance.String(),
		ActualBalance:    record.ActualBalance.String(),
		TotalDeposits:    record.TotalDeposits.String(),
		TotalWithdrawals: record.TotalWithdrawals.String(),
		TotalExpenses:    record.TotalExpenses.String(),
		TotalTransfers:   record.TotalTransfers.String(),
		UnknownDeposits:  record.UnknownDeposits.String(),
		Profit:           record.Profit.String(),
		TransactionCount: record.TransactionCount,
		IsClosed:         record.IsClosed,
		ClosedBy:         closedBy,
		ClosedAt:         record.ClosedAt,
	}
}
