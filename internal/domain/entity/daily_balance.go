// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyBalance is the per (account, date) reconciliation record.
//
// Grain: (account_id, balance_date). A record is created on the first close
// of a day and never deleted; afterwards it cycles between closed and open.
// A day with no record is open by definition.
//
// ClosingBalance is derived from the opening balance and the day's recorded
// flows; ActualBalance is the externally verified figure supplied at close.
// UnknownDeposits and Profit come out of the reconciliation arithmetic.
type DailyBalance struct {
	AccountID        uuid.UUID
	BalanceDate      time.Time // UTC midnight
	OpeningBalance   decimal.Decimal
	ClosingBalance   decimal.Decimal
	ActualBalance    decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalTransfers   decimal.Decimal
	UnknownDeposits  decimal.Decimal
	Profit           decimal.Decimal
	TransactionCount int
	IsClosed         bool
	ClosedBy         *uuid.UUID
	ClosedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Reopen flips a closed record back to the open state. The stored totals are
// deliberately left as a stale snapshot until the next close recomputes them.
func (d *DailyBalance) Reopen() {
	d.IsClosed = false
	d.ClosedBy = nil
	d.ClosedAt = nil
	d.UpdatedAt = time.Now().UTC()
}
