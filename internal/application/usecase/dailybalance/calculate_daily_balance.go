// Package dailybalance contains the daily balance calculator, the
// close/reopen state machine and the reconciliation arithmetic.
package dailybalance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// Calculation is the pure aggregation of one day's transactions for one
// account. It carries no state and writes nothing; close feeds it into
// the reconciliation arithmetic, and the preview endpoint returns it as-is.
type Calculation struct {
	AccountID        uuid.UUID
	Date             time.Time
	OpeningBalance   decimal.Decimal
	ClosingBalance   decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalTransfers   decimal.Decimal
	TransactionCount int
}

// CalculateDailyBalanceInput represents the input for a calculation preview.
type CalculateDailyBalanceInput struct {
	AccountID uuid.UUID
	Date      time.Time
}

// CalculateDailyBalanceUseCase aggregates a day's transactions into category
// totals and a derived closing balance. Read-only and idempotent.
type CalculateDailyBalanceUseCase struct {
	store adapter.LedgerStore
}

// NewCalculateDailyBalanceUseCase creates a new CalculateDailyBalanceUseCase instance.
func NewCalculateDailyBalanceUseCase(store adapter.LedgerStore) *CalculateDailyBalanceUseCase {
	return &CalculateDailyBalanceUseCase{
		store: store,
	}
}

// Execute performs the calculation.
func (uc *CalculateDailyBalanceUseCase) Execute(ctx context.Context, input CalculateDailyBalanceInput) (*Calculation, error) {
	if _, err := uc.store.GetAccount(ctx, input.AccountID); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return calculate(ctx, uc.store, input.AccountID, input.Date)
}

// calculate runs the aggregation against the given store view. Close and
// auto-close call it with their transaction-bound store so the figures and
// the closure commit together.
func calculate(ctx context.Context, store adapter.LedgerStore, accountID uuid.UUID, date time.Time) (*Calculation, error) {
	date = entity.DateOf(date)

	// Opening balance: the prior day's verified actual balance if a record
	// exists for date-1, else zero.
	opening := decimal.Zero
	prior, err := store.FindDailyBalance(ctx, accountID, date.AddDate(0, 0, -1))
	if err != nil {
		if !errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
			return nil, fmt.Errorf("failed to load prior daily balance: %w", err)
		}
	} else {
		opening = prior.ActualBalance
	}

	transactions, err := store.TransactionsForDate(ctx, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	calc := &Calculation{
		AccountID:        accountID,
		Date:             date,
		OpeningBalance:   opening,
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalTransfers:   decimal.Zero,
		TransactionCount: len(transactions),
	}

	// Each transfer leg counts once, against its own account: the debited
	// side sums as a transfer here, the mirrored leg is a deposit on the
	// destination account and never reaches this query.
	for _, tx := range transactions {
		switch tx.Type {
		case entity.TransactionTypeDeposit:
			calc.TotalDeposits = calc.TotalDeposits.Add(tx.Amount)
		case entity.TransactionTypeWithdrawal:
			calc.TotalWithdrawals = calc.TotalWithdrawals.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			calc.TotalExpenses = calc.TotalExpenses.Add(tx.Amount)
		case entity.TransactionTypeTransfer:
			calc.TotalTransfers = calc.TotalTransfers.Add(tx.Amount)
		}
	}

	calc.ClosingBalance = opening.
		Add(calc.TotalDeposits).
		Sub(calc.TotalWithdrawals).
		Sub(calc.TotalExpenses).
		Sub(calc.TotalTransfers)

	return calc, nil
}
