// Package dailybalance contains the daily balance calculator, the
// close/reopen state machine and the reconciliation arithmetic.
package dailybalance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// CloseDailyBalanceInput represents the input for closing a day.
type CloseDailyBalanceInput struct {
	AccountID     uuid.UUID
	Date          time.Time
	ActualBalance decimal.Decimal
	ActorID       uuid.UUID
}

// CloseDailyBalanceUseCase finalizes a date's balance against a verified
// actual amount: it runs the calculator, applies the reconciliation
// arithmetic, upserts a closed record and sets the account's current balance
// to the actual balance, all in one atomic unit.
type CloseDailyBalanceUseCase struct {
	store    adapter.LedgerStore
	lock     adapter.CloseLock
	clock    adapter.Clock
	notifier adapter.CloseReportNotifier
}

// NewCloseDailyBalanceUseCase creates a new CloseDailyBalanceUseCase instance.
// notifier may be nil when close reports are disabled.
func NewCloseDailyBalanceUseCase(
	store adapter.LedgerStore,
	lock adapter.CloseLock,
	clock adapter.Clock,
	notifier adapter.CloseReportNotifier,
) *CloseDailyBalanceUseCase {
	return &CloseDailyBalanceUseCase{
		store:    store,
		lock:     lock,
		clock:    clock,
		notifier: notifier,
	}
}

// Execute performs the close. It fails with ErrAlreadyClosed when the
// existing record is closed; no writes happen in that case.
func (uc *CloseDailyBalanceUseCase) Execute(ctx context.Context, input CloseDailyBalanceInput) (*entity.DailyBalance, error) {
	return performClose(ctx, closeDeps{
		store:    uc.store,
		lock:     uc.lock,
		clock:    uc.clock,
		notifier: uc.notifier,
	}, input, true)
}

// closeDeps bundles the collaborators shared by close and auto-close.
type closeDeps struct {
	store    adapter.LedgerStore
	lock     adapter.CloseLock
	clock    adapter.Clock
	notifier adapter.CloseReportNotifier
}

// performClose is the single implementation behind close and auto-close.
// enforceGuard distinguishes the interactive close (fails on a closed day)
// from the trusted auto-close (upserts over whatever is there).
func performClose(ctx context.Context, deps closeDeps, input CloseDailyBalanceInput, enforceGuard bool) (*entity.DailyBalance, error) {
	date := entity.DateOf(input.Date)

	release, err := deps.lock.Acquire(ctx, input.AccountID, date)
	if err != nil {
		if errors.Is(err, domainerror.ErrCloseInProgress) {
			return nil, domainerror.NewDailyBalanceError(
				domainerror.ErrCodeCloseInProgress,
				"another close is in progress for this account and date",
				domainerror.ErrCloseInProgress,
			)
		}
		return nil, fmt.Errorf("failed to acquire close lock: %w", err)
	}
	defer release()

	var record *entity.DailyBalance
	var accountName string

	err = deps.store.Atomically(ctx, func(s adapter.LedgerStore) error {
		account, err := s.GetAccountForUpdate(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, domainerror.ErrAccountNotFound) {
				return domainerror.NewLedgerError(
					domainerror.ErrCodeAccountNotFound,
					"account not found",
					domainerror.ErrAccountNotFound,
				)
			}
			return fmt.Errorf("failed to load account: %w", err)
		}
		accountName = account.Name

		existing, err := s.FindDailyBalanceForUpdate(ctx, input.AccountID, date)
		if err != nil && !errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
			return fmt.Errorf("failed to load daily balance: %w", err)
		}

		if enforceGuard && existing != nil && existing.IsClosed {
			return domainerror.NewDailyBalanceError(
				domainerror.ErrCodeAlreadyClosed,
				"daily balance is already closed",
				domainerror.ErrAlreadyClosed,
			)
		}

		calc, err := calculate(ctx, s, input.AccountID, date)
		if err != nil {
			return err
		}

		reconciliation := Reconcile(calc, input.ActualBalance)

		now := deps.clock.Now()
		actor := input.ActorID

		record = &entity.DailyBalance{
			AccountID:        input.AccountID,
			BalanceDate:      date,
			OpeningBalance:   calc.OpeningBalance,
			ClosingBalance:   calc.ClosingBalance,
			ActualBalance:    input.ActualBalance,
			TotalDeposits:    calc.TotalDeposits,
			TotalWithdrawals: calc.TotalWithdrawals,
			TotalExpenses:    calc.TotalExpenses,
			TotalTransfers:   calc.TotalTransfers,
			UnknownDeposits:  reconciliation.UnknownDeposits,
			Profit:           reconciliation.Profit,
			TransactionCount: calc.TransactionCount,
			IsClosed:         true,
			ClosedBy:         &actor,
			ClosedAt:         &now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if existing != nil {
			record.CreatedAt = existing.CreatedAt
		}

		if err := s.UpsertDailyBalance(ctx, record); err != nil {
			return fmt.Errorf("failed to upsert daily balance: %w", err)
		}

		// Closing a day pins the account to the verified figure.
		if err := s.UpdateAccountBalance(ctx, input.AccountID, input.ActualBalance); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	queueCloseReport(ctx, deps.notifier, accountName, record)

	return record, nil
}

// queueCloseReport enqueues the operator notification for a closed day.
// Best effort: a queue failure is logged and never fails the close.
func queueCloseReport(ctx context.Context, notifier adapter.CloseReportNotifier, accountName string, record *entity.DailyBalance) {
	if notifier == nil {
		return
	}

	closedBy := ""
	if record.ClosedBy != nil {
		closedBy = record.ClosedBy.String()
	}

	err := notifier.QueueCloseReport(ctx, adapter.CloseReportInput{
		AccountName:     accountName,
		BalanceDate:     record.BalanceDate,
		OpeningBalance:  record.OpeningBalance.String(),
		ClosingBalance:  record.ClosingBalance.String(),
		ActualBalance:   record.ActualBalance.String(),
		UnknownDeposits: record.UnknownDeposits.String(),
		Profit:          record.Profit.String(),
		ClosedBy:        closedBy,
	})
	if err != nil {
		slog.Warn("Failed to queue close report",
			"accountID", record.AccountID,
			"date", record.BalanceDate.Format("2006-01-02"),
			"error", err,
		)
	}
}
