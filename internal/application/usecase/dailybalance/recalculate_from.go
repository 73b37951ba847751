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

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// RecalculateFromInput represents the input for a bulk reopen.
type RecalculateFromInput struct {
	AccountID uuid.UUID
	FromDate  time.Time
}

// RecalculateFromOutput reports how many calendar days were examined.
type RecalculateFromOutput struct {
	AffectedDayCount int
}

// RecalculateFromUseCase walks every date from fromDate through today and
// forces any closed record back to open. It recomputes no figures: the
// window is marked dirty and the operator re-closes day by day, in date
// order, so each corrected actualBalance feeds the next day's opening.
type RecalculateFromUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewRecalculateFromUseCase creates a new RecalculateFromUseCase instance.
func NewRecalculateFromUseCase(store adapter.LedgerStore, clock adapter.Clock) *RecalculateFromUseCase {
	return &RecalculateFromUseCase{
		store: store,
		clock: clock,
	}
}

// Execute performs the bulk reopen.
func (uc *RecalculateFromUseCase) Execute(ctx context.Context, input RecalculateFromInput) (*RecalculateFromOutput, error) {
	from := entity.DateOf(input.FromDate)
	today := uc.clock.Today()

	if from.After(today) {
		return nil, domainerror.NewDailyBalanceError(
			domainerror.ErrCodeInvalidDateRange,
			"from date cannot be in the future",
			nil,
		)
	}

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

	examined := 0
	reopened := 0

	err := uc.store.Atomically(ctx, func(s adapter.LedgerStore) error {
		for date := from; !date.After(today); date = date.AddDate(0, 0, 1) {
			examined++

			record, err := s.FindDailyBalanceForUpdate(ctx, input.AccountID, date)
			if err != nil {
				if errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
					continue
				}
				return fmt.Errorf("failed to load daily balance: %w", err)
			}

			if !record.IsClosed {
				continue
			}

			record.Reopen()
			if err := s.UpsertDailyBalance(ctx, record); err != nil {
				return fmt.Errorf("failed to reopen daily balance: %w", err)
			}
			reopened++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Recalculation window reopened",
		"accountID", input.AccountID,
		"from", from.Format("2006-01-02"),
		"daysExamined", examined,
		"daysReopened", reopened,
	)

	return &RecalculateFromOutput{AffectedDayCount: examined}, nil
}
