// Package dailybalance contains the daily balance calculator, the
// close/reopen state machine and the reconciliation arithmetic.
package dailybalance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// ReopenDailyBalanceInput represents the input for reopening a closed day.
type ReopenDailyBalanceInput struct {
	AccountID uuid.UUID
	Date      time.Time
	ActorID   uuid.UUID
}

// ReopenDailyBalanceUseCase reverts a closed day to the editable state. The
// stored totals stay as a stale snapshot until the next close recomputes
// them, and the account's current balance is not touched.
type ReopenDailyBalanceUseCase struct {
	store adapter.LedgerStore
}

// NewReopenDailyBalanceUseCase creates a new ReopenDailyBalanceUseCase instance.
func NewReopenDailyBalanceUseCase(store adapter.LedgerStore) *ReopenDailyBalanceUseCase {
	return &ReopenDailyBalanceUseCase{
		store: store,
	}
}

// Execute performs the reopen. It fails with ErrNotClosed when no record
// exists or the record is already open.
func (uc *ReopenDailyBalanceUseCase) Execute(ctx context.Context, input ReopenDailyBalanceInput) error {
	date := entity.DateOf(input.Date)

	return uc.store.Atomically(ctx, func(s adapter.LedgerStore) error {
		record, err := s.FindDailyBalanceForUpdate(ctx, input.AccountID, date)
		if err != nil {
			if errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
				return domainerror.NewDailyBalanceError(
					domainerror.ErrCodeNotClosed,
					"no daily balance record exists for this date",
					domainerror.ErrNotClosed,
				)
			}
			return fmt.Errorf("failed to load daily balance: %w", err)
		}

		if !record.IsClosed {
			return domainerror.NewDailyBalanceError(
				domainerror.ErrCodeNotClosed,
				"daily balance is already open",
				domainerror.ErrNotClosed,
			)
		}

		record.Reopen()

		if err := s.UpsertDailyBalance(ctx, record); err != nil {
			return fmt.Errorf("failed to reopen daily balance: %w", err)
		}

		return nil
	})
}
