// Package dailybalance contains the daily balance calculator, the
// close/reopen state machine and the reconciliation arithmetic.
package dailybalance

import (
	"context"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
)

// AutoCloseDailyBalanceUseCase is the trusted variant of close: same
// computation and side effects, but upsert semantics without the
// already-closed guard. Repeat calls overwrite the previous figures.
//
// Intended only for system callers; the boundary must gate interactive use
// behind additional authorization.
type AutoCloseDailyBalanceUseCase struct {
	store    adapter.LedgerStore
	lock     adapter.CloseLock
	clock    adapter.Clock
	notifier adapter.CloseReportNotifier
}

// NewAutoCloseDailyBalanceUseCase creates a new AutoCloseDailyBalanceUseCase instance.
func NewAutoCloseDailyBalanceUseCase(
	store adapter.LedgerStore,
	lock adapter.CloseLock,
	clock adapter.Clock,
	notifier adapter.CloseReportNotifier,
) *AutoCloseDailyBalanceUseCase {
	return &AutoCloseDailyBalanceUseCase{
		store:    store,
		lock:     lock,
		clock:    clock,
		notifier: notifier,
	}
}

// Execute performs the auto-close.
func (uc *AutoCloseDailyBalanceUseCase) Execute(ctx context.Context, input CloseDailyBalanceInput) (*entity.DailyBalance, error) {
	return performClose(ctx, closeDeps{
		store:    uc.store,
		lock:     uc.lock,
		clock:    uc.clock,
		notifier: uc.notifier,
	}, input, false)
}
