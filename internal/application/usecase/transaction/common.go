// Package transaction contains the transaction manager use cases: create,
// update, delete and bulk historical correction, including balance
// propagation, transfer pairing and reopen-on-edit.
package transaction

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

// applyDirection adjusts a balance by amount in the type's direction:
// deposits add, everything else subtracts.
func applyDirection(balance decimal.Decimal, txType entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType.IsInflow() {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// reopenIfClosed flips the (account, date) daily balance back to open if a
// closed record exists. A day that is open, or has no record, is left alone.
// Returns whether a reopen actually happened.
func reopenIfClosed(ctx context.Context, s adapter.LedgerStore, accountID uuid.UUID, date time.Time) (bool, error) {
	record, err := s.FindDailyBalanceForUpdate(ctx, accountID, entity.DateOf(date))
	if err != nil {
		if errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load daily balance: %w", err)
	}

	if !record.IsClosed {
		return false, nil
	}

	record.Reopen()
	if err := s.UpsertDailyBalance(ctx, record); err != nil {
		return false, fmt.Errorf("failed to reopen daily balance: %w", err)
	}

	return true, nil
}

// validateAmount rejects zero and negative amounts; direction is always
// carried by the type, never by a sign.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}
