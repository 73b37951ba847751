// Package transaction contains the transaction manager use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	ActorID       uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	IsHistoricalDeletion bool
	ReopenedDailyBalance bool
}

// DeleteTransactionUseCase hard-deletes a transaction as the inverse of
// create: a today-dated row has its balance effect reversed, a historical
// row leaves the balance alone and reopens its day. Deleting either leg of
// a transfer removes both legs in the same atomic unit.
type DeleteTransactionUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(store adapter.LedgerStore, clock adapter.Clock) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		store: store,
		clock: clock,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	today := uc.clock.Today()
	output := &DeleteTransactionOutput{}

	err := uc.store.Atomically(ctx, func(s adapter.LedgerStore) error {
		tx, err := s.GetTransaction(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return domainerror.NewLedgerError(
					domainerror.ErrCodeTransactionNotFound,
					"transaction not found",
					domainerror.ErrTransactionNotFound,
				)
			}
			return fmt.Errorf("failed to load transaction: %w", err)
		}

		output.IsHistoricalDeletion = tx.Date.Before(today)

		reopened, err := uc.removeLeg(ctx, s, tx, !output.IsHistoricalDeletion)
		if err != nil {
			return err
		}
		output.ReopenedDailyBalance = reopened

		if tx.PairedTransactionID != nil {
			pair, err := s.GetTransaction(ctx, *tx.PairedTransactionID)
			if err != nil {
				return fmt.Errorf("failed to load paired transfer leg: %w", err)
			}

			reopenedPair, err := uc.removeLeg(ctx, s, pair, !pair.Date.Before(today))
			if err != nil {
				return err
			}
			output.ReopenedDailyBalance = output.ReopenedDailyBalance || reopenedPair
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// removeLeg reverses one row's balance effect (today-dated rows only),
// reopens its day if closed, and deletes the row.
func (uc *DeleteTransactionUseCase) removeLeg(
	ctx context.Context,
	s adapter.LedgerStore,
	tx *entity.Transaction,
	reverseBalance bool,
) (bool, error) {
	if reverseBalance {
		account, err := s.GetAccountForUpdate(ctx, tx.AccountID)
		if err != nil {
			return false, fmt.Errorf("failed to load account: %w", err)
		}

		// Reversal flips the original direction.
		reversed := account.CurrentBalance
		if tx.Type.IsInflow() {
			reversed = reversed.Sub(tx.Amount)
		} else {
			reversed = reversed.Add(tx.Amount)
		}

		if reversed.IsNegative() {
			return false, domainerror.NewLedgerError(
				domainerror.ErrCodeInsufficientBalance,
				"deletion would drive the account balance negative",
				domainerror.ErrInsufficientBalance,
			)
		}

		if err := s.UpdateAccountBalance(ctx, tx.AccountID, reversed); err != nil {
			return false, fmt.Errorf("failed to update account balance: %w", err)
		}
	}

	reopened, err := reopenIfClosed(ctx, s, tx.AccountID, tx.Date)
	if err != nil {
		return false, err
	}

	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return reopened, nil
}
