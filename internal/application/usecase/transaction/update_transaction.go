// Package transaction contains the transaction manager use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update. Only
// amount, note and category are amendable; date, time and type are fixed at
// creation.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Note          *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	ActorID       uuid.UUID
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction          *entity.Transaction
	IsHistoricalUpdate   bool
	ReopenedDailyBalance bool
}

// UpdateTransactionUseCase amends a transaction. An amount change on a
// today-dated row moves the account balance by the delta; on a historical
// row only the transaction itself changes and the next close of that date
// reconciles the account.
type UpdateTransactionUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(store adapter.LedgerStore, clock adapter.Clock) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		store: store,
		clock: clock,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	today := uc.clock.Today()
	output := &UpdateTransactionOutput{}

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

		output.IsHistoricalUpdate = tx.Date.Before(today)

		reopened, err := reopenIfClosed(ctx, s, tx.AccountID, tx.Date)
		if err != nil {
			return err
		}
		output.ReopenedDailyBalance = reopened

		if input.Amount != nil && !tx.Amount.Equal(*input.Amount) {
			if err := uc.applyAmountChange(ctx, s, tx, *input.Amount, output.IsHistoricalUpdate); err != nil {
				return err
			}
			tx.Amount = *input.Amount
		}

		if input.Note != nil {
			tx.Note = *input.Note
		}

		if input.ClearCategory {
			tx.CategoryID = nil
		} else if input.CategoryID != nil {
			tx.CategoryID = input.CategoryID
		}

		tx.UpdatedAt = uc.clock.Now()

		if err := s.UpdateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		output.Transaction = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// applyAmountChange moves the account balance by the amount delta for
// today-dated rows. Historical rows deliberately leave the balance alone.
func (uc *UpdateTransactionUseCase) applyAmountChange(
	ctx context.Context,
	s adapter.LedgerStore,
	tx *entity.Transaction,
	newAmount decimal.Decimal,
	isHistorical bool,
) error {
	if isHistorical {
		return nil
	}

	account, err := s.GetAccountForUpdate(ctx, tx.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	delta := newAmount.Sub(tx.Amount)
	newBalance := applyDirection(account.CurrentBalance, tx.Type, delta)

	if newBalance.IsNegative() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInsufficientBalance,
			"amount change would drive the account balance negative",
			domainerror.ErrInsufficientBalance,
		)
	}

	if err := s.UpdateAccountBalance(ctx, tx.AccountID, newBalance); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	return nil
}
