// Package transaction contains the transaction manager use cases.
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
	"github.com/branchledger/backend/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date                time.Time
	Time                string
	Type                entity.TransactionType
	Amount              decimal.Decimal
	AccountID           uuid.UUID
	CategoryID          *uuid.UUID
	Note                string
	TransferToAccountID *uuid.UUID
	ActorID             uuid.UUID
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction          *entity.Transaction
	PairedTransaction    *entity.Transaction
	ReopenedDailyBalance bool
}

// CreateTransactionUseCase records a monetary movement against an account.
//
// The insert, the optional reopen of a closed day, the optional balance
// write (twice for transfers) and the paired leg all commit as one atomic
// unit. The current balance is only written when the transaction is dated
// today; historical rows are corrected later by re-closing their date.
type CreateTransactionUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(store adapter.LedgerStore, clock adapter.Clock) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		store: store,
		clock: clock,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !entity.IsValidTransactionType(input.Type) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be deposit, withdrawal, expense or transfer",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Type == entity.TransactionTypeTransfer && input.TransferToAccountID == nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingTransferDestination,
			"transfer requires a destination account",
			domainerror.ErrMissingTransferDestination,
		)
	}

	date := entity.DateOf(input.Date)
	isToday := date.Equal(uc.clock.Today())

	output := &CreateTransactionOutput{}

	err := uc.store.Atomically(ctx, func(s adapter.LedgerStore) error {
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

		newBalance := applyDirection(account.CurrentBalance, input.Type, input.Amount)

		reopened, err := reopenIfClosed(ctx, s, input.AccountID, date)
		if err != nil {
			return err
		}
		output.ReopenedDailyBalance = reopened

		if input.Type == entity.TransactionTypeTransfer {
			return uc.createTransferPair(ctx, s, input, date, isToday, newBalance, output)
		}

		tx := entity.NewTransaction(
			input.AccountID,
			date,
			input.Time,
			input.Type,
			input.Amount,
			newBalance,
			input.CategoryID,
			input.Note,
			input.ActorID,
		)

		if err := s.RecordTransaction(ctx, tx); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		if isToday {
			if err := s.UpdateAccountBalance(ctx, input.AccountID, newBalance); err != nil {
				return fmt.Errorf("failed to update account balance: %w", err)
			}
		}

		output.Transaction = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// createTransferPair writes both legs of a transfer. The pair's ids are
// allocated up front so each row carries its cross-reference from the start;
// both rows exist or neither does.
func (uc *CreateTransactionUseCase) createTransferPair(
	ctx context.Context,
	s adapter.LedgerStore,
	input CreateTransactionInput,
	date time.Time,
	isToday bool,
	sourceBalance decimal.Decimal,
	output *CreateTransactionOutput,
) error {
	destination, err := s.GetAccountForUpdate(ctx, *input.TransferToAccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeTargetAccountNotFound,
				"transfer destination account not found",
				domainerror.ErrTargetAccountNotFound,
			)
		}
		return fmt.Errorf("failed to load destination account: %w", err)
	}

	destinationBalance := destination.CurrentBalance.Add(input.Amount)

	reopenedDest, err := reopenIfClosed(ctx, s, destination.ID, date)
	if err != nil {
		return err
	}
	output.ReopenedDailyBalance = output.ReopenedDailyBalance || reopenedDest

	pair := valueobject.NewTransferPair()

	source := entity.NewTransactionWithID(
		pair.SourceTransactionID,
		input.AccountID,
		date,
		input.Time,
		entity.TransactionTypeTransfer,
		input.Amount,
		sourceBalance,
		input.CategoryID,
		input.Note,
		input.ActorID,
	)
	source.PairedTransactionID = &pair.DestinationTransactionID

	mirrored := entity.NewTransactionWithID(
		pair.DestinationTransactionID,
		destination.ID,
		date,
		input.Time,
		entity.TransactionTypeDeposit,
		input.Amount,
		destinationBalance,
		nil,
		input.Note,
		input.ActorID,
	)
	mirrored.PairedTransactionID = &pair.SourceTransactionID

	if err := s.RecordTransaction(ctx, source); err != nil {
		return fmt.Errorf("failed to record transfer source: %w", err)
	}
	if err := s.RecordTransaction(ctx, mirrored); err != nil {
		return fmt.Errorf("failed to record transfer destination: %w", err)
	}

	// The today/historical balance rule applies to each leg independently;
	// both legs share the same date, so both are written or neither is.
	if isToday {
		if err := s.UpdateAccountBalance(ctx, input.AccountID, sourceBalance); err != nil {
			return fmt.Errorf("failed to update source balance: %w", err)
		}
		if err := s.UpdateAccountBalance(ctx, destination.ID, destinationBalance); err != nil {
			return fmt.Errorf("failed to update destination balance: %w", err)
		}
	}

	output.Transaction = source
	output.PairedTransaction = mirrored
	return nil
}
