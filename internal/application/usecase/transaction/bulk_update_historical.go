// Package transaction contains the transaction manager use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/adapter"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// BulkHistoricalUpdate is one field correction inside a bulk run.
type BulkHistoricalUpdate struct {
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Note          *string
	CategoryID    *uuid.UUID
}

// BulkUpdateHistoricalInput represents the input for a bulk correction.
type BulkUpdateHistoricalInput struct {
	Updates []BulkHistoricalUpdate
	ActorID uuid.UUID
}

// BulkUpdateHistoricalOutput reports what a bulk correction touched.
type BulkUpdateHistoricalOutput struct {
	UpdatedCount     int
	AffectedDates    []string
	AffectedAccounts []uuid.UUID
}

// BulkUpdateHistoricalUseCase applies a batch of field corrections without
// touching any account balance, then reopens every closed day among the
// touched (account, date) pairs, all in one atomic unit. Intended for batch
// correction followed by a manual reclose pass.
type BulkUpdateHistoricalUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewBulkUpdateHistoricalUseCase creates a new BulkUpdateHistoricalUseCase instance.
func NewBulkUpdateHistoricalUseCase(store adapter.LedgerStore, clock adapter.Clock) *BulkUpdateHistoricalUseCase {
	return &BulkUpdateHistoricalUseCase{
		store: store,
		clock: clock,
	}
}

// Execute performs the bulk correction.
func (uc *BulkUpdateHistoricalUseCase) Execute(ctx context.Context, input BulkUpdateHistoricalInput) (*BulkUpdateHistoricalOutput, error) {
	if len(input.Updates) == 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeEmptyBulkUpdate,
			"bulk update list cannot be empty",
			domainerror.ErrEmptyBulkUpdate,
		)
	}

	for _, update := range input.Updates {
		if update.Amount != nil {
			if err := validateAmount(*update.Amount); err != nil {
				return nil, err
			}
		}
	}

	type dayKey struct {
		accountID uuid.UUID
		date      time.Time
	}

	output := &BulkUpdateHistoricalOutput{}

	err := uc.store.Atomically(ctx, func(s adapter.LedgerStore) error {
		touched := make(map[dayKey]struct{})
		now := uc.clock.Now()

		for _, update := range input.Updates {
			tx, err := s.GetTransaction(ctx, update.TransactionID)
			if err != nil {
				if errors.Is(err, domainerror.ErrTransactionNotFound) {
					return domainerror.NewLedgerError(
						domainerror.ErrCodeTransactionNotFound,
						"transaction not found: "+update.TransactionID.String(),
						domainerror.ErrTransactionNotFound,
					)
				}
				return fmt.Errorf("failed to load transaction: %w", err)
			}

			if update.Amount != nil {
				tx.Amount = *update.Amount
			}
			if update.Note != nil {
				tx.Note = *update.Note
			}
			if update.CategoryID != nil {
				tx.CategoryID = update.CategoryID
			}
			tx.UpdatedAt = now

			if err := s.UpdateTransaction(ctx, tx); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			touched[dayKey{accountID: tx.AccountID, date: tx.Date}] = struct{}{}
			output.UpdatedCount++
		}

		dates := make(map[string]struct{})
		accounts := make(map[uuid.UUID]struct{})

		for key := range touched {
			if _, err := reopenIfClosed(ctx, s, key.accountID, key.date); err != nil {
				return err
			}
			dates[key.date.Format("2006-01-02")] = struct{}{}
			accounts[key.accountID] = struct{}{}
		}

		for date := range dates {
			output.AffectedDates = append(output.AffectedDates, date)
		}
		for accountID := range accounts {
			output.AffectedAccounts = append(output.AffectedAccounts, accountID)
		}
		sort.Strings(output.AffectedDates)
		sort.Slice(output.AffectedAccounts, func(i, j int) bool {
			return output.AffectedAccounts[i].String() < output.AffectedAccounts[j].String()
		})

		correction := &adapter.BulkCorrection{
			ID:               uuid.New(),
			ActorID:          input.ActorID,
			UpdatedCount:     output.UpdatedCount,
			AffectedDates:    output.AffectedDates,
			AffectedAccounts: output.AffectedAccounts,
			CreatedAt:        now,
		}
		if err := s.RecordBulkCorrection(ctx, correction); err != nil {
			return fmt.Errorf("failed to record bulk correction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
