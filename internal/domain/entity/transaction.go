// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger transaction.
// The amount is always stored positive; the type determines the direction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// IsValidTransactionType reports whether t is one of the known types.
func IsValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// IsInflow reports whether the type increases the account balance.
// Only deposits add; withdrawals, expenses and the debited side of a
// transfer all subtract.
func (t TransactionType) IsInflow() bool {
	return t == TransactionTypeDeposit
}

// Transaction represents a single monetary movement against an account.
type Transaction struct {
	ID                  uuid.UUID
	AccountID           uuid.UUID
	Date                time.Time // calendar date, UTC midnight
	Time                string    // wall-clock time of day, "15:04:05"
	Type                TransactionType
	Amount              decimal.Decimal // always positive
	BalanceAfter        decimal.Decimal // account balance snapshot at creation
	CategoryID          *uuid.UUID
	Note                string
	ReferenceNumber     string
	PairedTransactionID *uuid.UUID // transfers only, points at the mirrored leg
	CreatedBy           uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewTransaction creates a new Transaction entity with a generated id and
// reference number. The date is normalized to UTC midnight.
func NewTransaction(
	accountID uuid.UUID,
	date time.Time,
	timeOfDay string,
	txType TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	categoryID *uuid.UUID,
	note string,
	createdBy uuid.UUID,
) *Transaction {
	return NewTransactionWithID(uuid.New(), accountID, date, timeOfDay, txType, amount, balanceAfter, categoryID, note, createdBy)
}

// NewTransactionWithID is NewTransaction with a caller-supplied id. Transfer
// legs use it so both rows carry their mutual references from creation.
func NewTransactionWithID(
	id uuid.UUID,
	accountID uuid.UUID,
	date time.Time,
	timeOfDay string,
	txType TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	categoryID *uuid.UUID,
	note string,
	createdBy uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:              id,
		AccountID:       accountID,
		Date:            DateOf(date),
		Time:            timeOfDay,
		Type:            txType,
		Amount:          amount,
		BalanceAfter:    balanceAfter,
		CategoryID:      categoryID,
		Note:            note,
		ReferenceNumber: referenceNumber(date, id),
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsTransferLeg reports whether the transaction belongs to a transfer pair.
func (t *Transaction) IsTransferLeg() bool {
	return t.PairedTransactionID != nil
}

// DateOf truncates a timestamp to its calendar date at UTC midnight.
// All date comparisons in the ledger go through this normalization.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// referenceNumber builds a human-readable reference like TXN-20240110-1a2b3c4d.
func referenceNumber(date time.Time, id uuid.UUID) string {
	short := id.String()[:8]
	return fmt.Sprintf("TXN-%s-%s", date.UTC().Format("20060102"), short)
}
