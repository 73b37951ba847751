// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/domain/entity"
)

// BulkCorrection is the audit record persisted for each bulk historical
// update run: who ran it, what it touched, how many rows changed.
type BulkCorrection struct {
	ID               uuid.UUID
	ActorID          uuid.UUID
	UpdatedCount     int
	AffectedDates    []string // YYYY-MM-DD
	AffectedAccounts []uuid.UUID
	CreatedAt        time.Time
}

// LedgerStore is the persistence contract for accounts, transactions and
// daily balance records.
//
// Every multi-step mutation in the engine runs through Atomically: all reads
// and writes inside the callback observe a consistent snapshot and commit
// together, or none commit. Implementations must serialize the
// read-modify-write of an account's balance (GetAccountForUpdate takes a row
// lock where the backend supports it) so concurrent postings to the same
// account cannot lose updates.
type LedgerStore interface {
	// GetAccount retrieves an account by id. Returns ErrAccountNotFound.
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// GetAccountForUpdate retrieves an account and, inside an atomic unit,
	// locks its row against concurrent writers.
	GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// UpdateAccountBalance sets the account's current balance.
	UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// RecordTransaction inserts a new transaction row.
	RecordTransaction(ctx context.Context, tx *entity.Transaction) error

	// GetTransaction retrieves a transaction by id. Returns ErrTransactionNotFound.
	GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// UpdateTransaction saves changes to an existing transaction row.
	UpdateTransaction(ctx context.Context, tx *entity.Transaction) error

	// DeleteTransaction hard-deletes a transaction row.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// TransactionsForDate returns an account's transactions for one calendar
	// date, ordered by time of day ascending.
	TransactionsForDate(ctx context.Context, accountID uuid.UUID, date time.Time) ([]*entity.Transaction, error)

	// FindDailyBalance retrieves the record for the (account, date) key.
	// Returns ErrDailyBalanceNotFound when no record exists.
	FindDailyBalance(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error)

	// FindDailyBalanceForUpdate is FindDailyBalance with a row lock inside an
	// atomic unit, guarding the closure flag against a concurrent close.
	FindDailyBalanceForUpdate(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error)

	// UpsertDailyBalance inserts or replaces the record for its (account, date) key.
	UpsertDailyBalance(ctx context.Context, record *entity.DailyBalance) error

	// RecordBulkCorrection persists the audit row for a bulk historical update.
	RecordBulkCorrection(ctx context.Context, correction *BulkCorrection) error

	// Atomically runs fn against a store view bound to a single transaction.
	// If fn returns an error, every write made through that view rolls back.
	Atomically(ctx context.Context, fn func(store LedgerStore) error) error
}
