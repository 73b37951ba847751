// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/persistence/model"
)

// ledgerStore implements the adapter.LedgerStore interface on top of gorm.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store instance.
func NewLedgerStore(db *gorm.DB) adapter.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

// Atomically runs fn against a store view bound to a single database
// transaction. Any error from fn rolls back every write made inside it.
func (s *ledgerStore) Atomically(ctx context.Context, fn func(store adapter.LedgerStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerStore{db: tx})
	})
}

// lockingClause returns a FOR UPDATE clause on backends that support row
// locks. SQLite serializes writers on its own, so the clause is skipped there.
func (s *ledgerStore) lockingClause() []clause.Expression {
	if s.db.Dialector.Name() == "postgres" {
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
	return nil
}

// GetAccount retrieves an account by its ID.
func (s *ledgerStore) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// GetAccountForUpdate retrieves an account and locks its row against
// concurrent writers for the remainder of the enclosing transaction.
func (s *ledgerStore) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := s.db.WithContext(ctx).
		Clauses(s.lockingClause()...).
		Where("id = ?", id).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// UpdateAccountBalance sets the account's current balance.
func (s *ledgerStore) UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	result := s.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_balance": balance,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// RecordTransaction inserts a new transaction row.
func (s *ledgerStore) RecordTransaction(ctx context.Context, tx *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(tx)
	result := s.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetTransaction retrieves a transaction by its ID.
func (s *ledgerStore) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// UpdateTransaction saves changes to an existing transaction row.
func (s *ledgerStore) UpdateTransaction(ctx context.Context, tx *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(tx)
	result := s.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteTransaction hard-deletes a transaction row.
func (s *ledgerStore) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// TransactionsForDate returns an account's transactions for one calendar
// date, ordered by time of day ascending.
func (s *ledgerStore) TransactionsForDate(ctx context.Context, accountID uuid.UUID, date time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := s.db.WithContext(ctx).
		Where("account_id = ? AND date = ?", accountID, entity.DateOf(date)).
		Order("time ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindDailyBalance retrieves the record for the (account, date) key.
func (s *ledgerStore) FindDailyBalance(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error) {
	var balanceModel model.DailyBalanceModel
	result := s.db.WithContext(ctx).
		Where("account_id = ? AND balance_date = ?", accountID, entity.DateOf(date)).
		First(&balanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDailyBalanceNotFound
		}
		return nil, result.Error
	}
	return balanceModel.ToEntity(), nil
}

// FindDailyBalanceForUpdate retrieves the record for the (account, date) key
// and locks its row, guarding the closure flag against a concurrent close.
func (s *ledgerStore) FindDailyBalanceForUpdate(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error) {
	var balanceModel model.DailyBalanceModel
	result := s.db.WithContext(ctx).
		Clauses(s.lockingClause()...).
		Where("account_id = ? AND balance_date = ?", accountID, entity.DateOf(date)).
		First(&balanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDailyBalanceNotFound
		}
		return nil, result.Error
	}
	return balanceModel.ToEntity(), nil
}

// UpsertDailyBalance inserts or replaces the record for its (account, date) key.
func (s *ledgerStore) UpsertDailyBalance(ctx context.Context, record *entity.DailyBalance) error {
	balanceModel := model.DailyBalanceFromEntity(record)
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "balance_date"}},
			UpdateAll: true,
		}).
		Create(balanceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// RecordBulkCorrection persists the audit row for a bulk historical update.
func (s *ledgerStore) RecordBulkCorrection(ctx context.Context, correction *adapter.BulkCorrection) error {
	correctionModel := model.BulkCorrectionFromAdapter(correction)
	result := s.db.WithContext(ctx).Create(correctionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
