package dailybalance

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// fakeStore is an in-memory LedgerStore for usecase tests. Atomically runs
// the callback against the same maps; rollback is not simulated.
type fakeStore struct {
	accounts      map[uuid.UUID]*entity.Account
	transactions  map[uuid.UUID]*entity.Transaction
	dailyBalances map[string]*entity.DailyBalance
	corrections   []*adapter.BulkCorrection
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      make(map[uuid.UUID]*entity.Account),
		transactions:  make(map[uuid.UUID]*entity.Transaction),
		dailyBalances: make(map[string]*entity.DailyBalance),
	}
}

func dbKey(accountID uuid.UUID, date time.Time) string {
	return accountID.String() + "|" + entity.DateOf(date).Format("2006-01-02")
}

func (f *fakeStore) addAccount(name string, balance decimal.Decimal) *entity.Account {
	account := entity.NewAccount(uuid.New(), name)
	account.CurrentBalance = balance
	f.accounts[account.ID] = account
	return account
}

func (f *fakeStore) addTransaction(accountID uuid.UUID, date time.Time, timeOfDay string, txType entity.TransactionType, amount int64) *entity.Transaction {
	tx := entity.NewTransaction(accountID, date, timeOfDay, txType,
		decimal.NewFromInt(amount), decimal.Zero, nil, "", uuid.New())
	f.transactions[tx.ID] = tx
	return tx
}

func (f *fakeStore) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeStore) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return f.GetAccount(ctx, id)
}

func (f *fakeStore) UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	account, ok := f.accounts[id]
	if !ok {
		return domainerror.ErrAccountNotFound
	}
	account.CurrentBalance = balance
	return nil
}

func (f *fakeStore) RecordTransaction(ctx context.Context, tx *entity.Transaction) error {
	copied := *tx
	f.transactions[tx.ID] = &copied
	return nil
}

func (f *fakeStore) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (f *fakeStore) UpdateTransaction(ctx context.Context, tx *entity.Transaction) error {
	if _, ok := f.transactions[tx.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	copied := *tx
	f.transactions[tx.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.transactions[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeStore) TransactionsForDate(ctx context.Context, accountID uuid.UUID, date time.Time) ([]*entity.Transaction, error) {
	date = entity.DateOf(date)
	var result []*entity.Transaction
	for _, tx := range f.transactions {
		if tx.AccountID == accountID && tx.Date.Equal(date) {
			copied := *tx
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Time < result[j].Time })
	return result, nil
}

func (f *fakeStore) FindDailyBalance(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error) {
	record, ok := f.dailyBalances[dbKey(accountID, date)]
	if !ok {
		return nil, domainerror.ErrDailyBalanceNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeStore) FindDailyBalanceForUpdate(ctx context.Context, accountID uuid.UUID, date time.Time) (*entity.DailyBalance, error) {
	return f.FindDailyBalance(ctx, accountID, date)
}

func (f *fakeStore) UpsertDailyBalance(ctx context.Context, record *entity.DailyBalance) error {
	copied := *record
	f.dailyBalances[dbKey(record.AccountID, record.BalanceDate)] = &copied
	return nil
}

func (f *fakeStore) RecordBulkCorrection(ctx context.Context, correction *adapter.BulkCorrection) error {
	f.corrections = append(f.corrections, correction)
	return nil
}

func (f *fakeStore) Atomically(ctx context.Context, fn func(store adapter.LedgerStore) error) error {
	return fn(f)
}

// fixedClock pins the processing date for deterministic tests.
type fixedClock struct {
	today time.Time
}

func (c fixedClock) Now() time.Time   { return c.today.Add(10 * time.Hour) }
func (c fixedClock) Today() time.Time { return entity.DateOf(c.today) }

// spyLock records acquisitions and optionally refuses them.
type spyLock struct {
	acquired int
	released int
	deny     bool
}

func (l *spyLock) Acquire(ctx context.Context, accountID uuid.UUID, date time.Time) (func(), error) {
	if l.deny {
		return nil, domainerror.ErrCloseInProgress
	}
	l.acquired++
	return func() { l.released++ }, nil
}

// spyNotifier records queued close reports.
type spyNotifier struct {
	reports []adapter.CloseReportInput
	fail    error
}

func (n *spyNotifier) QueueCloseReport(ctx context.Context, input adapter.CloseReportInput) error {
	if n.fail != nil {
		return n.fail
	}
	n.reports = append(n.reports, input)
	return nil
}
