package dailybalance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name            string
		opening         int64
		deposits        int64
		withdrawals     int64
		expenses        int64
		transfers       int64
		actual          int64
		wantOutflow     int64
		wantChange      int64
		wantAllDeposits int64
		wantUnknown     int64
		wantProfit      int64
	}{
		{
			name:    "verified balance above recorded flows",
			opening: 1000, deposits: 300, withdrawals: 100, expenses: 50,
			actual:      2000,
			wantOutflow: 150, wantChange: 1000, wantAllDeposits: 1150,
			wantUnknown: 850, wantProfit: 700,
		},
		{
			name:    "actual matches derived closing exactly",
			opening: 1000, deposits: 300, withdrawals: 100, expenses: 50,
			actual:      1150,
			wantOutflow: 150, wantChange: 150, wantAllDeposits: 300,
			wantUnknown: 0, wantProfit: -150,
		},
		{
			name:    "shortfall yields negative unknown deposits",
			opening: 500, deposits: 200, withdrawals: 0, expenses: 100,
			actual:      400,
			wantOutflow: 100, wantChange: -100, wantAllDeposits: 0,
			wantUnknown: -200, wantProfit: -300,
		},
		{
			name:    "transfers count as outflow but not against profit",
			opening: 1000, deposits: 0, withdrawals: 0, expenses: 0, transfers: 400,
			actual:      600,
			wantOutflow: 400, wantChange: -400, wantAllDeposits: 0,
			wantUnknown: 0, wantProfit: 0,
		},
		{
			name:   "empty day",
			actual: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := &Calculation{
				OpeningBalance:   d(tt.opening),
				TotalDeposits:    d(tt.deposits),
				TotalWithdrawals: d(tt.withdrawals),
				TotalExpenses:    d(tt.expenses),
				TotalTransfers:   d(tt.transfers),
			}

			got := Reconcile(calc, d(tt.actual))

			if !got.TotalOutflow.Equal(d(tt.wantOutflow)) {
				t.Errorf("TotalOutflow = %s, want %d", got.TotalOutflow, tt.wantOutflow)
			}
			if !got.BalanceChange.Equal(d(tt.wantChange)) {
				t.Errorf("BalanceChange = %s, want %d", got.BalanceChange, tt.wantChange)
			}
			if !got.TotalAllDeposits.Equal(d(tt.wantAllDeposits)) {
				t.Errorf("TotalAllDeposits = %s, want %d", got.TotalAllDeposits, tt.wantAllDeposits)
			}
			if !got.UnknownDeposits.Equal(d(tt.wantUnknown)) {
				t.Errorf("UnknownDeposits = %s, want %d", got.UnknownDeposits, tt.wantUnknown)
			}
			if !got.Profit.Equal(d(tt.wantProfit)) {
				t.Errorf("Profit = %s, want %d", got.Profit, tt.wantProfit)
			}
		})
	}
}

func TestReconcile_IdentityHolds(t *testing.T) {
	// unknownDeposits + recorded deposits - outflow must equal the balance change.
	calc := &Calculation{
		OpeningBalance:   d(1234),
		TotalDeposits:    d(567),
		TotalWithdrawals: d(89),
		TotalExpenses:    d(12),
		TotalTransfers:   d(345),
	}
	actual := d(2001)

	got := Reconcile(calc, actual)

	lhs := got.UnknownDeposits.Add(calc.TotalDeposits).Sub(got.TotalOutflow)
	rhs := actual.Sub(calc.OpeningBalance)
	if !lhs.Equal(rhs) {
		t.Errorf("identity violated: %s != %s", lhs, rhs)
	}
}
