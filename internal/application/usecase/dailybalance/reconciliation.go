// Package dailybalance contains the daily balance calculator, the
// close/reopen state machine and the reconciliation arithmetic.
package dailybalance

import "github.com/shopspring/decimal"

// ReconciliationResult holds the figures derived from a day's recorded flows
// and the externally verified actual balance.
type ReconciliationResult struct {
	TotalOutflow     decimal.Decimal
	BalanceChange    decimal.Decimal
	TotalAllDeposits decimal.Decimal
	UnknownDeposits  decimal.Decimal
	Profit           decimal.Decimal
}

// Reconcile reconstructs the total inflow implied by the verified ending
// balance and splits out the inflow unexplained by recorded deposits.
//
// The identity, including sign conventions, is a fixed domain contract:
//
//	totalOutflow     = withdrawals + expenses + transfers
//	balanceChange    = actual − opening
//	totalAllDeposits = totalOutflow + balanceChange
//	unknownDeposits  = totalAllDeposits − recorded deposits
//	profit           = unknownDeposits − (withdrawals + expenses)
func Reconcile(calc *Calculation, actualBalance decimal.Decimal) ReconciliationResult {
	totalOutflow := calc.TotalWithdrawals.Add(calc.TotalExpenses).Add(calc.TotalTransfers)
	balanceChange := actualBalance.Sub(calc.OpeningBalance)
	totalAllDeposits := totalOutflow.Add(balanceChange)
	unknownDeposits := totalAllDeposits.Sub(calc.TotalDeposits)
	profit := unknownDeposits.Sub(calc.TotalWithdrawals.Add(calc.TotalExpenses))

	return ReconciliationResult{
		TotalOutflow:     totalOutflow,
		BalanceChange:    balanceChange,
		TotalAllDeposits: totalAllDeposits,
		UnknownDeposits:  unknownDeposits,
		Profit:           profit,
	}
}
