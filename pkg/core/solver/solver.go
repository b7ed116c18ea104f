// Package solver resolves the mutual dependency between cash balance, debt
// balance, interest expense/income and zakat within a single year.
//
// Interest accrues on the debt balance; debt is the plug absorbing whatever
// shortfall remains after operations, investing and the minimum-cash floor;
// the shortfall depends on net income, which is reduced by interest and zakat,
// which depends on pre-tax income, which depends on interest. The minimum-cash
// floor and the issue/repay branches make the relationship piecewise, so there
// is no closed form; the loop below is a damped fixed-point iteration with an
// explicit convergence predicate. Relaxation damps the oscillation that naive
// iteration exhibits at certain debt magnitudes.
package solver

import (
	"log"

	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
)

// Solve iterates the year to a fixed point and returns the financing result.
// On non-convergence the last iterate's values are still returned with
// Converged=false; the caller surfaces the warning, never swallows it.
func Solve(draft statements.Draft, opening statements.OpeningState, sys config.SystemConfiguration, tune config.SolverTuning) statements.CircularSolverResult {
	ebitda := draft.EBITDA()
	depreciation := draft.Depreciation

	// Working-capital delta in cash flow sign convention. It does not depend
	// on the solver's own outputs, so it is fixed across iterations.
	wcDelta := money.Sum(
		draft.AccountsReceivable.Sub(opening.AccountsReceivable).Neg(),
		draft.Prepaid.Sub(opening.Prepaid).Neg(),
		draft.AccountsPayable.Sub(opening.AccountsPayable),
		draft.AccruedLiabilities.Sub(opening.AccruedLiabilities),
		draft.DeferredRevenue.Sub(opening.DeferredRevenue),
	)

	interestExpense := money.Zero()
	interestIncome := money.Zero()

	lastCash := opening.Cash
	lastDebt := opening.DebtBalance

	var result statements.CircularSolverResult

	for i := 1; i <= tune.MaxIterations; i++ {
		ebt := ebitda.Sub(depreciation).Sub(interestExpense).Add(interestIncome)
		zakat := money.Floor0(ebt).Mul(sys.ZakatRate)
		netIncome := ebt.Sub(zakat)

		// Cash position before any financing action.
		cashBeforeFinancing := money.Sum(opening.Cash, netIncome, depreciation, wcDelta, draft.CapExSpend.Neg())

		var issuance, repayment, debt, endingCash money.Amount
		if cashBeforeFinancing.LessThan(sys.MinCashBalance) {
			// Shortfall below the floor is financed by new debt.
			issuance = sys.MinCashBalance.Sub(cashBeforeFinancing)
			repayment = money.Zero()
			debt = opening.DebtBalance.Add(issuance)
			endingCash = sys.MinCashBalance
		} else {
			// Surplus repays debt first, never past zero; the rest is cash.
			surplus := cashBeforeFinancing.Sub(sys.MinCashBalance)
			issuance = money.Zero()
			repayment = money.Min(opening.DebtBalance, surplus)
			debt = opening.DebtBalance.Sub(repayment)
			endingCash = cashBeforeFinancing.Sub(repayment)
		}

		result = statements.CircularSolverResult{
			Iterations:      i,
			InterestExpense: interestExpense,
			InterestIncome:  interestIncome,
			Zakat:           zakat,
			EBT:             ebt,
			NetIncome:       netIncome,
			DebtBalance:     debt,
			EndingCash:      endingCash,
			DebtIssuance:    issuance,
			DebtRepayment:   repayment,
		}

		if i > 1 &&
			endingCash.WithinTolerance(lastCash, tune.ConvergenceTolerance) &&
			debt.WithinTolerance(lastDebt, tune.ConvergenceTolerance) {
			result.Converged = true
			return result
		}
		lastCash = endingCash
		lastDebt = debt

		// Recompute interest on the new balances; income accrues only on
		// cash above the floor.
		newExpense := debt.Mul(sys.DebtInterestRate)
		newIncome := money.Floor0(endingCash.Sub(sys.MinCashBalance)).Mul(sys.DepositInterestRate)

		// Relaxation: blend old and new to damp oscillation.
		interestExpense = interestExpense.Add(tune.RelaxationFactor.Mul(newExpense.Sub(interestExpense)))
		interestIncome = interestIncome.Add(tune.RelaxationFactor.Mul(newIncome.Sub(interestIncome)))
	}

	log.Printf("[SOLVER] year %d did not converge within %d iterations (cash %s, debt %s)",
		draft.Year, tune.MaxIterations, result.EndingCash.StringFixed2(), result.DebtBalance.StringFixed2())
	result.Converged = false
	return result
}
