package statements

import (
	"strings"
	"testing"

	"lease_proforma/pkg/core/money"
)

func amt(v float64) money.Amount { return money.FromFloat(v) }

// consistentTriple builds a draft, opening state and solver result that
// satisfy the accounting identities exactly, so the assembled period must
// balance and reconcile with zero gap.
func consistentTriple() (Draft, OpeningState, CircularSolverResult) {
	opening := OpeningState{
		Cash:             amt(5),
		DebtBalance:      amt(2),
		RetainedEarnings: amt(19.3),

		AccountsReceivable: amt(1),
		Prepaid:            amt(0.5),
		AccountsPayable:    amt(0.8),
		AccruedLiabilities: amt(0.4),
		DeferredRevenue:    amt(2),
	}

	draft := Draft{
		Year:       2025,
		PeriodType: PeriodTransition,

		TuitionRevenue: amt(40),
		OtherRevenue:   amt(4),
		RentExpense:    amt(8),
		StaffCosts:     amt(18),
		OtherOpex:      amt(7),

		Depreciation:            amt(2),
		GrossPPE:                amt(32),
		AccumulatedDepreciation: amt(14),
		CapExSpend:              amt(2),

		AccountsReceivable: amt(1.2),
		Prepaid:            amt(0.6),
		AccountsPayable:    amt(0.9),
		AccruedLiabilities: amt(0.5),
		DeferredRevenue:    amt(2.2),
	}

	// EBT = 11 - 2 - 0.12 = 8.88, zakat 2.5% = 0.222, net income 8.658.
	// Cash before financing = 5 + 8.658 + 2 + 0.1 - 2 = 13.758; the full
	// 2.0 of opening debt is repaid.
	fin := CircularSolverResult{
		Converged:  true,
		Iterations: 12,

		InterestExpense: amt(0.12),
		InterestIncome:  money.Zero(),
		Zakat:           amt(0.222),
		EBT:             amt(8.88),
		NetIncome:       amt(8.658),

		DebtBalance:   money.Zero(),
		EndingCash:    amt(11.758),
		DebtIssuance:  money.Zero(),
		DebtRepayment: amt(2),
	}
	return draft, opening, fin
}

func TestAssembleConsistentPeriod(t *testing.T) {
	draft, opening, fin := consistentTriple()
	p := AssemblePeriod(draft, opening, fin)

	if !p.BalanceSheetBalanced {
		t.Fatalf("balance gap %s, want zero", p.BalanceGap)
	}
	if !p.CashFlowReconciled {
		t.Fatalf("reconciliation gap %s, want zero", p.ReconciliationGap)
	}
	if !p.BalanceGap.IsZero() || !p.ReconciliationGap.IsZero() {
		t.Fatalf("gaps should be exactly zero, got %s / %s", p.BalanceGap, p.ReconciliationGap)
	}
	if len(p.Failures()) != 0 {
		t.Fatalf("unexpected failures: %v", p.Failures())
	}

	if !p.ProfitLoss.EBITDA.Equal(amt(11)) {
		t.Fatalf("EBITDA = %s, want 11", p.ProfitLoss.EBITDA)
	}
	if !p.ProfitLoss.NetIncome.Equal(amt(8.658)) {
		t.Fatalf("net income = %s, want 8.658", p.ProfitLoss.NetIncome)
	}
	if !p.BalanceSheet.DebtBalance.Equal(fin.DebtBalance) {
		t.Fatal("debt must come straight from the solver")
	}
	if !p.BalanceSheet.Cash.Equal(amt(11.758)) {
		t.Fatalf("cash = %s, want 11.758", p.BalanceSheet.Cash)
	}
	if !p.BalanceSheet.TotalEquity.Equal(amt(27.958)) {
		t.Fatalf("equity = %s, want 27.958", p.BalanceSheet.TotalEquity)
	}
	if p.IterationsRequired != 12 || !p.Converged {
		t.Fatalf("solver metadata lost: %+v", p)
	}
}

func TestAssembleCashFlowLines(t *testing.T) {
	draft, opening, fin := consistentTriple()
	p := AssemblePeriod(draft, opening, fin)
	cf := p.CashFlow

	// AR grew by 0.2: cash consumed. AP grew by 0.1: cash released.
	if !cf.ChangeInAR.Equal(amt(-0.2)) {
		t.Fatalf("change in AR = %s, want -0.2", cf.ChangeInAR)
	}
	if !cf.ChangeInAP.Equal(amt(0.1)) {
		t.Fatalf("change in AP = %s, want 0.1", cf.ChangeInAP)
	}
	if !cf.OperatingCashFlow.Equal(amt(10.758)) {
		t.Fatalf("operating cash flow = %s, want 10.758", cf.OperatingCashFlow)
	}
	if !cf.InvestingCashFlow.Equal(amt(-2)) {
		t.Fatalf("investing cash flow = %s, want -2", cf.InvestingCashFlow)
	}
	if !cf.FinancingCashFlow.Equal(amt(-2)) {
		t.Fatalf("financing cash flow = %s, want -2", cf.FinancingCashFlow)
	}
	if !cf.BeginningCash.Equal(opening.Cash) {
		t.Fatalf("beginning cash = %s, want %s", cf.BeginningCash, opening.Cash)
	}
	if !cf.EndingCash.Equal(fin.EndingCash) {
		t.Fatalf("ending cash = %s, want %s", cf.EndingCash, fin.EndingCash)
	}
}

func TestAssembleSurfacesInconsistency(t *testing.T) {
	draft, opening, fin := consistentTriple()
	fin.EndingCash = fin.EndingCash.Add(amt(1000))

	p := AssemblePeriod(draft, opening, fin)
	if p.BalanceSheetBalanced {
		t.Fatal("corrupted solver result should break the balance check")
	}
	if p.CashFlowReconciled {
		t.Fatal("corrupted solver result should break the reconciliation check")
	}

	failures := p.Failures()
	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(failures))
	}
	checks := failures[0].Check + "," + failures[1].Check
	if !strings.Contains(checks, "balance") || !strings.Contains(checks, "reconciliation") {
		t.Fatalf("failures name unexpected checks: %s", checks)
	}
	if !strings.Contains(failures[0].Error(), "year 2025") {
		t.Fatalf("failure message should name the year: %s", failures[0].Error())
	}
}

func TestDraftTotals(t *testing.T) {
	draft, _, _ := consistentTriple()
	if !draft.TotalRevenue().Equal(amt(44)) {
		t.Fatalf("total revenue = %s, want 44", draft.TotalRevenue())
	}
	if !draft.TotalOpex().Equal(amt(33)) {
		t.Fatalf("total opex = %s, want 33", draft.TotalOpex())
	}
	if !draft.EBITDA().Equal(amt(11)) {
		t.Fatalf("EBITDA = %s, want 11", draft.EBITDA())
	}
}
