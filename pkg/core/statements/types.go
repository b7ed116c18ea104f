// Package statements holds the three financial statements, the per-year
// FinancialPeriod envelope, and the shared intermediate types that flow
// between the period calculators, the circular solver and the assemblers.
package statements

import (
	"lease_proforma/pkg/core/money"
)

// PeriodType names the three period regimes. Ranges are contiguous and
// mutually exclusive.
type PeriodType string

const (
	PeriodHistorical PeriodType = "historical"
	PeriodTransition PeriodType = "transition"
	PeriodDynamic    PeriodType = "dynamic"
)

// ProfitLossStatement is one year's P&L, revenue down to net income.
type ProfitLossStatement struct {
	TuitionRevenue money.Amount `json:"tuition_revenue"`
	OtherRevenue   money.Amount `json:"other_revenue"`
	TotalRevenue   money.Amount `json:"total_revenue"`

	RentExpense money.Amount `json:"rent_expense"`
	StaffCosts  money.Amount `json:"staff_costs"`
	OtherOpex   money.Amount `json:"other_opex"`
	TotalOpex   money.Amount `json:"total_opex"`

	EBITDA       money.Amount `json:"ebitda"`
	Depreciation money.Amount `json:"depreciation"`
	EBIT         money.Amount `json:"ebit"`

	InterestExpense money.Amount `json:"interest_expense"`
	InterestIncome  money.Amount `json:"interest_income"`
	NetInterest     money.Amount `json:"net_interest"`

	EBT          money.Amount `json:"ebt"`
	ZakatExpense money.Amount `json:"zakat_expense"`
	NetIncome    money.Amount `json:"net_income"`
}

// BalanceSheet is one year's closing position. DebtBalance is the structural
// plug produced by the solver, never recomputed independently here.
type BalanceSheet struct {
	Cash               money.Amount `json:"cash"`
	AccountsReceivable money.Amount `json:"accounts_receivable"`
	Prepaid            money.Amount `json:"prepaid"`
	TotalCurrentAssets money.Amount `json:"total_current_assets"`

	GrossPPE                money.Amount `json:"gross_ppe"`
	AccumulatedDepreciation money.Amount `json:"accumulated_depreciation"`
	NetPPE                  money.Amount `json:"net_ppe"`
	TotalAssets             money.Amount `json:"total_assets"`

	AccountsPayable         money.Amount `json:"accounts_payable"`
	AccruedLiabilities      money.Amount `json:"accrued_liabilities"`
	DeferredRevenue         money.Amount `json:"deferred_revenue"`
	TotalCurrentLiabilities money.Amount `json:"total_current_liabilities"`

	DebtBalance      money.Amount `json:"debt_balance"`
	TotalLiabilities money.Amount `json:"total_liabilities"`

	RetainedEarnings money.Amount `json:"retained_earnings"`
	CurrentNetIncome money.Amount `json:"current_net_income"`
	TotalEquity      money.Amount `json:"total_equity"`
}

// CashFlowStatement is the indirect-method cash flow for one year.
type CashFlowStatement struct {
	NetIncome               money.Amount `json:"net_income"`
	Depreciation            money.Amount `json:"depreciation"`
	ChangeInAR              money.Amount `json:"change_in_ar"`
	ChangeInPrepaid         money.Amount `json:"change_in_prepaid"`
	ChangeInAP              money.Amount `json:"change_in_ap"`
	ChangeInAccrued         money.Amount `json:"change_in_accrued"`
	ChangeInDeferredRevenue money.Amount `json:"change_in_deferred_revenue"`
	OperatingCashFlow       money.Amount `json:"operating_cash_flow"`

	CapExSpend        money.Amount `json:"capex_spend"`
	InvestingCashFlow money.Amount `json:"investing_cash_flow"`

	DebtIssuance      money.Amount `json:"debt_issuance"`
	DebtRepayment     money.Amount `json:"debt_repayment"`
	FinancingCashFlow money.Amount `json:"financing_cash_flow"`

	NetChangeInCash money.Amount `json:"net_change_in_cash"`
	BeginningCash   money.Amount `json:"beginning_cash"`
	EndingCash      money.Amount `json:"ending_cash"`
}

// FinancialPeriod is one calendar year's complete output. Immutable once
// produced; owned by the orchestrator's output sequence.
type FinancialPeriod struct {
	Year       int        `json:"year"`
	PeriodType PeriodType `json:"period_type"`

	ProfitLoss   ProfitLossStatement `json:"profit_loss"`
	BalanceSheet BalanceSheet        `json:"balance_sheet"`
	CashFlow     CashFlowStatement   `json:"cash_flow"`

	Converged          bool `json:"converged"`
	IterationsRequired int  `json:"iterations_required"`

	BalanceSheetBalanced bool         `json:"balance_sheet_balanced"`
	CashFlowReconciled   bool         `json:"cash_flow_reconciled"`
	BalanceGap           money.Amount `json:"balance_gap"`
	ReconciliationGap    money.Amount `json:"reconciliation_gap"`
}

// Draft is the pre-financing view of a year produced by a period calculator:
// revenue and operating costs only, no interest or zakat, plus the non-debt,
// non-cash balance sheet lines.
type Draft struct {
	Year       int
	PeriodType PeriodType

	TuitionRevenue money.Amount
	OtherRevenue   money.Amount
	RentExpense    money.Amount
	StaffCosts     money.Amount
	OtherOpex      money.Amount

	Depreciation            money.Amount
	GrossPPE                money.Amount
	AccumulatedDepreciation money.Amount
	CapExSpend              money.Amount

	AccountsReceivable money.Amount
	Prepaid            money.Amount
	AccountsPayable    money.Amount
	AccruedLiabilities money.Amount
	DeferredRevenue    money.Amount
}

// TotalRevenue sums the draft revenue lines.
func (d Draft) TotalRevenue() money.Amount {
	return d.TuitionRevenue.Add(d.OtherRevenue)
}

// TotalOpex sums the draft operating cost lines.
func (d Draft) TotalOpex() money.Amount {
	return money.Sum(d.RentExpense, d.StaffCosts, d.OtherOpex)
}

// EBITDA is draft revenue minus draft operating costs.
func (d Draft) EBITDA() money.Amount {
	return d.TotalRevenue().Sub(d.TotalOpex())
}

// OpeningState is the prior year's closing position the next year opens from.
type OpeningState struct {
	Cash             money.Amount
	DebtBalance      money.Amount
	RetainedEarnings money.Amount

	AccountsReceivable money.Amount
	Prepaid            money.Amount
	AccountsPayable    money.Amount
	AccruedLiabilities money.Amount
	DeferredRevenue    money.Amount
}

// CircularSolverResult is the solver's per-year output: created fresh each
// year, consumed immediately by the assemblers, not retained.
type CircularSolverResult struct {
	Converged  bool
	Iterations int

	InterestExpense money.Amount
	InterestIncome  money.Amount
	Zakat           money.Amount
	EBT             money.Amount
	NetIncome       money.Amount

	DebtBalance   money.Amount
	EndingCash    money.Amount
	DebtIssuance  money.Amount
	DebtRepayment money.Amount
}

// NetInterest is expense minus income.
func (r CircularSolverResult) NetInterest() money.Amount {
	return r.InterestExpense.Sub(r.InterestIncome)
}
