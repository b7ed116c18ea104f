package statements

import (
	"lease_proforma/pkg/core/money"
)

// AssemblePeriod builds the final three statements for one year from the
// draft, the opening state and the solver's financing result, then runs the
// balance and reconciliation checks. Debt is taken straight from the solver:
// it is structurally the balancing plug, and a gap in the identity indicates a
// solver bug that must surface as a validation failure, never be masked.
func AssemblePeriod(draft Draft, opening OpeningState, fin CircularSolverResult) FinancialPeriod {
	pl := assembleProfitLoss(draft, fin)
	bs := assembleBalanceSheet(draft, opening, fin)
	cf := assembleCashFlow(draft, opening, fin)

	period := FinancialPeriod{
		Year:               draft.Year,
		PeriodType:         draft.PeriodType,
		ProfitLoss:         pl,
		BalanceSheet:       bs,
		CashFlow:           cf,
		Converged:          fin.Converged,
		IterationsRequired: fin.Iterations,
	}
	validatePeriod(&period)
	return period
}

func assembleProfitLoss(d Draft, fin CircularSolverResult) ProfitLossStatement {
	totalRevenue := d.TotalRevenue()
	totalOpex := d.TotalOpex()
	ebitda := totalRevenue.Sub(totalOpex)
	ebit := ebitda.Sub(d.Depreciation)

	return ProfitLossStatement{
		TuitionRevenue: d.TuitionRevenue,
		OtherRevenue:   d.OtherRevenue,
		TotalRevenue:   totalRevenue,

		RentExpense: d.RentExpense,
		StaffCosts:  d.StaffCosts,
		OtherOpex:   d.OtherOpex,
		TotalOpex:   totalOpex,

		EBITDA:       ebitda,
		Depreciation: d.Depreciation,
		EBIT:         ebit,

		InterestExpense: fin.InterestExpense,
		InterestIncome:  fin.InterestIncome,
		NetInterest:     fin.NetInterest(),

		EBT:          fin.EBT,
		ZakatExpense: fin.Zakat,
		NetIncome:    fin.NetIncome,
	}
}

func assembleBalanceSheet(d Draft, opening OpeningState, fin CircularSolverResult) BalanceSheet {
	netPPE := d.GrossPPE.Sub(d.AccumulatedDepreciation)
	totalCurrentAssets := money.Sum(fin.EndingCash, d.AccountsReceivable, d.Prepaid)
	totalAssets := totalCurrentAssets.Add(netPPE)

	totalCurrentLiabilities := money.Sum(d.AccountsPayable, d.AccruedLiabilities, d.DeferredRevenue)
	totalLiabilities := totalCurrentLiabilities.Add(fin.DebtBalance)

	totalEquity := opening.RetainedEarnings.Add(fin.NetIncome)

	return BalanceSheet{
		Cash:               fin.EndingCash,
		AccountsReceivable: d.AccountsReceivable,
		Prepaid:            d.Prepaid,
		TotalCurrentAssets: totalCurrentAssets,

		GrossPPE:                d.GrossPPE,
		AccumulatedDepreciation: d.AccumulatedDepreciation,
		NetPPE:                  netPPE,
		TotalAssets:             totalAssets,

		AccountsPayable:         d.AccountsPayable,
		AccruedLiabilities:      d.AccruedLiabilities,
		DeferredRevenue:         d.DeferredRevenue,
		TotalCurrentLiabilities: totalCurrentLiabilities,

		DebtBalance:      fin.DebtBalance,
		TotalLiabilities: totalLiabilities,

		RetainedEarnings: opening.RetainedEarnings,
		CurrentNetIncome: fin.NetIncome,
		TotalEquity:      totalEquity,
	}
}

func assembleCashFlow(d Draft, opening OpeningState, fin CircularSolverResult) CashFlowStatement {
	// Working capital deltas in cash flow sign convention: asset growth
	// consumes cash, liability growth releases it.
	chgAR := d.AccountsReceivable.Sub(opening.AccountsReceivable).Neg()
	chgPrepaid := d.Prepaid.Sub(opening.Prepaid).Neg()
	chgAP := d.AccountsPayable.Sub(opening.AccountsPayable)
	chgAccrued := d.AccruedLiabilities.Sub(opening.AccruedLiabilities)
	chgDeferred := d.DeferredRevenue.Sub(opening.DeferredRevenue)

	operating := money.Sum(fin.NetIncome, d.Depreciation, chgAR, chgPrepaid, chgAP, chgAccrued, chgDeferred)
	investing := d.CapExSpend.Neg()
	financing := fin.DebtIssuance.Sub(fin.DebtRepayment)

	netChange := money.Sum(operating, investing, financing)

	return CashFlowStatement{
		NetIncome:               fin.NetIncome,
		Depreciation:            d.Depreciation,
		ChangeInAR:              chgAR,
		ChangeInPrepaid:         chgPrepaid,
		ChangeInAP:              chgAP,
		ChangeInAccrued:         chgAccrued,
		ChangeInDeferredRevenue: chgDeferred,
		OperatingCashFlow:       operating,

		CapExSpend:        d.CapExSpend,
		InvestingCashFlow: investing,

		DebtIssuance:      fin.DebtIssuance,
		DebtRepayment:     fin.DebtRepayment,
		FinancingCashFlow: financing,

		NetChangeInCash: netChange,
		BeginningCash:   opening.Cash,
		EndingCash:      opening.Cash.Add(netChange),
	}
}
