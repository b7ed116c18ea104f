package periods

import (
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
)

// HistoricalPeriod maps a confirmed historical record verbatim into a
// FinancialPeriod. No computation beyond totals: the record is locked, and
// recalculating must reproduce identical figures. prior supplies the
// preceding year's record for the cash flow derivation; nil for the first
// historical year, whose cash flow is neutral.
func HistoricalPeriod(rec config.HistoricalYearRecord, prior *config.HistoricalYearRecord) statements.FinancialPeriod {
	totalRevenue := rec.TuitionRevenue.Add(rec.OtherRevenue)
	totalOpex := money.Sum(rec.RentExpense, rec.StaffCosts, rec.OtherOpex)
	ebitda := totalRevenue.Sub(totalOpex)
	ebit := ebitda.Sub(rec.Depreciation)
	netInterest := rec.InterestExpense.Sub(rec.InterestIncome)
	ebt := ebit.Sub(netInterest)
	netIncome := ebt.Sub(rec.ZakatExpense)

	pl := statements.ProfitLossStatement{
		TuitionRevenue:  rec.TuitionRevenue,
		OtherRevenue:    rec.OtherRevenue,
		TotalRevenue:    totalRevenue,
		RentExpense:     rec.RentExpense,
		StaffCosts:      rec.StaffCosts,
		OtherOpex:       rec.OtherOpex,
		TotalOpex:       totalOpex,
		EBITDA:          ebitda,
		Depreciation:    rec.Depreciation,
		EBIT:            ebit,
		InterestExpense: rec.InterestExpense,
		InterestIncome:  rec.InterestIncome,
		NetInterest:     netInterest,
		EBT:             ebt,
		ZakatExpense:    rec.ZakatExpense,
		NetIncome:       netIncome,
	}

	netPPE := rec.GrossPPE.Sub(rec.AccumulatedDepreciation)
	totalCurrentAssets := money.Sum(rec.Cash, rec.AccountsReceivable, rec.Prepaid)
	totalAssets := totalCurrentAssets.Add(netPPE)
	totalCurrentLiabilities := money.Sum(rec.AccountsPayable, rec.AccruedLiabilities, rec.DeferredRevenue)
	totalLiabilities := totalCurrentLiabilities.Add(rec.DebtBalance)
	totalEquity := rec.OpeningRetainedEarnings.Add(netIncome)

	bs := statements.BalanceSheet{
		Cash:                    rec.Cash,
		AccountsReceivable:      rec.AccountsReceivable,
		Prepaid:                 rec.Prepaid,
		TotalCurrentAssets:      totalCurrentAssets,
		GrossPPE:                rec.GrossPPE,
		AccumulatedDepreciation: rec.AccumulatedDepreciation,
		NetPPE:                  netPPE,
		TotalAssets:             totalAssets,
		AccountsPayable:         rec.AccountsPayable,
		AccruedLiabilities:      rec.AccruedLiabilities,
		DeferredRevenue:         rec.DeferredRevenue,
		TotalCurrentLiabilities: totalCurrentLiabilities,
		DebtBalance:             rec.DebtBalance,
		TotalLiabilities:        totalLiabilities,
		RetainedEarnings:        rec.OpeningRetainedEarnings,
		CurrentNetIncome:        netIncome,
		TotalEquity:             totalEquity,
	}

	cf := historicalCashFlow(rec, prior, netIncome)

	period := statements.FinancialPeriod{
		Year:         rec.Year,
		PeriodType:   statements.PeriodHistorical,
		ProfitLoss:   pl,
		BalanceSheet: bs,
		CashFlow:     cf,
		Converged:    true,
	}
	period.BalanceGap = statements.BalanceGap(bs)
	period.BalanceSheetBalanced = period.BalanceGap.Abs().LessThan(money.Cent)
	period.ReconciliationGap = statements.ReconciliationGap(cf, bs)
	period.CashFlowReconciled = period.ReconciliationGap.Abs().LessThan(money.Cent)
	return period
}

// historicalCashFlow derives the indirect cash flow between two historical
// balance sheets. CapEx spend is implied by the gross PP&E movement and debt
// movement splits into issuance or repayment. Without a prior year the
// statement is neutral: beginning equals ending cash.
func historicalCashFlow(rec config.HistoricalYearRecord, prior *config.HistoricalYearRecord, netIncome money.Amount) statements.CashFlowStatement {
	if prior == nil {
		return statements.CashFlowStatement{
			NetIncome:     netIncome,
			BeginningCash: rec.Cash,
			EndingCash:    rec.Cash,
		}
	}

	chgAR := rec.AccountsReceivable.Sub(prior.AccountsReceivable).Neg()
	chgPrepaid := rec.Prepaid.Sub(prior.Prepaid).Neg()
	chgAP := rec.AccountsPayable.Sub(prior.AccountsPayable)
	chgAccrued := rec.AccruedLiabilities.Sub(prior.AccruedLiabilities)
	chgDeferred := rec.DeferredRevenue.Sub(prior.DeferredRevenue)

	operating := money.Sum(netIncome, rec.Depreciation, chgAR, chgPrepaid, chgAP, chgAccrued, chgDeferred)

	capexSpend := money.Floor0(rec.GrossPPE.Sub(prior.GrossPPE))
	investing := capexSpend.Neg()

	debtMove := rec.DebtBalance.Sub(prior.DebtBalance)
	issuance := money.Floor0(debtMove)
	repayment := money.Floor0(debtMove.Neg())
	financing := issuance.Sub(repayment)

	netChange := money.Sum(operating, investing, financing)

	return statements.CashFlowStatement{
		NetIncome:               netIncome,
		Depreciation:            rec.Depreciation,
		ChangeInAR:              chgAR,
		ChangeInPrepaid:         chgPrepaid,
		ChangeInAP:              chgAP,
		ChangeInAccrued:         chgAccrued,
		ChangeInDeferredRevenue: chgDeferred,
		OperatingCashFlow:       operating,
		CapExSpend:              capexSpend,
		InvestingCashFlow:       investing,
		DebtIssuance:            issuance,
		DebtRepayment:           repayment,
		FinancingCashFlow:       financing,
		NetChangeInCash:         netChange,
		BeginningCash:           prior.Cash,
		EndingCash:              prior.Cash.Add(netChange),
	}
}
