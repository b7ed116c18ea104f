package statements

import (
	"fmt"

	"lease_proforma/pkg/core/money"
)

// validatePeriod runs the balance and reconciliation checks and records the
// observed gaps on the period. A breach beyond tolerance is an internal
// inconsistency between solver and assemblers; it is reported, not rounded
// away.
func validatePeriod(p *FinancialPeriod) {
	p.BalanceGap = BalanceGap(p.BalanceSheet)
	p.BalanceSheetBalanced = p.BalanceGap.Abs().LessThan(money.Cent)

	p.ReconciliationGap = ReconciliationGap(p.CashFlow, p.BalanceSheet)
	p.CashFlowReconciled = p.ReconciliationGap.Abs().LessThan(money.Cent)
}

// BalanceGap is totalAssets - (totalLiabilities + totalEquity).
func BalanceGap(bs BalanceSheet) money.Amount {
	return bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
}

// ReconciliationGap compares the cash flow statement's ending cash against the
// balance sheet cash line.
func ReconciliationGap(cf CashFlowStatement, bs BalanceSheet) money.Amount {
	return cf.EndingCash.Sub(bs.Cash)
}

// ValidationFailure describes a balance or reconciliation breach for one year.
type ValidationFailure struct {
	Year  int
	Check string // "balance" or "reconciliation"
	Gap   money.Amount
}

func (v ValidationFailure) Error() string {
	return fmt.Sprintf("year %d: %s check failed by %s", v.Year, v.Check, v.Gap.StringFixed2())
}

// Failures lists the validation failures recorded on a period, if any.
func (p FinancialPeriod) Failures() []ValidationFailure {
	var out []ValidationFailure
	if !p.BalanceSheetBalanced {
		out = append(out, ValidationFailure{Year: p.Year, Check: "balance", Gap: p.BalanceGap})
	}
	if !p.CashFlowReconciled {
		out = append(out, ValidationFailure{Year: p.Year, Check: "reconciliation", Gap: p.ReconciliationGap})
	}
	return out
}
