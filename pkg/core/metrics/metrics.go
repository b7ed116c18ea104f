// Package metrics aggregates a finished projection into the summary block:
// EBITDA totals, peak debt, NPV of rent and EBITDA, optional IRR and payback,
// and the annualized net tenant surplus used as the headline comparison
// across rent models.
package metrics

import (
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
)

// Summary is the run-level metrics block.
type Summary struct {
	TotalEBITDA   money.Amount `json:"total_ebitda"`
	AverageEBITDA money.Amount `json:"average_ebitda"`
	PeakDebt      money.Amount `json:"peak_debt"`
	FinalCash     money.Amount `json:"final_cash"`

	FullHorizonRent      money.Amount `json:"full_horizon_rent"`
	FullHorizonEBITDA    money.Amount `json:"full_horizon_ebitda"`
	ContractPeriodRent   money.Amount `json:"contract_period_rent"`
	ContractPeriodEBITDA money.Amount `json:"contract_period_ebitda"`

	NPVRent   money.Amount `json:"npv_rent"`
	NPVEBITDA money.Amount `json:"npv_ebitda"`

	// Optional metrics: nil means not computable for this cash-flow shape,
	// never a sentinel number.
	IRR          *money.Amount `json:"irr,omitempty"`
	PaybackYears *int          `json:"payback_years,omitempty"`

	// Equivalent-annual-value of EBITDA minus equivalent-annual-value of
	// rent: the single headline number compared across rent models.
	NetTenantSurplus money.Amount `json:"net_tenant_surplus"`
}

// Compute builds the summary from the ordered period sequence. Only
// projection periods (transition and dynamic) enter the totals; historical
// years are context, not proposal economics.
func Compute(periods []statements.FinancialPeriod, discountRate money.Amount) Summary {
	var projection []statements.FinancialPeriod
	for _, p := range periods {
		if p.PeriodType != statements.PeriodHistorical {
			projection = append(projection, p)
		}
	}

	s := Summary{}
	if len(projection) == 0 {
		return s
	}

	var rents, ebitdas, freeCashFlows []money.Amount
	for _, p := range projection {
		rents = append(rents, p.ProfitLoss.RentExpense)
		ebitdas = append(ebitdas, p.ProfitLoss.EBITDA)
		freeCashFlows = append(freeCashFlows,
			p.CashFlow.OperatingCashFlow.Add(p.CashFlow.InvestingCashFlow))

		s.TotalEBITDA = s.TotalEBITDA.Add(p.ProfitLoss.EBITDA)
		s.FullHorizonRent = s.FullHorizonRent.Add(p.ProfitLoss.RentExpense)
		s.PeakDebt = money.Max(s.PeakDebt, p.BalanceSheet.DebtBalance)

		if p.PeriodType == statements.PeriodDynamic {
			s.ContractPeriodRent = s.ContractPeriodRent.Add(p.ProfitLoss.RentExpense)
			s.ContractPeriodEBITDA = s.ContractPeriodEBITDA.Add(p.ProfitLoss.EBITDA)
		}
	}
	s.FullHorizonEBITDA = s.TotalEBITDA
	s.AverageEBITDA = s.TotalEBITDA.Div(money.FromInt(int64(len(projection))))
	s.FinalCash = projection[len(projection)-1].BalanceSheet.Cash

	s.NPVRent = NPV(discountRate, rents)
	s.NPVEBITDA = NPV(discountRate, ebitdas)
	s.IRR = IRR(freeCashFlows)
	s.PaybackYears = Payback(freeCashFlows)

	n := len(projection)
	s.NetTenantSurplus = EquivalentAnnualValue(s.NPVEBITDA, discountRate, n).
		Sub(EquivalentAnnualValue(s.NPVRent, discountRate, n))

	return s
}

// NPV discounts the flow series at the given rate, first flow one year out.
func NPV(rate money.Amount, flows []money.Amount) money.Amount {
	one := money.FromInt(1)
	discount := one
	pv := money.Zero()
	for _, f := range flows {
		discount = discount.Div(one.Add(rate))
		pv = pv.Add(f.Mul(discount))
	}
	return pv
}

// EquivalentAnnualValue converts a present value into the level annual amount
// with the same PV over n years: PV * r / (1 - (1+r)^-n).
func EquivalentAnnualValue(presentValue, rate money.Amount, years int) money.Amount {
	if years <= 0 {
		return money.Zero()
	}
	if rate.IsZero() {
		return presentValue.Div(money.FromInt(int64(years)))
	}
	one := money.FromInt(1)
	annuityFactor := one.Sub(one.Div(one.Add(rate).PowInt(years)))
	return presentValue.Mul(rate).Div(annuityFactor)
}

// IRR finds the rate where NPV crosses zero, by bisection. Returns nil when
// the cash-flow shape gives it no defined value (no sign change across the
// search interval).
func IRR(flows []money.Amount) *money.Amount {
	hasPositive, hasNegative := false, false
	for _, f := range flows {
		if f.IsPositive() {
			hasPositive = true
		}
		if f.IsNegative() {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return nil
	}

	low, high := -0.9999, 10.0
	npvAt := func(r float64) money.Amount {
		return NPV(money.FromFloat(r), flows)
	}

	npvLow, npvHigh := npvAt(low), npvAt(high)
	if npvLow.IsNegative() == npvHigh.IsNegative() {
		return nil
	}

	for i := 0; i < 100; i++ {
		mid := (low + high) / 2
		v := npvAt(mid)
		if v.IsZero() {
			low, high = mid, mid
			break
		}
		if v.IsNegative() == npvLow.IsNegative() {
			low = mid
			npvLow = v
		} else {
			high = mid
		}
	}

	irr := money.FromFloat((low + high) / 2).Round6()
	return &irr
}

// Payback returns the first 1-based year where cumulative free cash flow
// turns non-negative after having been negative. Nil when the cumulative
// series never goes negative (nothing to pay back) or never recovers.
func Payback(flows []money.Amount) *int {
	cumulative := money.Zero()
	wentNegative := false
	for i, f := range flows {
		cumulative = cumulative.Add(f)
		if cumulative.IsNegative() {
			wentNegative = true
			continue
		}
		if wentNegative {
			year := i + 1
			return &year
		}
	}
	return nil
}
