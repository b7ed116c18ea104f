package metrics

import (
	"testing"

	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
)

func amt(v float64) money.Amount { return money.FromFloat(v) }

func TestNPVKnownSeries(t *testing.T) {
	// Three flows of 100 at 10%: 90.909090... + 82.6446... + 75.1314... = 248.685...
	flows := []money.Amount{amt(100), amt(100), amt(100)}
	got := NPV(amt(0.10), flows)
	want := amt(248.685199)
	if got.Sub(want).Abs().GreaterThan(amt(0.001)) {
		t.Fatalf("NPV = %s, want ~%s", got, want)
	}
}

func TestNPVZeroRateIsSum(t *testing.T) {
	flows := []money.Amount{amt(100), amt(-40), amt(15)}
	got := NPV(money.Zero(), flows)
	if !got.Equal(amt(75)) {
		t.Fatalf("NPV at zero rate = %s, want 75", got)
	}
}

func TestEquivalentAnnualValue(t *testing.T) {
	// EAV of PV 248.685199 at 10% over 3 years recovers the level 100 annuity.
	pv := amt(248.685199)
	got := EquivalentAnnualValue(pv, amt(0.10), 3)
	if got.Sub(amt(100)).Abs().GreaterThan(amt(0.001)) {
		t.Fatalf("EAV = %s, want ~100", got)
	}
}

func TestEquivalentAnnualValueZeroRate(t *testing.T) {
	got := EquivalentAnnualValue(amt(300), money.Zero(), 3)
	if !got.Equal(amt(100)) {
		t.Fatalf("EAV at zero rate = %s, want 100", got)
	}
}

func TestIRRSimpleRecovery(t *testing.T) {
	// -1000 then 1100 one year later: IRR is exactly 10%.
	got := IRR([]money.Amount{amt(-1000), amt(1100)})
	if got == nil {
		t.Fatal("IRR = nil, want ~0.10")
	}
	if got.Sub(amt(0.10)).Abs().GreaterThan(amt(0.0001)) {
		t.Fatalf("IRR = %s, want ~0.10", got)
	}
}

func TestIRRAllPositiveIsNil(t *testing.T) {
	if got := IRR([]money.Amount{amt(100), amt(200), amt(300)}); got != nil {
		t.Fatalf("IRR over all-positive flows = %s, want nil", got)
	}
}

func TestIRRAllNegativeIsNil(t *testing.T) {
	if got := IRR([]money.Amount{amt(-100), amt(-200)}); got != nil {
		t.Fatalf("IRR over all-negative flows = %s, want nil", got)
	}
}

func TestPaybackRecovery(t *testing.T) {
	// Cumulative: -500, -200, 100. Payback in year 3.
	got := Payback([]money.Amount{amt(-500), amt(300), amt(300)})
	if got == nil || *got != 3 {
		t.Fatalf("payback = %v, want 3", got)
	}
}

func TestPaybackNeverNegativeIsNil(t *testing.T) {
	if got := Payback([]money.Amount{amt(100), amt(50)}); got != nil {
		t.Fatalf("payback = %v, want nil", got)
	}
}

func TestPaybackNeverRecoversIsNil(t *testing.T) {
	if got := Payback([]money.Amount{amt(-500), amt(100), amt(100)}); got != nil {
		t.Fatalf("payback = %v, want nil", got)
	}
}

func period(pt statements.PeriodType, year int, rent, ebitda, opCF, invCF, debt, cash float64) statements.FinancialPeriod {
	return statements.FinancialPeriod{
		Year:       year,
		PeriodType: pt,
		ProfitLoss: statements.ProfitLossStatement{
			RentExpense: amt(rent),
			EBITDA:      amt(ebitda),
		},
		BalanceSheet: statements.BalanceSheet{
			DebtBalance: amt(debt),
			Cash:        amt(cash),
		},
		CashFlow: statements.CashFlowStatement{
			OperatingCashFlow: amt(opCF),
			InvestingCashFlow: amt(invCF),
		},
	}
}

func TestComputeSeparatesHorizons(t *testing.T) {
	periods := []statements.FinancialPeriod{
		period(statements.PeriodHistorical, 2024, 8, 10, 0, 0, 0, 5),
		period(statements.PeriodTransition, 2025, 10, 12, 12, -2, 50, 6),
		period(statements.PeriodDynamic, 2026, 10, 20, 20, -1, 30, 9),
		period(statements.PeriodDynamic, 2027, 10, 22, 22, -1, 0, 14),
	}
	s := Compute(periods, amt(0.08))

	if !s.TotalEBITDA.Equal(amt(54)) {
		t.Fatalf("total EBITDA = %s, want 54 (historical excluded)", s.TotalEBITDA)
	}
	if !s.AverageEBITDA.Equal(amt(18)) {
		t.Fatalf("average EBITDA = %s, want 18", s.AverageEBITDA)
	}
	if !s.FullHorizonRent.Equal(amt(30)) {
		t.Fatalf("full-horizon rent = %s, want 30", s.FullHorizonRent)
	}
	if !s.ContractPeriodRent.Equal(amt(20)) {
		t.Fatalf("contract-period rent = %s, want 20", s.ContractPeriodRent)
	}
	if !s.ContractPeriodEBITDA.Equal(amt(42)) {
		t.Fatalf("contract-period EBITDA = %s, want 42", s.ContractPeriodEBITDA)
	}
	if !s.PeakDebt.Equal(amt(50)) {
		t.Fatalf("peak debt = %s, want 50", s.PeakDebt)
	}
	if !s.FinalCash.Equal(amt(14)) {
		t.Fatalf("final cash = %s, want 14", s.FinalCash)
	}
}

func TestComputeNetTenantSurplusSign(t *testing.T) {
	// EBITDA consistently above rent: surplus must be positive.
	periods := []statements.FinancialPeriod{
		period(statements.PeriodTransition, 2025, 10, 15, 15, 0, 0, 1),
		period(statements.PeriodDynamic, 2026, 10, 18, 18, 0, 0, 2),
		period(statements.PeriodDynamic, 2027, 10, 21, 21, 0, 0, 3),
	}
	s := Compute(periods, amt(0.08))
	if !s.NetTenantSurplus.IsPositive() {
		t.Fatalf("net tenant surplus = %s, want positive", s.NetTenantSurplus)
	}
	if !s.NPVEBITDA.GreaterThan(s.NPVRent) {
		t.Fatalf("NPV EBITDA %s should exceed NPV rent %s", s.NPVEBITDA, s.NPVRent)
	}
}

func TestComputeEmptyProjection(t *testing.T) {
	s := Compute([]statements.FinancialPeriod{
		period(statements.PeriodHistorical, 2024, 8, 10, 0, 0, 0, 5),
	}, amt(0.08))
	if s.IRR != nil || s.PaybackYears != nil {
		t.Fatal("empty projection should leave optional metrics nil")
	}
	if !s.TotalEBITDA.IsZero() {
		t.Fatalf("total EBITDA = %s, want zero", s.TotalEBITDA)
	}
}
