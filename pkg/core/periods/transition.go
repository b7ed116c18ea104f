package periods

import (
	"lease_proforma/pkg/core/capex"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
	"lease_proforma/pkg/core/workingcapital"
)

// PriorFigures carries the prior year's P&L lines into the next calculator.
type PriorFigures struct {
	TuitionRevenue money.Amount
	OtherRevenue   money.Amount
	RentExpense    money.Amount
	StaffCosts     money.Amount
	OtherOpex      money.Amount
}

// PriorFromPL extracts the figures from an assembled P&L.
func PriorFromPL(pl statements.ProfitLossStatement) PriorFigures {
	return PriorFigures{
		TuitionRevenue: pl.TuitionRevenue,
		OtherRevenue:   pl.OtherRevenue,
		RentExpense:    pl.RentExpense,
		StaffCosts:     pl.StaffCosts,
		OtherOpex:      pl.OtherOpex,
	}
}

// TransitionContext is everything one transition year needs.
type TransitionContext struct {
	Year      int // calendar year
	YearIndex int // 1-based projection index (transition years are 1..3)

	Assumption config.TransitionYearAssumption
	Prefill    money.Amount // flat growth applied where inputs are absent
	Rent       config.RentModelConfig
	Ratios     workingcapital.Ratios
	CapEx      capex.YearResult
	Prior      PriorFigures
}

// TransitionDraft produces the pre-financing draft for one transition year.
// Explicit assumptions win; absent fields pre-fill from the prior year
// adjusted by the flat pre-fill growth rate.
func TransitionDraft(ctx TransitionContext) statements.Draft {
	a := ctx.Assumption
	grow := money.FromInt(1).Add(ctx.Prefill)

	var tuition money.Amount
	switch {
	case a.StudentCount != nil && a.AverageTuition != nil:
		tuition = money.FromInt(int64(*a.StudentCount)).Mul(*a.AverageTuition)
	case a.RevenueGrowthRate != nil:
		tuition = ctx.Prior.TuitionRevenue.Mul(money.FromInt(1).Add(*a.RevenueGrowthRate))
	default:
		tuition = ctx.Prior.TuitionRevenue.Mul(grow)
	}

	var other money.Amount
	if a.OtherRevenue != nil {
		other = *a.OtherRevenue
	} else {
		other = ctx.Ratios.OtherRevenue(tuition)
	}

	var staff money.Amount
	if a.StaffCosts != nil {
		staff = *a.StaffCosts
	} else {
		staff = ctx.Prior.StaffCosts.Mul(grow)
	}

	var otherOpex money.Amount
	if a.OtherOpex != nil {
		otherOpex = *a.OtherOpex
	} else {
		otherOpex = ctx.Prior.OtherOpex.Mul(grow)
	}

	totalRevenue := tuition.Add(other)
	rent := RentFor(ctx.Rent, ctx.YearIndex, totalRevenue)
	totalOpex := money.Sum(rent, staff, otherOpex)

	wc := ctx.Ratios.Apply(totalRevenue, totalOpex)

	return statements.Draft{
		Year:       ctx.Year,
		PeriodType: statements.PeriodTransition,

		TuitionRevenue: tuition,
		OtherRevenue:   other,
		RentExpense:    rent,
		StaffCosts:     staff,
		OtherOpex:      otherOpex,

		Depreciation:            ctx.CapEx.Depreciation,
		GrossPPE:                ctx.CapEx.GrossPPE,
		AccumulatedDepreciation: ctx.CapEx.AccumulatedDepreciation,
		CapExSpend:              ctx.CapEx.Spend,

		AccountsReceivable: wc.AccountsReceivable,
		Prepaid:            wc.Prepaid,
		AccountsPayable:    wc.AccountsPayable,
		AccruedLiabilities: wc.AccruedLiabilities,
		DeferredRevenue:    wc.DeferredRevenue,
	}
}
