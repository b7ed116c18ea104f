package periods

import (
	"lease_proforma/pkg/core/capex"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/statements"
	"lease_proforma/pkg/core/workingcapital"
)

// DynamicContext is everything one dynamic year needs.
type DynamicContext struct {
	Year        int // calendar year
	DynamicYear int // 1-based within the dynamic period
	YearIndex   int // 1-based projection index (transition length + DynamicYear)

	Cfg    config.DynamicConfig
	Rent   config.RentModelConfig
	Ratios workingcapital.Ratios
	CapEx  capex.YearResult
}

// DynamicDraft produces the pre-financing draft for one dynamic year from the
// formula-driven growth models: enrollment ramp, curriculum tuition, staff
// cost model, other-opex ratio and the active rent model.
func DynamicDraft(ctx DynamicContext) statements.Draft {
	students := StudentsFor(ctx.Cfg.Enrollment, ctx.DynamicYear)

	tuition := TuitionRevenueFor(ctx.Cfg.PrimaryCurriculum, ctx.Cfg.SecondaryCurriculum, students, ctx.DynamicYear)
	other := ctx.Ratios.OtherRevenue(tuition)
	totalRevenue := tuition.Add(other)

	staff := StaffCostsFor(ctx.Cfg.Staff, students, totalRevenue, ctx.DynamicYear)
	otherOpex := ctx.Cfg.OtherOpexRatio.Mul(totalRevenue)
	rent := RentFor(ctx.Rent, ctx.YearIndex, totalRevenue)
	totalOpex := money.Sum(rent, staff, otherOpex)

	wc := ctx.Ratios.Apply(totalRevenue, totalOpex)

	return statements.Draft{
		Year:       ctx.Year,
		PeriodType: statements.PeriodDynamic,

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
