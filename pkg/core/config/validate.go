package config

import (
	"fmt"

	"lease_proforma/pkg/core/money"
)

// transitionYears is the fixed length of the transition window.
const transitionYears = 3

// Validate checks the snapshot before any computation starts. It returns the
// first problem found as a *ConfigurationError.
func (in *CalculationEngineInput) Validate() error {
	supported := false
	for _, y := range SupportedContractYears {
		if in.ContractYears == y {
			supported = true
		}
	}
	if !supported {
		return invalidField("contract_years",
			fmt.Sprintf("must be one of %v, got %d", SupportedContractYears, in.ContractYears))
	}

	if len(in.HistoricalYears) == 0 {
		return missingField("historical_years")
	}
	for i, h := range in.HistoricalYears {
		if h.Year == 0 {
			return invalidField(fmt.Sprintf("historical_years[%d].year", i), "year must be set")
		}
		if i > 0 && h.Year != in.HistoricalYears[i-1].Year+1 {
			return invalidField(fmt.Sprintf("historical_years[%d].year", i), "years must be contiguous")
		}
	}

	if len(in.Transition.Years) != transitionYears {
		return invalidField("transition.years",
			fmt.Sprintf("exactly %d transition years required, got %d", transitionYears, len(in.Transition.Years)))
	}

	if err := in.validateRentModel(); err != nil {
		return err
	}
	if err := in.validateEnrollment(); err != nil {
		return err
	}
	if err := in.validateStaff(); err != nil {
		return err
	}
	if err := in.validateCapEx(); err != nil {
		return err
	}

	if in.Solver.MaxIterations <= 0 {
		return invalidField("solver.max_iterations", "must be positive")
	}
	if !in.Solver.ConvergenceTolerance.IsPositive() {
		return invalidField("solver.convergence_tolerance", "must be positive")
	}
	if !in.Solver.RelaxationFactor.IsPositive() || in.Solver.RelaxationFactor.GreaterThan(oneAmount) {
		return invalidField("solver.relaxation_factor", "must be in (0, 1]")
	}

	return nil
}

func (in *CalculationEngineInput) validateRentModel() error {
	switch in.Rent.Model {
	case RentFixedEscalation:
		p := in.Rent.FixedEscalation
		if p == nil {
			return missingField("rent.fixed_escalation")
		}
		if p.BaseRent.IsZero() {
			return missingField("rent.fixed_escalation.base_rent")
		}
		if p.FrequencyYears <= 0 {
			return invalidField("rent.fixed_escalation.frequency_years", "must be positive")
		}
	case RentRevenueShare:
		p := in.Rent.RevenueShare
		if p == nil {
			return missingField("rent.revenue_share")
		}
		if p.RevenueSharePercent.IsZero() {
			return missingField("rent.revenue_share.revenue_share_percent")
		}
	case RentPartnerInvestment:
		p := in.Rent.PartnerInvestment
		if p == nil {
			return missingField("rent.partner_investment")
		}
		if p.LandSize.IsZero() {
			return missingField("rent.partner_investment.land_size")
		}
		if p.LandPricePerSqm.IsZero() {
			return missingField("rent.partner_investment.land_price_per_sqm")
		}
		if p.BuiltUpAreaSize.IsZero() {
			return missingField("rent.partner_investment.built_up_area_size")
		}
		if p.ConstructionCostPerSqm.IsZero() {
			return missingField("rent.partner_investment.construction_cost_per_sqm")
		}
		if p.YieldRate.IsZero() {
			return missingField("rent.partner_investment.yield_rate")
		}
		if p.FrequencyYears <= 0 {
			return invalidField("rent.partner_investment.frequency_years", "must be positive")
		}
	default:
		return invalidField("rent.model", fmt.Sprintf("unknown rent model %q", in.Rent.Model))
	}
	return nil
}

func (in *CalculationEngineInput) validateEnrollment() error {
	e := in.Dynamic.Enrollment
	if e.TargetStudents <= 0 {
		return invalidField("dynamic.enrollment.target_students", "must be positive")
	}
	switch e.Mode {
	case RampExplicit:
		// Wrong-length ramp arrays are rejected, never silently truncated.
		if len(e.RampPercents) != in.ContractYears {
			return invalidField("dynamic.enrollment.ramp_percents",
				fmt.Sprintf("must have exactly %d entries (one per dynamic year), got %d",
					in.ContractYears, len(e.RampPercents)))
		}
	case RampLinear:
		if e.RampStartYear <= 0 || e.RampEndYear < e.RampStartYear {
			return invalidField("dynamic.enrollment.ramp_start_year",
				"linear ramp requires 1 <= ramp_start_year <= ramp_end_year")
		}
		if e.RampEndYear > in.ContractYears {
			return invalidField("dynamic.enrollment.ramp_end_year",
				fmt.Sprintf("must not exceed contract length %d", in.ContractYears))
		}
	default:
		return invalidField("dynamic.enrollment.mode", fmt.Sprintf("unknown ramp mode %q", e.Mode))
	}

	if sec := in.Dynamic.SecondaryCurriculum; sec != nil {
		if sec.StartYear <= 0 || sec.StartYear > in.ContractYears {
			return invalidField("dynamic.secondary_curriculum.start_year",
				fmt.Sprintf("must be within 1..%d", in.ContractYears))
		}
		if sec.StudentShare.IsNegative() || sec.StudentShare.GreaterThan(oneAmount) {
			return invalidField("dynamic.secondary_curriculum.student_share", "must be in [0, 1]")
		}
	}
	return nil
}

func (in *CalculationEngineInput) validateStaff() error {
	s := in.Dynamic.Staff
	switch s.Mode {
	case StaffRatioOfRevenue:
		if s.RevenueRatio.IsZero() {
			return missingField("dynamic.staff.revenue_ratio")
		}
	case StaffHeadcount:
		if s.StudentsPerTeacher.IsZero() {
			return missingField("dynamic.staff.students_per_teacher")
		}
		if s.StudentsPerAdmin.IsZero() {
			return missingField("dynamic.staff.students_per_admin")
		}
		if s.AverageTeacherSalary.IsZero() {
			return missingField("dynamic.staff.average_teacher_salary")
		}
		if s.AverageAdminSalary.IsZero() {
			return missingField("dynamic.staff.average_admin_salary")
		}
	default:
		return invalidField("dynamic.staff.mode", fmt.Sprintf("unknown staff cost mode %q", s.Mode))
	}
	return nil
}

func (in *CalculationEngineInput) validateCapEx() error {
	names := make(map[string]bool, len(in.CapEx.Categories))
	for i, c := range in.CapEx.Categories {
		if c.Name == "" {
			return missingField(fmt.Sprintf("capex.categories[%d].name", i))
		}
		if names[c.Name] {
			return invalidField(fmt.Sprintf("capex.categories[%d].name", i),
				fmt.Sprintf("duplicate category %q", c.Name))
		}
		names[c.Name] = true
		if c.UsefulLifeYears <= 0 {
			return invalidField(fmt.Sprintf("capex.categories[%d].useful_life_years", i), "must be positive")
		}
		if c.AutoReinvest {
			if c.ReinvestEvery <= 0 {
				return invalidField(fmt.Sprintf("capex.categories[%d].reinvest_every_years", i),
					"auto-reinvestment requires a positive cadence")
			}
			if c.ReinvestAmount.IsZero() {
				return missingField(fmt.Sprintf("capex.categories[%d].reinvest_amount", i))
			}
		}
	}

	// Manual transition entries must reference catalog categories.
	for yi, ty := range in.Transition.Years {
		for ei, e := range ty.CapExEntries {
			if !names[e.Category] {
				return invalidField(
					fmt.Sprintf("transition.years[%d].capex_entries[%d].category", yi, ei),
					fmt.Sprintf("unknown CapEx category %q", e.Category))
			}
		}
	}
	return nil
}

var oneAmount = money.FromInt(1)
