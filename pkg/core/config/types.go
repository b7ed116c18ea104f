// Package config defines the immutable input snapshot for one calculation run:
// system rates, period assumptions, rent-model parameters, CapEx catalog and
// solver tuning. The engine never mutates a snapshot; concurrent runs each
// receive their own copy.
package config

import (
	"lease_proforma/pkg/core/money"
)

// RentModelType selects which of the three rent models drives the projection.
// Exactly one model's parameter block is populated per run.
type RentModelType string

const (
	RentFixedEscalation   RentModelType = "fixed_escalation"
	RentRevenueShare      RentModelType = "revenue_share"
	RentPartnerInvestment RentModelType = "partner_investment"
)

// FixedEscalationParams: base rent compounding every FrequencyYears.
type FixedEscalationParams struct {
	BaseRent       money.Amount `json:"base_rent" yaml:"base_rent"`
	GrowthRate     money.Amount `json:"growth_rate" yaml:"growth_rate"`
	FrequencyYears int          `json:"frequency_years" yaml:"frequency_years"`
}

// RevenueShareParams: flat percentage of total revenue, no escalation.
type RevenueShareParams struct {
	RevenueSharePercent money.Amount `json:"revenue_share_percent" yaml:"revenue_share_percent"`
}

// PartnerInvestmentParams: yield on total land plus construction investment,
// with the investment base itself escalating periodically. All rates are
// fractions (0.09 for 9%); whole-number legacy inputs are translated before
// they reach the engine.
type PartnerInvestmentParams struct {
	LandSize               money.Amount `json:"land_size" yaml:"land_size"`
	LandPricePerSqm        money.Amount `json:"land_price_per_sqm" yaml:"land_price_per_sqm"`
	BuiltUpAreaSize        money.Amount `json:"built_up_area_size" yaml:"built_up_area_size"`
	ConstructionCostPerSqm money.Amount `json:"construction_cost_per_sqm" yaml:"construction_cost_per_sqm"`
	YieldRate              money.Amount `json:"yield_rate" yaml:"yield_rate"`
	GrowthRate             money.Amount `json:"growth_rate" yaml:"growth_rate"`
	FrequencyYears         int          `json:"frequency_years" yaml:"frequency_years"`
}

// RentModelConfig is the tagged union of the three parameter variants.
type RentModelConfig struct {
	Model             RentModelType            `json:"model" yaml:"model"`
	FixedEscalation   *FixedEscalationParams   `json:"fixed_escalation,omitempty" yaml:"fixed_escalation,omitempty"`
	RevenueShare      *RevenueShareParams      `json:"revenue_share,omitempty" yaml:"revenue_share,omitempty"`
	PartnerInvestment *PartnerInvestmentParams `json:"partner_investment,omitempty" yaml:"partner_investment,omitempty"`
}

// SystemConfiguration holds the process-wide constants for one run.
type SystemConfiguration struct {
	ZakatRate           money.Amount `json:"zakat_rate" yaml:"zakat_rate"`
	DebtInterestRate    money.Amount `json:"debt_interest_rate" yaml:"debt_interest_rate"`
	DepositInterestRate money.Amount `json:"deposit_interest_rate" yaml:"deposit_interest_rate"`
	MinCashBalance      money.Amount `json:"min_cash_balance" yaml:"min_cash_balance"`
	DiscountRate        money.Amount `json:"discount_rate" yaml:"discount_rate"`
}

// SolverTuning controls the circular dependency solver.
type SolverTuning struct {
	MaxIterations        int          `json:"max_iterations" yaml:"max_iterations"`
	ConvergenceTolerance money.Amount `json:"convergence_tolerance" yaml:"convergence_tolerance"`
	RelaxationFactor     money.Amount `json:"relaxation_factor" yaml:"relaxation_factor"`
}

// DefaultSolverTuning returns the production defaults: 100 iterations,
// $0.01 tolerance, 0.5 relaxation.
func DefaultSolverTuning() SolverTuning {
	return SolverTuning{
		MaxIterations:        100,
		ConvergenceTolerance: money.MustFromString("0.01"),
		RelaxationFactor:     money.MustFromString("0.5"),
	}
}

// HistoricalYearRecord is one confirmed historical year. Values arrive already
// normalized and sign-corrected; the engine copies them verbatim.
type HistoricalYearRecord struct {
	Year int `json:"year" yaml:"year"`

	// Profit & Loss actuals.
	TuitionRevenue  money.Amount `json:"tuition_revenue" yaml:"tuition_revenue"`
	OtherRevenue    money.Amount `json:"other_revenue" yaml:"other_revenue"`
	RentExpense     money.Amount `json:"rent_expense" yaml:"rent_expense"`
	StaffCosts      money.Amount `json:"staff_costs" yaml:"staff_costs"`
	OtherOpex       money.Amount `json:"other_opex" yaml:"other_opex"`
	Depreciation    money.Amount `json:"depreciation" yaml:"depreciation"`
	InterestExpense money.Amount `json:"interest_expense" yaml:"interest_expense"`
	InterestIncome  money.Amount `json:"interest_income" yaml:"interest_income"`
	ZakatExpense    money.Amount `json:"zakat_expense" yaml:"zakat_expense"`

	// Balance sheet actuals.
	Cash                    money.Amount `json:"cash" yaml:"cash"`
	AccountsReceivable      money.Amount `json:"accounts_receivable" yaml:"accounts_receivable"`
	Prepaid                 money.Amount `json:"prepaid" yaml:"prepaid"`
	GrossPPE                money.Amount `json:"gross_ppe" yaml:"gross_ppe"`
	AccumulatedDepreciation money.Amount `json:"accumulated_depreciation" yaml:"accumulated_depreciation"`
	AccountsPayable         money.Amount `json:"accounts_payable" yaml:"accounts_payable"`
	AccruedLiabilities      money.Amount `json:"accrued_liabilities" yaml:"accrued_liabilities"`
	DeferredRevenue         money.Amount `json:"deferred_revenue" yaml:"deferred_revenue"`
	DebtBalance             money.Amount `json:"debt_balance" yaml:"debt_balance"`
	OpeningRetainedEarnings money.Amount `json:"opening_retained_earnings" yaml:"opening_retained_earnings"`
}

// TransitionYearAssumption holds the manually configured figures for one of
// the three transition years. Nil pointer fields fall back to the pre-fill
// rule (prior year times one plus the pre-fill growth rate).
type TransitionYearAssumption struct {
	StudentCount      *int          `json:"student_count,omitempty" yaml:"student_count,omitempty"`
	AverageTuition    *money.Amount `json:"average_tuition,omitempty" yaml:"average_tuition,omitempty"`
	RevenueGrowthRate *money.Amount `json:"revenue_growth_rate,omitempty" yaml:"revenue_growth_rate,omitempty"`
	OtherRevenue      *money.Amount `json:"other_revenue,omitempty" yaml:"other_revenue,omitempty"`
	StaffCosts        *money.Amount `json:"staff_costs,omitempty" yaml:"staff_costs,omitempty"`
	OtherOpex         *money.Amount `json:"other_opex,omitempty" yaml:"other_opex,omitempty"`

	// Manual capital spending entered for this year, by category name.
	CapExEntries []CapExEntry `json:"capex_entries,omitempty" yaml:"capex_entries,omitempty"`
}

// CapExEntry is one manual purchase in a transition year.
type CapExEntry struct {
	Category string       `json:"category" yaml:"category"`
	Amount   money.Amount `json:"amount" yaml:"amount"`
}

// TransitionConfig covers the fixed three-year transition window.
type TransitionConfig struct {
	PrefillGrowthRate money.Amount               `json:"prefill_growth_rate" yaml:"prefill_growth_rate"`
	Years             []TransitionYearAssumption `json:"years" yaml:"years"`
}

// RampMode selects how dynamic-period enrollment is described.
type RampMode string

const (
	RampExplicit RampMode = "explicit" // yearly percentages of target headcount
	RampLinear   RampMode = "linear"   // interpolate between start and end year
)

// EnrollmentConfig describes the dynamic-period ramp toward steady state.
type EnrollmentConfig struct {
	TargetStudents int      `json:"target_students" yaml:"target_students"`
	Mode           RampMode `json:"mode" yaml:"mode"`

	// Explicit mode: one percentage per dynamic year, as fractions of target.
	RampPercents []money.Amount `json:"ramp_percents,omitempty" yaml:"ramp_percents,omitempty"`

	// Linear mode: 1-based dynamic-year indexes.
	RampStartYear    int          `json:"ramp_start_year,omitempty" yaml:"ramp_start_year,omitempty"`
	RampEndYear      int          `json:"ramp_end_year,omitempty" yaml:"ramp_end_year,omitempty"`
	RampStartPercent money.Amount `json:"ramp_start_percent,omitempty" yaml:"ramp_start_percent,omitempty"`
}

// CurriculumConfig is one tuition curriculum. The primary curriculum is always
// enabled from dynamic year 1; a secondary curriculum starts at StartYear and
// takes StudentShare of enrollment from then on.
type CurriculumConfig struct {
	BaseTuition              money.Amount `json:"base_tuition" yaml:"base_tuition"`
	EscalationRate           money.Amount `json:"escalation_rate" yaml:"escalation_rate"`
	EscalationFrequencyYears int          `json:"escalation_frequency_years" yaml:"escalation_frequency_years"`
	StartYear                int          `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	StudentShare             money.Amount `json:"student_share,omitempty" yaml:"student_share,omitempty"`
}

// StaffCostMode selects the dynamic-period staff cost model.
type StaffCostMode string

const (
	StaffRatioOfRevenue StaffCostMode = "ratio_of_revenue"
	StaffHeadcount      StaffCostMode = "headcount"
)

// StaffCostConfig drives dynamic-period staff costs.
type StaffCostConfig struct {
	Mode StaffCostMode `json:"mode" yaml:"mode"`

	// ratio_of_revenue mode.
	RevenueRatio money.Amount `json:"revenue_ratio,omitempty" yaml:"revenue_ratio,omitempty"`

	// headcount mode.
	StudentsPerTeacher   money.Amount `json:"students_per_teacher,omitempty" yaml:"students_per_teacher,omitempty"`
	StudentsPerAdmin     money.Amount `json:"students_per_admin,omitempty" yaml:"students_per_admin,omitempty"`
	AverageTeacherSalary money.Amount `json:"average_teacher_salary,omitempty" yaml:"average_teacher_salary,omitempty"`
	AverageAdminSalary   money.Amount `json:"average_admin_salary,omitempty" yaml:"average_admin_salary,omitempty"`
	CPIRate              money.Amount `json:"cpi_rate,omitempty" yaml:"cpi_rate,omitempty"`
	CPIFrequencyYears    int          `json:"cpi_frequency_years,omitempty" yaml:"cpi_frequency_years,omitempty"`
}

// DynamicConfig covers the configurable-length dynamic period.
type DynamicConfig struct {
	Enrollment          EnrollmentConfig  `json:"enrollment" yaml:"enrollment"`
	PrimaryCurriculum   CurriculumConfig  `json:"primary_curriculum" yaml:"primary_curriculum"`
	SecondaryCurriculum *CurriculumConfig `json:"secondary_curriculum,omitempty" yaml:"secondary_curriculum,omitempty"`
	Staff               StaffCostConfig   `json:"staff" yaml:"staff"`
	OtherOpexRatio      money.Amount      `json:"other_opex_ratio" yaml:"other_opex_ratio"`
}

// CapExCategoryConfig is one entry of the read-only category catalog.
type CapExCategoryConfig struct {
	Name            string       `json:"name" yaml:"name"`
	UsefulLifeYears int          `json:"useful_life_years" yaml:"useful_life_years"`
	AutoReinvest    bool         `json:"auto_reinvest,omitempty" yaml:"auto_reinvest,omitempty"`
	ReinvestEvery   int          `json:"reinvest_every_years,omitempty" yaml:"reinvest_every_years,omitempty"`
	ReinvestStart   int          `json:"reinvest_start_year,omitempty" yaml:"reinvest_start_year,omitempty"`
	ReinvestAmount  money.Amount `json:"reinvest_amount,omitempty" yaml:"reinvest_amount,omitempty"`
}

// CapExConfig combines the category catalog with the carried historical
// depreciation stream.
type CapExConfig struct {
	Categories []CapExCategoryConfig `json:"categories" yaml:"categories"`

	// The historical stream: fixed annual amount continuing until the
	// remaining net book value is exhausted.
	HistoricalGrossPPE           money.Amount `json:"historical_gross_ppe" yaml:"historical_gross_ppe"`
	HistoricalAccumDepreciation  money.Amount `json:"historical_accum_depreciation" yaml:"historical_accum_depreciation"`
	HistoricalAnnualDepreciation money.Amount `json:"historical_annual_depreciation" yaml:"historical_annual_depreciation"`
}

// WorkingCapitalRatioOverrides optionally supplies pre-computed locked ratios.
// When nil the engine derives them from the final historical year.
type WorkingCapitalRatioOverrides struct {
	ARToRevenue       money.Amount `json:"ar_to_revenue" yaml:"ar_to_revenue"`
	PrepaidToOpex     money.Amount `json:"prepaid_to_opex" yaml:"prepaid_to_opex"`
	APToOpex          money.Amount `json:"ap_to_opex" yaml:"ap_to_opex"`
	AccruedToOpex     money.Amount `json:"accrued_to_opex" yaml:"accrued_to_opex"`
	DeferredToRevenue money.Amount `json:"deferred_to_revenue" yaml:"deferred_to_revenue"`
	OtherToTuition    money.Amount `json:"other_to_tuition" yaml:"other_to_tuition"`
}

// CalculationEngineInput is the complete immutable snapshot for one run.
type CalculationEngineInput struct {
	System          SystemConfiguration           `json:"system" yaml:"system"`
	Solver          SolverTuning                  `json:"solver" yaml:"solver"`
	ContractYears   int                           `json:"contract_years" yaml:"contract_years"`
	HistoricalYears []HistoricalYearRecord        `json:"historical_years" yaml:"historical_years"`
	Transition      TransitionConfig              `json:"transition" yaml:"transition"`
	Dynamic         DynamicConfig                 `json:"dynamic" yaml:"dynamic"`
	CapEx           CapExConfig                   `json:"capex" yaml:"capex"`
	Rent            RentModelConfig               `json:"rent" yaml:"rent"`
	WorkingCapital  *WorkingCapitalRatioOverrides `json:"working_capital,omitempty" yaml:"working_capital,omitempty"`
}

// SupportedContractYears lists the two contract length selectors.
var SupportedContractYears = []int{25, 30}
