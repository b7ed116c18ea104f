// Package engine orchestrates one complete projection run: historical
// restatement, the three transition years, the dynamic contract period, and
// the closing summary block. The engine is pure with respect to its input
// snapshot; the same CalculationEngineInput always yields the same output.
package engine

import (
	"fmt"
	"log"
	"time"

	"lease_proforma/pkg/core/capex"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/metrics"
	"lease_proforma/pkg/core/money"
	"lease_proforma/pkg/core/periods"
	"lease_proforma/pkg/core/solver"
	"lease_proforma/pkg/core/statements"
	"lease_proforma/pkg/core/workingcapital"
)

// ValidationSummary aggregates the per-period checks for the whole run.
type ValidationSummary struct {
	AllBalanceSheetsBalanced bool         `json:"all_balance_sheets_balanced"`
	AllCashFlowsReconciled   bool         `json:"all_cash_flows_reconciled"`
	AllPeriodsConverged      bool         `json:"all_periods_converged"`
	WorstBalanceGap          money.Amount `json:"worst_balance_gap"`
	WorstReconciliationGap   money.Amount `json:"worst_reconciliation_gap"`
}

// PerformanceSummary records run timing and solver effort.
type PerformanceSummary struct {
	ElapsedMilliseconds     int64   `json:"elapsed_milliseconds"`
	TotalSolverIterations   int     `json:"total_solver_iterations"`
	AverageSolverIterations float64 `json:"average_solver_iterations"`
}

// CalculationEngineOutput is the complete result of one run.
type CalculationEngineOutput struct {
	Periods              []statements.FinancialPeriod `json:"periods"`
	Summary              metrics.Summary              `json:"summary"`
	WorkingCapitalRatios workingcapital.Ratios        `json:"working_capital_ratios"`
	Validation           ValidationSummary            `json:"validation"`
	Performance          PerformanceSummary           `json:"performance"`
}

// Run executes the full projection for one input snapshot.
func Run(input config.CalculationEngineInput) (*CalculationEngineOutput, error) {
	start := time.Now()

	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("engine input: %w", err)
	}

	ratios, err := lockRatios(input)
	if err != nil {
		return nil, fmt.Errorf("engine input: %w", err)
	}

	lastHistorical := input.HistoricalYears[len(input.HistoricalYears)-1]
	firstProjectionYear := lastHistorical.Year + 1
	transitionLen := len(input.Transition.Years)
	lastProjectionYear := firstProjectionYear + transitionLen + input.ContractYears - 1

	manualCapEx := make(map[int][]config.CapExEntry)
	for i, ty := range input.Transition.Years {
		if len(ty.CapExEntries) > 0 {
			manualCapEx[firstProjectionYear+i] = ty.CapExEntries
		}
	}
	capexEngine := capex.NewEngine(input.CapEx, manualCapEx, firstProjectionYear, lastProjectionYear)

	log.Printf("[ENGINE] run start: %d historical, %d transition, %d dynamic years (%d-%d)",
		len(input.HistoricalYears), transitionLen, input.ContractYears,
		input.HistoricalYears[0].Year, lastProjectionYear)

	allPeriods := make([]statements.FinancialPeriod, 0,
		len(input.HistoricalYears)+transitionLen+input.ContractYears)

	var priorRecord *config.HistoricalYearRecord
	for i := range input.HistoricalYears {
		rec := input.HistoricalYears[i]
		allPeriods = append(allPeriods, periods.HistoricalPeriod(rec, priorRecord))
		priorRecord = &input.HistoricalYears[i]
	}

	opening := openingFromHistorical(lastHistorical)
	prior := priorFromHistorical(lastHistorical)

	unconverged := 0
	for i, assumption := range input.Transition.Years {
		year := firstProjectionYear + i
		ctx := periods.TransitionContext{
			Year:       year,
			YearIndex:  i + 1,
			Assumption: assumption,
			Prefill:    input.Transition.PrefillGrowthRate,
			Rent:       input.Rent,
			Ratios:     ratios,
			CapEx:      capexEngine.ForYear(year),
			Prior:      prior,
		}
		draft := periods.TransitionDraft(ctx)
		fin := solver.Solve(draft, opening, input.System, input.Solver)
		period := statements.AssemblePeriod(draft, opening, fin)
		if !period.Converged {
			unconverged++
		}

		allPeriods = append(allPeriods, period)
		opening = nextOpening(opening, draft, fin)
		prior = periods.PriorFromPL(period.ProfitLoss)
	}

	for d := 1; d <= input.ContractYears; d++ {
		year := firstProjectionYear + transitionLen + d - 1
		ctx := periods.DynamicContext{
			Year:        year,
			DynamicYear: d,
			YearIndex:   transitionLen + d,
			Cfg:         input.Dynamic,
			Rent:        input.Rent,
			Ratios:      ratios,
			CapEx:       capexEngine.ForYear(year),
		}
		draft := periods.DynamicDraft(ctx)
		fin := solver.Solve(draft, opening, input.System, input.Solver)
		period := statements.AssemblePeriod(draft, opening, fin)
		if !period.Converged {
			unconverged++
		}

		allPeriods = append(allPeriods, period)
		opening = nextOpening(opening, draft, fin)
	}

	out := &CalculationEngineOutput{
		Periods:              allPeriods,
		Summary:              metrics.Compute(allPeriods, input.System.DiscountRate),
		WorkingCapitalRatios: ratios,
		Validation:           validateRun(allPeriods),
		Performance:          measureRun(allPeriods, time.Since(start)),
	}

	log.Printf("[ENGINE] run done in %dms: %d periods, %d unconverged, balanced=%v reconciled=%v",
		out.Performance.ElapsedMilliseconds, len(allPeriods), unconverged,
		out.Validation.AllBalanceSheetsBalanced, out.Validation.AllCashFlowsReconciled)

	return out, nil
}

// lockRatios either derives the working-capital ratios from the final
// historical year or accepts the caller's pre-computed overrides.
func lockRatios(input config.CalculationEngineInput) (workingcapital.Ratios, error) {
	if o := input.WorkingCapital; o != nil {
		return workingcapital.Ratios{
			ARToRevenue:       o.ARToRevenue,
			PrepaidToOpex:     o.PrepaidToOpex,
			APToOpex:          o.APToOpex,
			AccruedToOpex:     o.AccruedToOpex,
			DeferredToRevenue: o.DeferredToRevenue,
			OtherToTuition:    o.OtherToTuition,
			Locked:            true,
		}, nil
	}

	last := input.HistoricalYears[len(input.HistoricalYears)-1]
	totalRevenue := last.TuitionRevenue.Add(last.OtherRevenue)
	totalOpex := money.Sum(last.RentExpense, last.StaffCosts, last.OtherOpex)
	return workingcapital.Derive(workingcapital.Baseline{
		TuitionRevenue:     last.TuitionRevenue,
		TotalRevenue:       totalRevenue,
		TotalOpex:          totalOpex,
		OtherRevenue:       last.OtherRevenue,
		AccountsReceivable: last.AccountsReceivable,
		Prepaid:            last.Prepaid,
		AccountsPayable:    last.AccountsPayable,
		AccruedLiabilities: last.AccruedLiabilities,
		DeferredRevenue:    last.DeferredRevenue,
	})
}

// openingFromHistorical converts the final historical actuals into the
// opening state the first transition year solves from.
func openingFromHistorical(rec config.HistoricalYearRecord) statements.OpeningState {
	netInterest := rec.InterestExpense.Sub(rec.InterestIncome)
	ebitda := rec.TuitionRevenue.Add(rec.OtherRevenue).
		Sub(money.Sum(rec.RentExpense, rec.StaffCosts, rec.OtherOpex))
	netIncome := ebitda.Sub(rec.Depreciation).Sub(netInterest).Sub(rec.ZakatExpense)

	return statements.OpeningState{
		Cash:             rec.Cash,
		DebtBalance:      rec.DebtBalance,
		RetainedEarnings: rec.OpeningRetainedEarnings.Add(netIncome),

		AccountsReceivable: rec.AccountsReceivable,
		Prepaid:            rec.Prepaid,
		AccountsPayable:    rec.AccountsPayable,
		AccruedLiabilities: rec.AccruedLiabilities,
		DeferredRevenue:    rec.DeferredRevenue,
	}
}

func priorFromHistorical(rec config.HistoricalYearRecord) periods.PriorFigures {
	return periods.PriorFigures{
		TuitionRevenue: rec.TuitionRevenue,
		OtherRevenue:   rec.OtherRevenue,
		RentExpense:    rec.RentExpense,
		StaffCosts:     rec.StaffCosts,
		OtherOpex:      rec.OtherOpex,
	}
}

// nextOpening rolls one solved year's closing position into the next year's
// opening state.
func nextOpening(opening statements.OpeningState, draft statements.Draft, fin statements.CircularSolverResult) statements.OpeningState {
	return statements.OpeningState{
		Cash:             fin.EndingCash,
		DebtBalance:      fin.DebtBalance,
		RetainedEarnings: opening.RetainedEarnings.Add(fin.NetIncome),

		AccountsReceivable: draft.AccountsReceivable,
		Prepaid:            draft.Prepaid,
		AccountsPayable:    draft.AccountsPayable,
		AccruedLiabilities: draft.AccruedLiabilities,
		DeferredRevenue:    draft.DeferredRevenue,
	}
}

func validateRun(all []statements.FinancialPeriod) ValidationSummary {
	v := ValidationSummary{
		AllBalanceSheetsBalanced: true,
		AllCashFlowsReconciled:   true,
		AllPeriodsConverged:      true,
	}
	for _, p := range all {
		if !p.BalanceSheetBalanced {
			v.AllBalanceSheetsBalanced = false
		}
		if !p.CashFlowReconciled {
			v.AllCashFlowsReconciled = false
		}
		if !p.Converged {
			v.AllPeriodsConverged = false
		}
		v.WorstBalanceGap = money.Max(v.WorstBalanceGap, p.BalanceGap.Abs())
		v.WorstReconciliationGap = money.Max(v.WorstReconciliationGap, p.ReconciliationGap.Abs())
	}
	return v
}

func measureRun(all []statements.FinancialPeriod, elapsed time.Duration) PerformanceSummary {
	perf := PerformanceSummary{ElapsedMilliseconds: elapsed.Milliseconds()}
	solved := 0
	for _, p := range all {
		if p.PeriodType == statements.PeriodHistorical {
			continue
		}
		solved++
		perf.TotalSolverIterations += p.IterationsRequired
	}
	if solved > 0 {
		perf.AverageSolverIterations = float64(perf.TotalSolverIterations) / float64(solved)
	}
	return perf
}
