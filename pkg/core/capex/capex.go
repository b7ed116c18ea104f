// Package capex tracks capital spending and the two depreciation streams: the
// inherited historical stream (a fixed annual amount continuing until the
// original net book value is exhausted) and the virtual assets created per
// spending category. The streams stay separate and are only summed at the
// reporting boundary.
package capex

import (
	"sort"

	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

// VirtualAsset is one purchase event, created either by a manual transition
// entry or by auto-reinvestment in the dynamic period. Depreciation is
// straight-line over the useful life starting the year after purchase.
type VirtualAsset struct {
	Category        string       `json:"category"`
	PurchaseYear    int          `json:"purchase_year"`
	Amount          money.Amount `json:"amount"`
	UsefulLifeYears int          `json:"useful_life_years"`
}

// annualDepreciation is the rounded straight-line charge; the final year of
// the window takes the remainder so accumulated depreciation lands exactly on
// the purchase amount.
func (a VirtualAsset) annualDepreciation() money.Amount {
	return a.Amount.Div(money.FromInt(int64(a.UsefulLifeYears))).Round2()
}

// DepreciationFor returns this asset's charge in the given calendar year.
func (a VirtualAsset) DepreciationFor(year int) money.Amount {
	firstYear := a.PurchaseYear + 1
	lastYear := a.PurchaseYear + a.UsefulLifeYears
	if year < firstYear || year > lastYear {
		return money.Zero()
	}
	annual := a.annualDepreciation()
	if year == lastYear {
		priorYears := money.FromInt(int64(a.UsefulLifeYears - 1))
		return a.Amount.Sub(annual.Mul(priorYears))
	}
	return annual
}

// AccumulatedThrough sums this asset's depreciation over all years <= year.
func (a VirtualAsset) AccumulatedThrough(year int) money.Amount {
	total := money.Zero()
	for y := a.PurchaseYear + 1; y <= year && y <= a.PurchaseYear+a.UsefulLifeYears; y++ {
		total = total.Add(a.DepreciationFor(y))
	}
	return total
}

// YearResult is the CapEx view of a single year handed to the period draft.
type YearResult struct {
	Spend                   money.Amount
	Depreciation            money.Amount
	GrossPPE                money.Amount
	AccumulatedDepreciation money.Amount
}

// Engine produces the CapEx lines for any projection year. All assets are
// synthesized up front from configuration, in (year, configured category
// order), so identical configuration always yields the identical asset list.
type Engine struct {
	cfg config.CapExConfig

	firstProjectionYear int
	assets              []VirtualAsset
}

// NewEngine builds the asset list for the projection range.
// manualByYear holds the transition-period entries keyed by calendar year;
// auto-reinvestment synthesizes further assets across the whole range.
func NewEngine(cfg config.CapExConfig, manualByYear map[int][]config.CapExEntry, firstProjectionYear, lastProjectionYear int) *Engine {
	e := &Engine{cfg: cfg, firstProjectionYear: firstProjectionYear}

	lives := make(map[string]int, len(cfg.Categories))
	for _, c := range cfg.Categories {
		lives[c.Name] = c.UsefulLifeYears
	}

	manualYears := make([]int, 0, len(manualByYear))
	for y := range manualByYear {
		manualYears = append(manualYears, y)
	}
	sort.Ints(manualYears)
	for _, y := range manualYears {
		for _, entry := range manualByYear[y] {
			e.assets = append(e.assets, VirtualAsset{
				Category:        entry.Category,
				PurchaseYear:    y,
				Amount:          entry.Amount,
				UsefulLifeYears: lives[entry.Category],
			})
		}
	}

	for year := firstProjectionYear; year <= lastProjectionYear; year++ {
		for _, c := range cfg.Categories {
			if !c.AutoReinvest || year < c.ReinvestStart {
				continue
			}
			if (year-c.ReinvestStart)%c.ReinvestEvery != 0 {
				continue
			}
			e.assets = append(e.assets, VirtualAsset{
				Category:        c.Name,
				PurchaseYear:    year,
				Amount:          c.ReinvestAmount,
				UsefulLifeYears: c.UsefulLifeYears,
			})
		}
	}

	return e
}

// Assets exposes the synthesized asset list in generation order.
func (e *Engine) Assets() []VirtualAsset { return e.assets }

// historicalNetBookValue is the carried NBV at the start of the projection.
func (e *Engine) historicalNetBookValue() money.Amount {
	return e.cfg.HistoricalGrossPPE.Sub(e.cfg.HistoricalAccumDepreciation)
}

// historicalDepreciationFor returns the historical stream's charge in a year:
// the fixed annual amount, clamped to the remaining net book value, zero once
// exhausted.
func (e *Engine) historicalDepreciationFor(year int) money.Amount {
	annual := e.cfg.HistoricalAnnualDepreciation
	if !annual.IsPositive() {
		return money.Zero()
	}
	taken := money.Zero()
	for y := e.firstProjectionYear; y < year; y++ {
		taken = taken.Add(money.Min(annual, e.historicalNetBookValue().Sub(taken)))
	}
	return money.Floor0(money.Min(annual, e.historicalNetBookValue().Sub(taken)))
}

// historicalAccumulatedThrough sums the historical stream's charges up to and
// including the given year, on top of the inherited accumulated balance.
func (e *Engine) historicalAccumulatedThrough(year int) money.Amount {
	taken := money.Zero()
	for y := e.firstProjectionYear; y <= year; y++ {
		taken = taken.Add(money.Floor0(money.Min(e.cfg.HistoricalAnnualDepreciation, e.historicalNetBookValue().Sub(taken))))
	}
	return e.cfg.HistoricalAccumDepreciation.Add(taken)
}

// ForYear reports spend, depreciation expense and the PP&E balances for one
// projection year. Pure function of configuration and year.
func (e *Engine) ForYear(year int) YearResult {
	spend := money.Zero()
	purchasesToDate := money.Zero()
	virtualDep := money.Zero()
	virtualAccum := money.Zero()

	for _, a := range e.assets {
		if a.PurchaseYear == year {
			spend = spend.Add(a.Amount)
		}
		if a.PurchaseYear <= year {
			purchasesToDate = purchasesToDate.Add(a.Amount)
		}
		virtualDep = virtualDep.Add(a.DepreciationFor(year))
		virtualAccum = virtualAccum.Add(a.AccumulatedThrough(year))
	}

	histDep := e.historicalDepreciationFor(year)
	gross := e.cfg.HistoricalGrossPPE.Add(purchasesToDate)
	accum := e.historicalAccumulatedThrough(year).Add(virtualAccum)

	return YearResult{
		Spend:                   spend,
		Depreciation:            histDep.Add(virtualDep),
		GrossPPE:                gross,
		AccumulatedDepreciation: accum,
	}
}
