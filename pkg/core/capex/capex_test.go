package capex

import (
	"testing"

	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

func amt(v int64) money.Amount { return money.FromInt(v) }

func testConfig() config.CapExConfig {
	return config.CapExConfig{
		Categories: []config.CapExCategoryConfig{
			{Name: "furniture", UsefulLifeYears: 5},
			{Name: "it_equipment", UsefulLifeYears: 4, AutoReinvest: true, ReinvestEvery: 4, ReinvestStart: 2030, ReinvestAmount: amt(400_000)},
		},
		HistoricalGrossPPE:           amt(10_000_000),
		HistoricalAccumDepreciation:  amt(7_000_000),
		HistoricalAnnualDepreciation: amt(1_000_000),
	}
}

func TestVirtualAssetWindow(t *testing.T) {
	a := VirtualAsset{Category: "furniture", PurchaseYear: 2027, Amount: amt(500_000), UsefulLifeYears: 5}

	if got := a.DepreciationFor(2027); !got.IsZero() {
		t.Errorf("purchase year charge = %s, want 0", got)
	}
	if got := a.DepreciationFor(2028); !got.Equal(amt(100_000)) {
		t.Errorf("first charge = %s, want 100000", got)
	}
	if got := a.DepreciationFor(2032); !got.Equal(amt(100_000)) {
		t.Errorf("final charge = %s, want 100000", got)
	}
	if got := a.DepreciationFor(2033); !got.IsZero() {
		t.Errorf("post-window charge = %s, want 0", got)
	}
}

func TestVirtualAssetNeverOverDepreciates(t *testing.T) {
	// 100000 / 3 does not divide evenly; the final year takes the remainder.
	a := VirtualAsset{Category: "furniture", PurchaseYear: 2027, Amount: amt(100_000), UsefulLifeYears: 3}

	total := money.Zero()
	for y := 2027; y <= 2040; y++ {
		total = total.Add(a.DepreciationFor(y))
	}
	if !total.Equal(a.Amount) {
		t.Errorf("lifetime depreciation = %s, want exactly %s", total, a.Amount)
	}
	if a.AccumulatedThrough(2040).GreaterThan(a.Amount) {
		t.Error("accumulated depreciation exceeds purchase amount")
	}
}

func TestHistoricalStreamExhaustion(t *testing.T) {
	// NBV = 3,000,000 at 1,000,000/year: charges for exactly three years.
	e := NewEngine(testConfig(), nil, 2026, 2055)

	for year, want := range map[int]money.Amount{
		2026: amt(1_000_000),
		2027: amt(1_000_000),
		2028: amt(1_000_000),
		2029: money.Zero(),
		2040: money.Zero(),
	} {
		if got := e.historicalDepreciationFor(year); !got.Equal(want) {
			t.Errorf("historical depreciation %d = %s, want %s", year, got, want)
		}
	}

	// Accumulated clamps at the original gross balance.
	if got := e.historicalAccumulatedThrough(2055); !got.Equal(amt(10_000_000)) {
		t.Errorf("accumulated through 2055 = %s, want 10000000", got)
	}
}

func TestHistoricalPartialFinalYear(t *testing.T) {
	cfg := testConfig()
	cfg.HistoricalAccumDepreciation = amt(7_500_000) // NBV 2.5M, annual 1M
	e := NewEngine(cfg, nil, 2026, 2055)

	if got := e.historicalDepreciationFor(2028); !got.Equal(amt(500_000)) {
		t.Errorf("partial year = %s, want 500000", got)
	}
	if got := e.historicalDepreciationFor(2029); !got.IsZero() {
		t.Errorf("after exhaustion = %s, want 0", got)
	}
}

func TestAutoReinvestmentCadence(t *testing.T) {
	e := NewEngine(testConfig(), nil, 2026, 2040)

	var years []int
	for _, a := range e.Assets() {
		if a.Category == "it_equipment" {
			years = append(years, a.PurchaseYear)
		}
	}
	want := []int{2030, 2034, 2038}
	if len(years) != len(want) {
		t.Fatalf("reinvestment years = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Fatalf("reinvestment years = %v, want %v", years, want)
		}
	}
}

func TestDeterministicAssetOrder(t *testing.T) {
	manual := map[int][]config.CapExEntry{
		2027: {{Category: "furniture", Amount: amt(250_000)}, {Category: "it_equipment", Amount: amt(150_000)}},
		2026: {{Category: "furniture", Amount: amt(100_000)}},
	}

	a := NewEngine(testConfig(), manual, 2026, 2055)
	b := NewEngine(testConfig(), manual, 2026, 2055)

	if len(a.Assets()) != len(b.Assets()) {
		t.Fatalf("asset counts differ: %d vs %d", len(a.Assets()), len(b.Assets()))
	}
	for i := range a.Assets() {
		x, y := a.Assets()[i], b.Assets()[i]
		if x.Category != y.Category || x.PurchaseYear != y.PurchaseYear || !x.Amount.Equal(y.Amount) {
			t.Fatalf("asset %d differs between runs: %+v vs %+v", i, x, y)
		}
	}
	// Manual entries come in year order regardless of map iteration.
	if a.Assets()[0].PurchaseYear != 2026 {
		t.Errorf("first asset year = %d, want 2026", a.Assets()[0].PurchaseYear)
	}
}

func TestForYearBalances(t *testing.T) {
	manual := map[int][]config.CapExEntry{
		2026: {{Category: "furniture", Amount: amt(500_000)}},
	}
	e := NewEngine(testConfig(), manual, 2026, 2055)

	r := e.ForYear(2026)
	if !r.Spend.Equal(amt(500_000)) {
		t.Errorf("2026 spend = %s, want 500000", r.Spend)
	}
	if !r.GrossPPE.Equal(amt(10_500_000)) {
		t.Errorf("2026 gross PPE = %s, want 10500000", r.GrossPPE)
	}
	// Historical stream only in year one; the furniture starts next year.
	if !r.Depreciation.Equal(amt(1_000_000)) {
		t.Errorf("2026 depreciation = %s, want 1000000", r.Depreciation)
	}

	r27 := e.ForYear(2027)
	if !r27.Depreciation.Equal(amt(1_100_000)) {
		t.Errorf("2027 depreciation = %s, want 1100000", r27.Depreciation)
	}

	// Net PPE never negative over the whole horizon.
	for y := 2026; y <= 2055; y++ {
		ry := e.ForYear(y)
		net := ry.GrossPPE.Sub(ry.AccumulatedDepreciation)
		if net.IsNegative() {
			t.Errorf("net PPE negative in %d: %s", y, net)
		}
	}
}
