package workingcapital

import (
	"testing"

	"lease_proforma/pkg/core/money"
)

func baseline() Baseline {
	return Baseline{
		TuitionRevenue:     money.FromInt(40_000_000),
		TotalRevenue:       money.FromInt(44_000_000),
		TotalOpex:          money.FromInt(33_000_000),
		OtherRevenue:       money.FromInt(4_000_000),
		AccountsReceivable: money.FromInt(2_200_000),
		Prepaid:            money.FromInt(660_000),
		AccountsPayable:    money.FromInt(1_650_000),
		AccruedLiabilities: money.FromInt(990_000),
		DeferredRevenue:    money.FromInt(4_400_000),
	}
}

func TestDeriveLocksRatios(t *testing.T) {
	r, err := Derive(baseline())
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !r.Locked {
		t.Error("ratios not locked after derivation")
	}
	if !r.ARToRevenue.Equal(money.MustFromString("0.05")) {
		t.Errorf("AR/revenue = %s, want 0.05", r.ARToRevenue)
	}
	if !r.DeferredToRevenue.Equal(money.MustFromString("0.1")) {
		t.Errorf("deferred/revenue = %s, want 0.1", r.DeferredToRevenue)
	}
	if !r.OtherToTuition.Equal(money.MustFromString("0.1")) {
		t.Errorf("other/tuition = %s, want 0.1", r.OtherToTuition)
	}
}

func TestDeriveRejectsZeroBaseline(t *testing.T) {
	b := baseline()
	b.TotalRevenue = money.Zero()
	if _, err := Derive(b); err == nil {
		t.Error("expected error for zero revenue baseline")
	}

	b = baseline()
	b.TotalOpex = money.Zero()
	if _, err := Derive(b); err == nil {
		t.Error("expected error for zero opex baseline")
	}
}

func TestApplyIsProportional(t *testing.T) {
	r, err := Derive(baseline())
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	bal := r.Apply(money.FromInt(88_000_000), money.FromInt(66_000_000))
	if !bal.AccountsReceivable.Equal(money.FromInt(4_400_000)) {
		t.Errorf("AR = %s, want 4400000", bal.AccountsReceivable)
	}
	if !bal.AccountsPayable.Equal(money.FromInt(3_300_000)) {
		t.Errorf("AP = %s, want 3300000", bal.AccountsPayable)
	}
	if !bal.DeferredRevenue.Equal(money.FromInt(8_800_000)) {
		t.Errorf("deferred = %s, want 8800000", bal.DeferredRevenue)
	}

	// Applying the baseline's own revenue and opex reproduces the baseline.
	self := r.Apply(baseline().TotalRevenue, baseline().TotalOpex)
	if !self.Prepaid.Equal(baseline().Prepaid) {
		t.Errorf("self-application prepaid = %s, want %s", self.Prepaid, baseline().Prepaid)
	}
}
