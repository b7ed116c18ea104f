package codec

import (
	"strings"
	"testing"

	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

func sampleInput() *config.CalculationEngineInput {
	growth := money.FromFloat(0.04)
	return &config.CalculationEngineInput{
		System: config.SystemConfiguration{
			ZakatRate:           money.FromFloat(0.025),
			DebtInterestRate:    money.FromFloat(0.06),
			DepositInterestRate: money.FromFloat(0.02),
			MinCashBalance:      money.FromInt(1_000_000),
			DiscountRate:        money.FromFloat(0.08),
		},
		Solver:        config.DefaultSolverTuning(),
		ContractYears: 30,
		HistoricalYears: []config.HistoricalYearRecord{
			{Year: 2024, TuitionRevenue: money.MustFromString("40000000.55"), Cash: money.FromInt(5_000_000)},
		},
		Transition: config.TransitionConfig{
			PrefillGrowthRate: money.FromFloat(0.05),
			Years: []config.TransitionYearAssumption{
				{RevenueGrowthRate: &growth},
				{},
				{},
			},
		},
		Rent: config.RentModelConfig{
			Model: config.RentFixedEscalation,
			FixedEscalation: &config.FixedEscalationParams{
				BaseRent:       money.FromInt(8_000_000),
				GrowthRate:     money.FromFloat(0.03),
				FrequencyYears: 1,
			},
		},
	}
}

func TestInputRoundTripIsLossless(t *testing.T) {
	in := sampleInput()

	data, err := EncodeInput(in)
	if err != nil {
		t.Fatalf("EncodeInput: %v", err)
	}
	back, err := DecodeInput(data)
	if err != nil {
		t.Fatalf("DecodeInput: %v", err)
	}

	if !back.HistoricalYears[0].TuitionRevenue.Equal(money.MustFromString("40000000.55")) {
		t.Fatalf("tuition revenue changed in transit: %s", back.HistoricalYears[0].TuitionRevenue)
	}
	if !back.Transition.PrefillGrowthRate.Equal(money.FromFloat(0.05)) {
		t.Fatalf("prefill rate changed in transit: %s", back.Transition.PrefillGrowthRate)
	}
	if back.Transition.Years[0].RevenueGrowthRate == nil {
		t.Fatal("set optional field decoded as nil")
	}
	if !back.Transition.Years[0].RevenueGrowthRate.Equal(money.FromFloat(0.04)) {
		t.Fatalf("growth rate changed in transit: %s", back.Transition.Years[0].RevenueGrowthRate)
	}
	if back.Transition.Years[1].RevenueGrowthRate != nil {
		t.Fatal("absent optional field decoded as non-nil")
	}
	if back.Rent.FixedEscalation == nil || !back.Rent.FixedEscalation.BaseRent.Equal(money.FromInt(8_000_000)) {
		t.Fatal("rent model params changed in transit")
	}
}

func TestMonetaryFieldsUseTaggedForm(t *testing.T) {
	data, err := EncodeInput(sampleInput())
	if err != nil {
		t.Fatalf("EncodeInput: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `{"value":"40000000.55"}`) {
		t.Fatalf("monetary field not in tagged decimal form: %s", s)
	}
	if strings.Contains(s, `"tuition_revenue":40000000.55`) {
		t.Fatal("monetary field leaked as a bare JSON number")
	}
}

func TestDecodeInputAcceptsBareNumbers(t *testing.T) {
	// Hand-written scenarios may use bare numbers; the tagged form is only
	// required on output.
	data := []byte(`{"system":{"zakat_rate":0.025,"min_cash_balance":"1000000"}}`)
	in, err := DecodeInput(data)
	if err != nil {
		t.Fatalf("DecodeInput: %v", err)
	}
	if !in.System.ZakatRate.Equal(money.FromFloat(0.025)) {
		t.Fatalf("bare number decoded as %s", in.System.ZakatRate)
	}
	if !in.System.MinCashBalance.Equal(money.FromInt(1_000_000)) {
		t.Fatalf("bare string decoded as %s", in.System.MinCashBalance)
	}
}

func TestDecodeInputRejectsGarbage(t *testing.T) {
	if _, err := DecodeInput([]byte(`{"system":`)); err == nil {
		t.Fatal("expected decode error")
	}
}
