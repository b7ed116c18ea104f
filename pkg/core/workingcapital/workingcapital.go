// Package workingcapital derives the five working-capital ratios (plus the
// other-revenue ratio) from the final historical year and freezes them. Every
// projected year applies the same locked ratios; the model is deliberately
// ratio-constant, with no per-year drift. The ratios are an explicit frozen
// value object produced once per run, so concurrent runs with different
// historical baselines never interfere.
package workingcapital

import (
	"fmt"

	"lease_proforma/pkg/core/money"
)

// Ratios is the locked set of working-capital ratios.
type Ratios struct {
	ARToRevenue       money.Amount `json:"ar_to_revenue"`
	PrepaidToOpex     money.Amount `json:"prepaid_to_opex"`
	APToOpex          money.Amount `json:"ap_to_opex"`
	AccruedToOpex     money.Amount `json:"accrued_to_opex"`
	DeferredToRevenue money.Amount `json:"deferred_to_revenue"`
	OtherToTuition    money.Amount `json:"other_to_tuition"`

	Locked bool `json:"locked"`
}

// Baseline is the final historical year's actuals the ratios derive from.
type Baseline struct {
	TuitionRevenue     money.Amount
	TotalRevenue       money.Amount
	TotalOpex          money.Amount
	OtherRevenue       money.Amount
	AccountsReceivable money.Amount
	Prepaid            money.Amount
	AccountsPayable    money.Amount
	AccruedLiabilities money.Amount
	DeferredRevenue    money.Amount
}

// Derive computes the ratios from the baseline and locks them.
func Derive(b Baseline) (Ratios, error) {
	if !b.TotalRevenue.IsPositive() {
		return Ratios{}, fmt.Errorf("working capital baseline: total revenue must be positive, got %s", b.TotalRevenue)
	}
	if !b.TotalOpex.IsPositive() {
		return Ratios{}, fmt.Errorf("working capital baseline: total opex must be positive, got %s", b.TotalOpex)
	}

	return Ratios{
		ARToRevenue:       b.AccountsReceivable.Div(b.TotalRevenue),
		PrepaidToOpex:     b.Prepaid.Div(b.TotalOpex),
		APToOpex:          b.AccountsPayable.Div(b.TotalOpex),
		AccruedToOpex:     b.AccruedLiabilities.Div(b.TotalOpex),
		DeferredToRevenue: b.DeferredRevenue.Div(b.TotalRevenue),
		OtherToTuition:    b.OtherRevenue.Div(b.TuitionRevenue),
		Locked:            true,
	}, nil
}

// Balances are one projected year's working-capital balance sheet lines.
type Balances struct {
	AccountsReceivable money.Amount
	Prepaid            money.Amount
	AccountsPayable    money.Amount
	AccruedLiabilities money.Amount
	DeferredRevenue    money.Amount
}

// Apply converts a year's revenue and opex into working-capital balances.
func (r Ratios) Apply(totalRevenue, totalOpex money.Amount) Balances {
	return Balances{
		AccountsReceivable: r.ARToRevenue.Mul(totalRevenue),
		Prepaid:            r.PrepaidToOpex.Mul(totalOpex),
		AccountsPayable:    r.APToOpex.Mul(totalOpex),
		AccruedLiabilities: r.AccruedToOpex.Mul(totalOpex),
		DeferredRevenue:    r.DeferredToRevenue.Mul(totalRevenue),
	}
}

// OtherRevenue projects other revenue from tuition revenue.
func (r Ratios) OtherRevenue(tuitionRevenue money.Amount) money.Amount {
	return r.OtherToTuition.Mul(tuitionRevenue)
}
