// Package periods implements the three period calculators. Each produces a
// pre-financing draft for one year: revenue and operating costs plus the
// non-debt, non-cash balance sheet lines. Interest and zakat are the solver's
// job, never computed here.
package periods

import (
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

// escalationFactor is the shared step function for periodic escalation:
// (1+rate)^floor((yearIndex-1)/frequency). Steps compound across intervals
// and stay flat within one.
func escalationFactor(rate money.Amount, frequencyYears, yearIndex int) money.Amount {
	if frequencyYears <= 0 || yearIndex <= 0 {
		return money.FromInt(1)
	}
	steps := (yearIndex - 1) / frequencyYears
	return money.FromInt(1).Add(rate).PowInt(steps)
}

// RentFor computes the active rent model's charge for one projection year.
// yearIndex is 1-based from the first projection (transition) year; the same
// index drives escalation through the whole horizon. totalRevenue is the
// year's total revenue, used only by the revenue-share model.
func RentFor(cfg config.RentModelConfig, yearIndex int, totalRevenue money.Amount) money.Amount {
	switch cfg.Model {
	case config.RentFixedEscalation:
		p := cfg.FixedEscalation
		return p.BaseRent.Mul(escalationFactor(p.GrowthRate, p.FrequencyYears, yearIndex))

	case config.RentRevenueShare:
		// Flat share of revenue, zero escalation regardless of year.
		return cfg.RevenueShare.RevenueSharePercent.Mul(totalRevenue)

	case config.RentPartnerInvestment:
		p := cfg.PartnerInvestment
		investment := PartnerInvestmentBase(p)
		escalated := investment.Mul(escalationFactor(p.GrowthRate, p.FrequencyYears, yearIndex))
		return p.YieldRate.Mul(escalated)
	}
	return money.Zero()
}

// PartnerInvestmentBase is land plus construction:
// landSize*landPrice + builtUpArea*constructionCost.
func PartnerInvestmentBase(p *config.PartnerInvestmentParams) money.Amount {
	land := p.LandSize.Mul(p.LandPricePerSqm)
	construction := p.BuiltUpAreaSize.Mul(p.ConstructionCostPerSqm)
	return land.Add(construction)
}
