package periods

import (
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

// StudentsFor returns the enrolled headcount for a dynamic year (1-based
// within the dynamic period), capped at the steady-state target.
func StudentsFor(cfg config.EnrollmentConfig, dynamicYear int) int {
	target := money.FromInt(int64(cfg.TargetStudents))

	var pct money.Amount
	switch cfg.Mode {
	case config.RampExplicit:
		if dynamicYear < 1 || dynamicYear > len(cfg.RampPercents) {
			return 0
		}
		pct = cfg.RampPercents[dynamicYear-1]

	case config.RampLinear:
		pct = linearRampPercent(cfg, dynamicYear)

	default:
		return 0
	}

	students := target.Mul(pct)
	capped := money.Min(students, target)
	return int(capped.Decimal().Round(0).IntPart())
}

// linearRampPercent interpolates from RampStartPercent at RampStartYear to
// 100% at RampEndYear, flat on both sides.
func linearRampPercent(cfg config.EnrollmentConfig, dynamicYear int) money.Amount {
	one := money.FromInt(1)
	if dynamicYear <= cfg.RampStartYear {
		return cfg.RampStartPercent
	}
	if dynamicYear >= cfg.RampEndYear {
		return one
	}
	span := money.FromInt(int64(cfg.RampEndYear - cfg.RampStartYear))
	progress := money.FromInt(int64(dynamicYear - cfg.RampStartYear)).Div(span)
	return cfg.RampStartPercent.Add(one.Sub(cfg.RampStartPercent).Mul(progress))
}
