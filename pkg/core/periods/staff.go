package periods

import (
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

// StaffCostsFor computes dynamic-period staff costs: either a flat ratio of
// revenue, or headcounts derived from student-to-staff ratios priced at
// average salaries with periodic CPI escalation.
func StaffCostsFor(cfg config.StaffCostConfig, students int, totalRevenue money.Amount, dynamicYear int) money.Amount {
	switch cfg.Mode {
	case config.StaffRatioOfRevenue:
		return cfg.RevenueRatio.Mul(totalRevenue)

	case config.StaffHeadcount:
		studentCount := money.FromInt(int64(students))
		teachers := ceilCount(studentCount.Div(cfg.StudentsPerTeacher))
		admins := ceilCount(studentCount.Div(cfg.StudentsPerAdmin))

		cpi := escalationFactor(cfg.CPIRate, cfg.CPIFrequencyYears, dynamicYear)
		teacherCost := teachers.Mul(cfg.AverageTeacherSalary).Mul(cpi)
		adminCost := admins.Mul(cfg.AverageAdminSalary).Mul(cpi)
		return teacherCost.Add(adminCost)
	}
	return money.Zero()
}

// ceilCount rounds a fractional headcount up to whole staff.
func ceilCount(a money.Amount) money.Amount {
	return money.FromDecimal(a.Decimal().Ceil())
}
