package periods

import (
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/money"
)

// TuitionRevenueFor splits enrollment across the active curricula and sums
// students times escalated tuition. The primary curriculum is enabled from
// dynamic year 1; the secondary one, when configured, takes its student share
// from its start year on.
func TuitionRevenueFor(primary config.CurriculumConfig, secondary *config.CurriculumConfig, students, dynamicYear int) money.Amount {
	total := money.FromInt(int64(students))

	secondaryStudents := money.Zero()
	if secondary != nil && dynamicYear >= secondary.StartYear {
		secondaryStudents = total.Mul(secondary.StudentShare)
	}
	primaryStudents := total.Sub(secondaryStudents)

	revenue := primaryStudents.Mul(curriculumTuition(primary, 1, dynamicYear))
	if secondary != nil && dynamicYear >= secondary.StartYear {
		revenue = revenue.Add(secondaryStudents.Mul(curriculumTuition(*secondary, secondary.StartYear, dynamicYear)))
	}
	return revenue
}

// curriculumTuition escalates the base tuition every frequency years from the
// curriculum's first active year.
func curriculumTuition(c config.CurriculumConfig, activeFromYear, dynamicYear int) money.Amount {
	yearsActive := dynamicYear - activeFromYear + 1
	return c.BaseTuition.Mul(escalationFactor(c.EscalationRate, c.EscalationFrequencyYears, yearsActive))
}
