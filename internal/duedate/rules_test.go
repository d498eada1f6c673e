package duedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compute(t *testing.T, service, step string, anchor time.Time) time.Time {
	t.Helper()
	due := NewEngine(nil).ComputeDueDate(service, step, anchor)
	require.NotNil(t, due, "expected a due date for %q", service)
	return *due
}

func TestEmployeeConcernsSeverity(t *testing.T) {
	mon := date(2024, time.June, 10)
	assert.Equal(t, date(2024, time.June, 11), compute(t, "Employee Concerns", "Initial Review", mon))
	assert.Equal(t, date(2024, time.June, 12), compute(t, "Employee Concerns", "Major Escalation", mon))
	assert.Equal(t, date(2024, time.June, 12), compute(t, "Employee Concerns", "HIGH priority", mon))
}

func TestEmployeeRelationsTwelveWorkingDays(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 26), compute(t, "Employee Relations", "", date(2024, time.June, 10)))
}

func TestVacationLeaveDueBeforeRequestDate(t *testing.T) {
	// vacation leave must be filed five working days ahead, so the due
	// date precedes the request date
	assert.Equal(t, date(2024, time.June, 3), compute(t, "Timekeeping - Vacation Leave", "", date(2024, time.June, 10)))
}

func TestOvertimeStepsDisambiguated(t *testing.T) {
	mon := date(2024, time.June, 10)
	// "unplanned" contains "planned" and must win
	assert.Equal(t, date(2024, time.June, 11), compute(t, "Timekeeping - Overtime", "Unplanned OT", mon))
	assert.Equal(t, date(2024, time.June, 13), compute(t, "Timekeeping - Overtime", "Planned OT", mon))
	assert.Equal(t, date(2024, time.June, 12), compute(t, "Timekeeping - Overtime", "", mon))
}

func TestPayrollDisputeJustWordBoundary(t *testing.T) {
	mon := date(2024, time.June, 10)
	assert.Equal(t, date(2024, time.June, 11), compute(t, "Payroll Dispute", "just hired", mon))
	// "adjustment" must not trip the \bjust\b matcher
	assert.Equal(t, date(2024, time.June, 13), compute(t, "Payroll Dispute", "adjustment review", mon))
}

func TestPayrollProcessingSemiMonthly(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 17), compute(t, "Payroll Processing", "", date(2024, time.June, 5)))
	assert.Equal(t, date(2024, time.July, 2), compute(t, "Payroll Processing", "", date(2024, time.June, 20)))
}

func TestThirteenthMonthCandidates(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 1), compute(t, "13th Month Pay", "", date(2024, time.March, 1)))
	assert.Equal(t, date(2024, time.December, 1), compute(t, "13th Month Pay", "", date(2024, time.June, 2)))
}

func TestPerformanceAppraisalSteps(t *testing.T) {
	mon := date(2024, time.June, 10)
	assert.Equal(t, date(2024, time.June, 24), compute(t, "Performance Appraisal", "Managerial", mon))
	assert.Equal(t, date(2024, time.June, 17), compute(t, "Performance Appraisal", "Probationary", mon))
	assert.Equal(t, date(2024, time.June, 19), compute(t, "Performance Appraisal", "Rank and File", mon))
}

func TestManpowerRequestSteps(t *testing.T) {
	mon := date(2024, time.June, 10)
	assert.Equal(t, date(2024, time.June, 17), compute(t, "Manpower Request", "Unplanned backfill", mon))
	assert.Equal(t, date(2024, time.July, 1), compute(t, "Manpower Request", "Planned expansion", mon))
	assert.Equal(t, date(2024, time.June, 24), compute(t, "Manpower Request", "", mon))
}

func TestSpecificReportsBeatGenericMonthly(t *testing.T) {
	anchor := date(2024, time.May, 20)
	// the headcount and attrition reports are due the 5th working day of
	// the next month, not the generic monthly second working day
	assert.Equal(t, date(2024, time.June, 7), compute(t, "Headcount Monthly Report", "", anchor))
	assert.Equal(t, date(2024, time.June, 7), compute(t, "Attrition Monthly Report", "", anchor))
	assert.Equal(t, date(2024, time.June, 4), compute(t, "Monthly Report", "", anchor))
}

func TestQuarterlyReviewNextQuarter(t *testing.T) {
	assert.Equal(t, date(2024, time.July, 2), compute(t, "Quarterly Business Review", "", date(2024, time.May, 15)))
}

func TestPerformanceReviewCycleDates(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 8), compute(t, "Performance Review", "", date(2024, time.March, 1)))
	assert.Equal(t, date(2025, time.February, 8), compute(t, "Performance Review", "", date(2024, time.December, 9)))
}

func TestServiceNormalization(t *testing.T) {
	// case and whitespace differences resolve to the same rule
	a := compute(t, "  EMPLOYEE   relations ", "", date(2024, time.June, 10))
	b := compute(t, "Employee Relations", "", date(2024, time.June, 10))
	assert.Equal(t, b, a)
}

func TestNoMatchYieldsNil(t *testing.T) {
	engine := NewEngine(nil)
	assert.Nil(t, engine.ComputeDueDate("Office Plant Watering", "", date(2024, time.June, 10)))
	assert.Nil(t, engine.ComputeDueDate("", "", date(2024, time.June, 10)))
	assert.Nil(t, engine.ComputeDueDate("Employee Relations", "", time.Time{}))
}

func TestDueDateRequired(t *testing.T) {
	assert.True(t, DueDateRequired("Timekeeping - Vacation Leave"))
	assert.True(t, DueDateRequired("  payroll   PROCESSING "))
	assert.False(t, DueDateRequired("Office Plant Watering"))
}
