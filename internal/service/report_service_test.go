package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

func tp(t time.Time) *time.Time { return &t }

func TestClassifyClosedRecords(t *testing.T) {
	svc := NewReportService()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	closedEarly := &domain.RequestRecord{
		Status:  domain.StatusCompleted,
		DueDate: &due,
		End:     tp(due.Add(-24 * time.Hour)),
	}
	assert.Equal(t, ClassClosedWithin, svc.Classify(closedEarly, now))

	closedLate := &domain.RequestRecord{
		Status:  domain.StatusCompleted,
		DueDate: &due,
		End:     tp(due.Add(time.Hour)),
	}
	assert.Equal(t, ClassClosedExceeded, svc.Classify(closedLate, now))
}

func TestClassifyClosedWithoutDueDateFallsBackToTatCeiling(t *testing.T) {
	svc := NewReportService()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	under := &domain.RequestRecord{Status: domain.StatusCompleted, End: tp(now), TatMinutes: 47 * 60}
	assert.Equal(t, ClassClosedWithin, svc.Classify(under, now))

	over := &domain.RequestRecord{Status: domain.StatusCompleted, End: tp(now), TatMinutes: 49 * 60}
	assert.Equal(t, ClassClosedExceeded, svc.Classify(over, now))
}

func TestClassifyOpenRecordsAgainstDueDate(t *testing.T) {
	svc := NewReportService()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	comfortably := &domain.RequestRecord{Status: domain.StatusOpen, DueDate: tp(now.Add(72 * time.Hour))}
	assert.Equal(t, ClassOpenWithin, svc.Classify(comfortably, now))

	approaching := &domain.RequestRecord{Status: domain.StatusOpen, DueDate: tp(now.Add(12 * time.Hour))}
	assert.Equal(t, ClassReminderDue, svc.Classify(approaching, now))

	overdue := &domain.RequestRecord{Status: domain.StatusOpen, DueDate: tp(now.Add(-time.Hour))}
	assert.Equal(t, ClassOpenExceeded, svc.Classify(overdue, now))
}

func TestClassifyOpenWithoutDueDateUsesEffectiveTat(t *testing.T) {
	svc := NewReportService()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	// active window extends the accumulated TAT to now
	active := &domain.RequestRecord{
		Status:     domain.StatusInProgress,
		Start:      tp(now.Add(-50 * time.Hour)),
		TatMinutes: 0,
	}
	assert.Equal(t, ClassOpenExceeded, svc.Classify(active, now))

	// paused records only count banked minutes
	paused := &domain.RequestRecord{
		Status:     domain.StatusPaused,
		Start:      tp(now.Add(-100 * time.Hour)),
		TatMinutes: 60,
	}
	assert.Equal(t, ClassOpenWithin, svc.Classify(paused, now))
}

func TestClassifyForReportingAggregates(t *testing.T) {
	svc := NewReportService()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	due := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	records := []domain.RequestRecord{
		{
			RequestID: "ITM-7-0001", Company: domain.UnitITAM,
			Service: "Payroll Dispute", ProcessStep: "Review",
			Status: domain.StatusCompleted, DueDate: &due,
			End: tp(due.Add(-48 * time.Hour)), TatMinutes: 30,
		},
		{
			RequestID: "ITM-7-0002", Company: domain.UnitITAM,
			Service: "Payroll Dispute", ProcessStep: "Review",
			Status: domain.StatusCompleted, DueDate: &due,
			End: tp(due.Add(24 * time.Hour)), TatMinutes: 3000,
		},
		{
			RequestID: "ONW-3-0001", Company: domain.UnitOnward,
			Service: "Clearance Processing",
			Status:  domain.StatusOpen, DueDate: tp(now.Add(12 * time.Hour)),
		},
		// malformed rows never poison the report
		{RequestID: "", Service: "ghost"},
	}

	report := svc.ClassifyForReporting(records, ReportFilter{})
	require.NotNil(t, report)

	assert.Equal(t, 3, report.Overall.Total)
	assert.Equal(t, 1, report.Overall.ClosedWithin)
	assert.Equal(t, 1, report.Overall.ClosedExceeded)
	assert.Equal(t, 1, report.Overall.ReminderDue)
	assert.InDelta(t, 66.67, report.Overall.CompliancePct, 0.01)
	assert.False(t, report.Overall.MeetsTarget)
	assert.Equal(t, targetCompliancePct, report.TargetPct)

	require.Len(t, report.PerService, 2)
	assert.Equal(t, "Clearance Processing", report.PerService[0].Service)
	assert.Equal(t, "Payroll Dispute", report.PerService[1].Service)
	assert.Equal(t, 2, report.PerService[1].Total)

	require.Len(t, report.Trend, 1)
	assert.Equal(t, "2024-06", report.Trend[0].Month)
	assert.Equal(t, 1, report.Trend[0].ClosedWithin)
	assert.Equal(t, 1, report.Trend[0].ClosedExceeded)

	require.Len(t, report.TatHistogram, 6)
	var histTotal int
	for _, b := range report.TatHistogram {
		histTotal += b.Count
	}
	assert.Equal(t, 3, histTotal)
}

func TestClassifyForReportingCompanyFilter(t *testing.T) {
	svc := NewReportService()
	records := []domain.RequestRecord{
		{RequestID: "ITM-7-0001", Company: domain.UnitITAM, Service: "Payslip", Status: domain.StatusOpen},
		{RequestID: "ONW-3-0001", Company: domain.UnitOnward, Service: "Payslip", Status: domain.StatusOpen},
	}

	report := svc.ClassifyForReporting(records, ReportFilter{Company: "ITM"})
	assert.Equal(t, 1, report.Overall.Total)

	report = svc.ClassifyForReporting(records, ReportFilter{Company: "Onward"})
	assert.Equal(t, 1, report.Overall.Total)
}

func TestComplianceTargetBoundary(t *testing.T) {
	counts := BucketCounts{ClosedWithin: 19, ClosedExceeded: 1, Total: 20}
	finalize(&counts)
	assert.InDelta(t, 95.0, counts.CompliancePct, 0.0001)
	assert.True(t, counts.MeetsTarget)

	counts = BucketCounts{ClosedWithin: 18, ClosedExceeded: 2, Total: 20}
	finalize(&counts)
	assert.False(t, counts.MeetsTarget)
}
