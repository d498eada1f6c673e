package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
)

func seedUnifiedFixture(t *testing.T) *repository.MemoryRowStore {
	t.Helper()
	store := repository.NewMemoryRowStore()
	store.Seed("requests_itam", []repository.Row{
		{
			"Request ID":      "ITM-7-0001",
			"Service Name":    "Payroll Dispute",
			"Requestor":       "ana@example.com",
			"Dept":            "Finance",
			"Status":          "In Progress",
			"Date Started":    "2024-06-10 09:00:00",
			"request_date":    "2024-06-10 08:00:00",
		},
		// duplicate snapshot of the same request under different headers
		{
			"request_id":      "itm-7-0001",
			"service":         "Payroll Dispute",
			"requester_email": "ana@example.com",
			"department":      "Finance",
			"status":          "In Progress",
			"start_time":      "2024-06-10 09:00:00",
			"request_date":    "2024-06-10 08:00:00",
		},
		// blank id rows are skipped
		{"service": "orphan row"},
	})
	store.Seed("requests_onward", []repository.Row{
		{
			"request_id":      "ONW-3-0042",
			"service":         "Clearance Processing",
			"requester_email": "ben@example.com",
			"department":      "Operations",
			"status":          "Completed",
			"request_date":    "2024-05-02 10:00:00",
			"end_time":        "2024-05-20 10:00:00",
		},
	})
	return store
}

func TestUnifiedLogMergesAndDeduplicates(t *testing.T) {
	svc := NewUnifiedLogService(seedUnifiedFixture(t), testTables, nil)
	session := staffSession()

	records, err := svc.UnifiedLog(context.Background(), session, LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := make(map[string]domain.RequestRecord)
	for _, rec := range records {
		byID[rec.RequestID] = rec
	}
	itam, ok := byID["ITM-7-0001"]
	require.True(t, ok)
	assert.Equal(t, domain.UnitITAM, itam.Company)
	assert.Equal(t, "Payroll Dispute", itam.Service)

	onward, ok := byID["ONW-3-0042"]
	require.True(t, ok)
	assert.Equal(t, domain.UnitOnward, onward.Company)
}

func TestUnifiedLogScopesEmployeeToOwnRequests(t *testing.T) {
	svc := NewUnifiedLogService(seedUnifiedFixture(t), testTables, nil)
	session := &domain.Session{Email: "BEN@example.com", Role: domain.RoleEmployee}

	records, err := svc.UnifiedLog(context.Background(), session, LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ONW-3-0042", records[0].RequestID)
}

func TestUnifiedLogScopesDepartmentHead(t *testing.T) {
	svc := NewUnifiedLogService(seedUnifiedFixture(t), testTables, nil)
	session := &domain.Session{Email: "head@example.com", Role: domain.RoleDepartmentHead, Department: "Finance"}

	records, err := svc.UnifiedLog(context.Background(), session, LogFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ITM-7-0001", records[0].RequestID)
}

func TestUnifiedLogFilters(t *testing.T) {
	svc := NewUnifiedLogService(seedUnifiedFixture(t), testTables, nil)
	session := staffSession()

	records, err := svc.UnifiedLog(context.Background(), session, LogFilter{Company: "ONW"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ONW-3-0042", records[0].RequestID)

	records, err = svc.UnifiedLog(context.Background(), session, LogFilter{Service: "payroll"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ITM-7-0001", records[0].RequestID)

	records, err = svc.UnifiedLog(context.Background(), session, LogFilter{Status: "Completed"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	records, err = svc.UnifiedLog(context.Background(), session, LogFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ITM-7-0001", records[0].RequestID)
}

func TestUnifiedLogDistinctSnapshotsSurvive(t *testing.T) {
	store := repository.NewMemoryRowStore()
	store.Seed("requests_itam", []repository.Row{
		{"request_id": "ITM-7-0001", "status": "In Progress", "start_time": "2024-06-10 09:00:00"},
		// same id but different lifecycle state is a distinct entry
		{"request_id": "ITM-7-0001", "status": "Completed", "start_time": "2024-06-10 09:00:00", "end_time": "2024-06-11 09:00:00"},
	})
	svc := NewUnifiedLogService(store, testTables, nil)

	records, err := svc.UnifiedLog(context.Background(), staffSession(), LogFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
