package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

func TestRowLookupCaseInsensitive(t *testing.T) {
	row := Row{"Request ID": "ITM-7-0001", " Status ": "Open"}

	v, ok := row.Lookup("request id")
	assert.True(t, ok)
	assert.Equal(t, "ITM-7-0001", v)

	v, ok = row.Lookup("STATUS")
	assert.True(t, ok)
	assert.Equal(t, "Open", v)

	_, ok = row.Lookup("missing")
	assert.False(t, ok)
}

func TestResolveRowAliasPriority(t *testing.T) {
	// the canonical header wins over later aliases when both carry values
	row := Row{
		"request_id": "ITM-7-0001",
		"Ticket #":   "ITM-7-9999",
		"Email":      "ana@example.com",
	}
	resolved := ResolveRow(row)
	assert.Equal(t, "ITM-7-0001", resolved[FieldRequestID])
	assert.Equal(t, "ana@example.com", resolved[FieldRequesterEmail])
}

func TestResolveRowSkipsEmptyAliases(t *testing.T) {
	// an empty canonical value falls through to the first populated alias
	row := Row{
		"request_id": "  ",
		"Request No": "ONW-3-0042",
	}
	resolved := ResolveRow(row)
	assert.Equal(t, "ONW-3-0042", resolved[FieldRequestID])
}

func TestDecodeRecordHistoricalHeaders(t *testing.T) {
	row := Row{
		"Request ID":   "ELV-12-0007",
		"Service Name": "Payroll Dispute",
		"Requestor":    "ben@example.com",
		"Dept":         "Finance",
		"Date Started": "2024-06-10 09:00:00",
		"TAT (mins)":   "95",
	}
	rec := DecodeRecord(row)
	assert.Equal(t, "ELV-12-0007", rec.RequestID)
	assert.Equal(t, "Payroll Dispute", rec.Service)
	assert.Equal(t, "ben@example.com", rec.RequesterEmail)
	assert.Equal(t, "Finance", rec.Department)
	require.NotNil(t, rec.Start)
	assert.Equal(t, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), *rec.Start)
	assert.Equal(t, int64(95), rec.TatMinutes)
	// empty status decodes to Open
	assert.Equal(t, domain.StatusOpen, rec.Status)
}

func TestDecodeRecordToleratesMalformedValues(t *testing.T) {
	row := Row{
		"request_id":  "PRM-1-0001",
		"start_time":  "not a timestamp",
		"tat_minutes": "-30",
	}
	rec := DecodeRecord(row)
	assert.Nil(t, rec.Start)
	assert.Zero(t, rec.TatMinutes)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	start := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)
	rec := &domain.RequestRecord{
		RequestID:       "ITM-7-0001",
		Company:         domain.UnitITAM,
		Service:         "Employee Relations",
		Status:          domain.StatusCompleted,
		Start:           &start,
		End:             &end,
		TatMinutes:      360,
		TotalTatMinutes: 360,
		Remarks:         "done",
	}
	decoded := DecodeRecord(Row(EncodeRecord(rec)))
	assert.Equal(t, rec.RequestID, decoded.RequestID)
	assert.Equal(t, rec.Company, decoded.Company)
	assert.Equal(t, rec.Status, decoded.Status)
	require.NotNil(t, decoded.Start)
	assert.True(t, decoded.Start.Equal(start))
	assert.Equal(t, rec.TatMinutes, decoded.TatMinutes)
	assert.Equal(t, rec.Remarks, decoded.Remarks)
}

func TestMemoryRowStoreUpdateAndSequence(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRowStore()
	store.Seed("requests_itam", []Row{
		{"Request ID": "ITM-7-0001", "Status": "Open"},
		{"request_id": "ITM-7-0003", "status": "Completed"},
	})

	seq, err := store.NextSequence(ctx, "requests_itam")
	require.NoError(t, err)
	assert.Equal(t, 4, seq)

	// updates key on the request id regardless of header spelling or case
	err = store.UpdateRow(ctx, "requests_itam", "itm-7-0001", map[string]string{FieldStatus: "In Progress"})
	require.NoError(t, err)

	rows, err := store.ListRows(ctx, "requests_itam")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	rec := DecodeRecord(rows[0])
	assert.Equal(t, domain.StatusInProgress, rec.Status)

	err = store.UpdateRow(ctx, "requests_itam", "ITM-7-0999", map[string]string{FieldStatus: "Open"})
	assert.ErrorIs(t, err, ErrRowNotFound)
}
