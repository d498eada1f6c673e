package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// Canonical field names for request rows. The SQL column names double as the
// canonical headers; the alias lists absorb historical spreadsheet spellings.
const (
	FieldRequestID       = "request_id"
	FieldCompany         = "company"
	FieldService         = "service"
	FieldProcessStep     = "process_step"
	FieldRequesterEmail  = "requester_email"
	FieldDepartment      = "department"
	FieldRequestDate     = "request_date"
	FieldDueDate         = "due_date"
	FieldStatus          = "status"
	FieldStart           = "start_time"
	FieldPause           = "pause_time"
	FieldResume          = "resume_time"
	FieldEnd             = "end_time"
	FieldTatMinutes      = "tat_minutes"
	FieldTotalTatMinutes = "total_tat_minutes"
	FieldDetails         = "details"
	FieldRemarks         = "remarks"
)

// fieldAliases maps each canonical field to accepted header spellings in
// priority order. Resolution takes the first alias with a non-empty value.
var fieldAliases = map[string][]string{
	FieldRequestID:       {FieldRequestID, "Request ID", "Request No", "Ticket #", "Reference No"},
	FieldCompany:         {FieldCompany, "Company", "Business Unit", "Account"},
	FieldService:         {FieldService, "Service", "Service Name", "Request Type"},
	FieldProcessStep:     {FieldProcessStep, "Process Step", "Process", "Step"},
	FieldRequesterEmail:  {FieldRequesterEmail, "Requester Email", "Email", "Email Address", "Requestor"},
	FieldDepartment:      {FieldDepartment, "Department", "Dept"},
	FieldRequestDate:     {FieldRequestDate, "Request Date", "Date Requested", "Submitted"},
	FieldDueDate:         {FieldDueDate, "Due Date", "SLA Due", "Target Date"},
	FieldStatus:          {FieldStatus, "Status", "State"},
	FieldStart:           {FieldStart, "Start", "Start Time", "Date Started"},
	FieldPause:           {FieldPause, "Pause", "Pause Time", "Date Paused"},
	FieldResume:          {FieldResume, "Resume", "Resume Time", "Date Resumed"},
	FieldEnd:             {FieldEnd, "End", "End Time", "Date Ended", "Date Completed"},
	FieldTatMinutes:      {FieldTatMinutes, "TAT", "TAT (mins)", "TAT Minutes"},
	FieldTotalTatMinutes: {FieldTotalTatMinutes, "Total TAT", "Total TAT (mins)"},
	FieldDetails:         {FieldDetails, "Details", "Description"},
	FieldRemarks:         {FieldRemarks, "Remarks", "Notes", "Comment"},
}

// recordFields is the canonical column order for writes.
var recordFields = []string{
	FieldRequestID, FieldCompany, FieldService, FieldProcessStep,
	FieldRequesterEmail, FieldDepartment, FieldRequestDate, FieldDueDate,
	FieldStatus, FieldStart, FieldPause, FieldResume, FieldEnd,
	FieldTatMinutes, FieldTotalTatMinutes, FieldDetails, FieldRemarks,
}

// ResolveRow normalizes a raw row into canonical-field form using the alias
// table. Missing fields resolve to empty values; lenience is deliberate here
// and structural checks belong to the store.
func ResolveRow(raw Row) map[string]string {
	resolved := make(map[string]string, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if v, ok := raw.Lookup(alias); ok && strings.TrimSpace(v) != "" {
				resolved[field] = strings.TrimSpace(v)
				break
			}
		}
	}
	return resolved
}

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// acceptedTimeLayouts covers the formats found across the historical tables.
var acceptedTimeLayouts = []string{
	timeLayout,
	time.RFC3339,
	dateLayout,
	"01/02/2006 15:04:05",
	"01/02/2006",
}

func parseTimeValue(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func formatTimeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func parseMinutes(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DecodeRecord builds a request record from a raw row. Malformed values decode
// to zero values; reporting and aggregation tolerate them by design.
func DecodeRecord(raw Row) domain.RequestRecord {
	resolved := ResolveRow(raw)
	rec := domain.RequestRecord{
		RequestID:       resolved[FieldRequestID],
		Company:         domain.BusinessUnit(resolved[FieldCompany]),
		Service:         resolved[FieldService],
		ProcessStep:     resolved[FieldProcessStep],
		RequesterEmail:  resolved[FieldRequesterEmail],
		Department:      resolved[FieldDepartment],
		RequestDate:     parseTimeValue(resolved[FieldRequestDate]),
		DueDate:         parseTimeValue(resolved[FieldDueDate]),
		Status:          domain.Status(resolved[FieldStatus]),
		Start:           parseTimeValue(resolved[FieldStart]),
		Pause:           parseTimeValue(resolved[FieldPause]),
		Resume:          parseTimeValue(resolved[FieldResume]),
		End:             parseTimeValue(resolved[FieldEnd]),
		TatMinutes:      parseMinutes(resolved[FieldTatMinutes]),
		TotalTatMinutes: parseMinutes(resolved[FieldTotalTatMinutes]),
		Details:         resolved[FieldDetails],
		Remarks:         resolved[FieldRemarks],
	}
	if rec.Status == "" {
		rec.Status = domain.StatusOpen
	}
	return rec
}

// EncodeRecord renders a record as canonical column values for writing.
func EncodeRecord(rec *domain.RequestRecord) map[string]string {
	return map[string]string{
		FieldRequestID:       rec.RequestID,
		FieldCompany:         string(rec.Company),
		FieldService:         rec.Service,
		FieldProcessStep:     rec.ProcessStep,
		FieldRequesterEmail:  rec.RequesterEmail,
		FieldDepartment:      rec.Department,
		FieldRequestDate:     formatTimeValue(rec.RequestDate),
		FieldDueDate:         formatTimeValue(rec.DueDate),
		FieldStatus:          string(rec.Status),
		FieldStart:           formatTimeValue(rec.Start),
		FieldPause:           formatTimeValue(rec.Pause),
		FieldResume:          formatTimeValue(rec.Resume),
		FieldEnd:             formatTimeValue(rec.End),
		FieldTatMinutes:      strconv.FormatInt(rec.TatMinutes, 10),
		FieldTotalTatMinutes: strconv.FormatInt(rec.TotalTatMinutes, 10),
		FieldDetails:         rec.Details,
		FieldRemarks:         rec.Remarks,
	}
}
