package dto

import (
	"time"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// SubmitRequestRequest payload.
type SubmitRequestRequest struct {
	Service     string             `json:"service"`
	ProcessStep string             `json:"process_step"`
	Details     string             `json:"details"`
	Attachment  *AttachmentRequest `json:"attachment,omitempty"`
}

// AttachmentRequest carries an optional base64-encoded file.
type AttachmentRequest struct {
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	ContentB64 string `json:"content_b64"`
}

// LifecycleActionRequest payload for start/pause/resume/end.
type LifecycleActionRequest struct {
	Company     string `json:"company,omitempty"`
	Service     string `json:"service,omitempty"`
	ProcessStep string `json:"process_step,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// RequestResponse is the canonical record view.
type RequestResponse struct {
	RequestID      string     `json:"request_id"`
	Company        string     `json:"company"`
	Service        string     `json:"service"`
	ProcessStep    string     `json:"process_step"`
	RequesterEmail string     `json:"requester_email"`
	Department     string     `json:"department"`
	RequestDate    *time.Time `json:"request_date"`
	DueDate        *time.Time `json:"due_date"`
	Status         string     `json:"status"`
	StartTime      *time.Time `json:"start_time"`
	PauseTime      *time.Time `json:"pause_time"`
	ResumeTime     *time.Time `json:"resume_time"`
	EndTime        *time.Time `json:"end_time"`
	TatMinutes     int64      `json:"tat_minutes"`
	Details        string     `json:"details,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
}

// DueDatePreviewResponse reports a computed due date.
type DueDatePreviewResponse struct {
	Service     string     `json:"service"`
	ProcessStep string     `json:"process_step,omitempty"`
	RequestDate time.Time  `json:"request_date"`
	DueDate     *time.Time `json:"due_date"`
}

// NewRequestResponse maps a domain record to its API view.
func NewRequestResponse(rec *domain.RequestRecord) RequestResponse {
	return RequestResponse{
		RequestID:      rec.RequestID,
		Company:        string(rec.Company),
		Service:        rec.Service,
		ProcessStep:    rec.ProcessStep,
		RequesterEmail: rec.RequesterEmail,
		Department:     rec.Department,
		RequestDate:    rec.RequestDate,
		DueDate:        rec.DueDate,
		Status:         string(rec.Status),
		StartTime:      rec.Start,
		PauseTime:      rec.Pause,
		ResumeTime:     rec.Resume,
		EndTime:        rec.End,
		TatMinutes:     rec.TatMinutes,
		Details:        rec.Details,
		Remarks:        rec.Remarks,
	}
}

// NewRequestResponseList maps a slice of records.
func NewRequestResponseList(records []domain.RequestRecord) []RequestResponse {
	out := make([]RequestResponse, 0, len(records))
	for i := range records {
		out = append(out, NewRequestResponse(&records[i]))
	}
	return out
}
