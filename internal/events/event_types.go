package events

import (
	"time"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted EventType = "request_submitted"
	EventLifecycleChanged EventType = "request_lifecycle_changed"
	EventDueDateMissing   EventType = "request_duedate_missing"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string              `json:"id"`
	Type      EventType           `json:"type"`
	RequestID string              `json:"request_id"`
	Company   domain.BusinessUnit `json:"company,omitempty"`
	Actor     string              `json:"actor,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Payload   interface{}         `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	Service     string     `json:"service"`
	ProcessStep string     `json:"process_step"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// LifecycleChangedPayload payload.
type LifecycleChangedPayload struct {
	Action     domain.Action `json:"action"`
	OldStatus  domain.Status `json:"old_status"`
	NewStatus  domain.Status `json:"new_status"`
	TatMinutes int64         `json:"tat_minutes"`
	Remarks    string        `json:"remarks,omitempty"`
}

// DueDateMissingPayload payload for the due-date-required anomaly.
type DueDateMissingPayload struct {
	Service     string `json:"service"`
	ProcessStep string `json:"process_step"`
}
