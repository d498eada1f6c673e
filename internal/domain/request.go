package domain

import "time"

// Status enumerates request lifecycle states.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusPaused     Status = "Paused"
	StatusResumed    Status = "Resumed"
	StatusCompleted  Status = "Completed"
)

// InProgress reports whether the status counts as actively worked for guard
// purposes. Resumed is equivalent to In Progress.
func (s Status) InProgress() bool {
	return s == StatusInProgress || s == StatusResumed
}

// Action enumerates lifecycle actions on a request.
type Action string

const (
	ActionStart  Action = "Start"
	ActionPause  Action = "Pause"
	ActionResume Action = "Resume"
	ActionEnd    Action = "End"
)

// ParseAction maps free-form action text to an Action.
func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionStart, ActionPause, ActionResume, ActionEnd:
		return Action(raw), true
	}
	switch raw {
	case "start":
		return ActionStart, true
	case "pause":
		return ActionPause, true
	case "resume":
		return ActionResume, true
	case "end":
		return ActionEnd, true
	}
	return "", false
}

// RequestRecord is the aggregate for one submitted HR service request.
type RequestRecord struct {
	RequestID       string
	Company         BusinessUnit
	Service         string
	ProcessStep     string
	RequesterEmail  string
	Department      string
	RequestDate     *time.Time
	DueDate         *time.Time
	Status          Status
	Start           *time.Time
	Pause           *time.Time
	Resume          *time.Time
	End             *time.Time
	TatMinutes      int64
	TotalTatMinutes int64
	Details         string
	Remarks         string
}

// ActiveAnchor returns the timestamp the current TAT window opened from:
// the latest resume if one exists, otherwise the start.
func (r *RequestRecord) ActiveAnchor() *time.Time {
	if r.Resume != nil {
		return r.Resume
	}
	return r.Start
}
