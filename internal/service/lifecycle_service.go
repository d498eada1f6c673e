package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/duedate"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/events"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/persistence"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// LifecycleService performs the guarded Start/Pause/Resume/End transitions.
// Every action runs under the store-wide lock; a failed guard mutates nothing.
type LifecycleService struct {
	store      repository.RowStore
	tables     map[domain.BusinessUnit]string
	engine     *duedate.Engine
	lock       persistence.ActionLock
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// LifecycleDependencies bundles collaborators for the lifecycle service.
type LifecycleDependencies struct {
	Store      repository.RowStore
	Tables     map[domain.BusinessUnit]string
	Engine     *duedate.Engine
	Lock       persistence.ActionLock
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ActionInput carries the caller-supplied fields for a lifecycle action.
type ActionInput struct {
	RequestID   string
	Company     string
	Service     string
	ProcessStep string
	Remarks     string
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		store:      deps.Store,
		tables:     deps.Tables,
		engine:     deps.Engine,
		lock:       deps.Lock,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Perform applies one lifecycle action and returns the freshly re-read record,
// guaranteeing the caller observes the persisted values.
func (s *LifecycleService) Perform(ctx context.Context, session *domain.Session, action domain.Action, input ActionInput) (*domain.RequestRecord, error) {
	if session == nil {
		return nil, apperrors.NewUnauthorized("session required")
	}
	verb := strings.ToLower(string(action))

	requestID := strings.TrimSpace(input.RequestID)
	if requestID == "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s failed: request id required", verb), nil)
	}
	derived := domain.CompanyFromRequestID(requestID)
	if derived == "" {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s failed: request id %q has an unknown company prefix", verb, requestID), nil)
	}

	// the caller's selected company context must agree with the id prefix
	selected := strings.TrimSpace(input.Company)
	if selected == "" {
		selected = session.CompanyCode
	}
	if selected != "" {
		selectedUnit := domain.CompanyFromCode(selected)
		if selectedUnit == "" {
			selectedUnit = domain.BusinessUnit(selected)
		}
		if selectedUnit != derived {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("%s failed: request %s belongs to %s, not %s", verb, requestID, derived, selectedUnit), nil)
		}
	}

	table, ok := s.tables[derived]
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("%s failed: no table configured for company %s", verb, derived), nil)
	}

	release, err := s.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrLockTimeout) {
			return nil, apperrors.NewLockTimeout(fmt.Sprintf("%s failed: record store busy, try again", verb))
		}
		return nil, apperrors.MapError(err)
	}
	defer release()

	rec, err := s.findRecord(ctx, table, requestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID, "action": verb})
	}

	oldStatus := rec.Status
	now := s.now()

	switch action {
	case domain.ActionStart:
		if rec.Start != nil && rec.Status != domain.StatusCompleted {
			return nil, apperrors.NewPreconditionFailed(
				fmt.Sprintf("start failed: request %s is already started", requestID), nil)
		}
		rec.Start = &now
		if rec.RequestDate == nil {
			rec.RequestDate = &now
		}
		if rec.DueDate == nil {
			service := rec.Service
			if service == "" {
				service = input.Service
			}
			step := rec.ProcessStep
			if step == "" {
				step = input.ProcessStep
			}
			rec.DueDate = s.engine.ComputeDueDate(service, step, *rec.RequestDate)
		}
		rec.Pause = nil
		rec.Resume = nil
		rec.End = nil
		rec.TatMinutes = 0
		rec.Status = domain.StatusInProgress

	case domain.ActionPause:
		inProgress := rec.Status.InProgress() ||
			(rec.Start != nil && rec.Pause == nil && rec.End == nil)
		if !inProgress {
			return nil, apperrors.NewPreconditionFailed(
				fmt.Sprintf("pause failed: request %s is not in progress", requestID), nil)
		}
		rec.TatMinutes += elapsedMinutes(rec.ActiveAnchor(), now)
		rec.Pause = &now
		rec.Status = domain.StatusPaused

	case domain.ActionResume:
		if rec.Status != domain.StatusPaused {
			return nil, apperrors.NewPreconditionFailed(
				fmt.Sprintf("resume failed: request %s is not paused", requestID), nil)
		}
		rec.Resume = &now
		rec.Status = domain.StatusResumed

	case domain.ActionEnd:
		if !rec.Status.InProgress() && rec.Status != domain.StatusPaused {
			return nil, apperrors.NewPreconditionFailed(
				fmt.Sprintf("end failed: request %s is not in progress or paused", requestID), nil)
		}
		if rec.Status != domain.StatusPaused || rec.Resume != nil {
			rec.TatMinutes += elapsedMinutes(rec.ActiveAnchor(), now)
		}
		rec.End = &now
		rec.Status = domain.StatusCompleted

	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown action %q", action), nil)
	}

	if rec.TatMinutes < 0 {
		rec.TatMinutes = 0
	}
	rec.TotalTatMinutes = rec.TatMinutes
	if remarks := strings.TrimSpace(input.Remarks); remarks != "" {
		rec.Remarks = remarks
	}

	if err := s.store.UpdateRow(ctx, table, requestID, repository.EncodeRecord(rec)); err != nil {
		if errors.Is(err, repository.ErrRowNotFound) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": requestID, "action": verb})
		}
		return nil, apperrors.MapError(err)
	}

	persisted, err := s.findRecord(ctx, table, requestID)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("record %s vanished after %s", requestID, verb))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventLifecycleChanged,
		RequestID: requestID,
		Company:   derived,
		Actor:     session.Email,
		Payload: events.LifecycleChangedPayload{
			Action:     action,
			OldStatus:  oldStatus,
			NewStatus:  persisted.Status,
			TatMinutes: persisted.TatMinutes,
			Remarks:    persisted.Remarks,
		},
	})
	return persisted, nil
}

func (s *LifecycleService) findRecord(ctx context.Context, table, requestID string) (*domain.RequestRecord, error) {
	rows, err := s.store.ListRows(ctx, table)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	want := strings.ToUpper(requestID)
	for _, row := range rows {
		rec := repository.DecodeRecord(row)
		if strings.ToUpper(strings.TrimSpace(rec.RequestID)) == want {
			if rec.Company == "" {
				rec.Company = domain.CompanyFromRequestID(rec.RequestID)
			}
			return &rec, nil
		}
	}
	return nil, nil
}

// elapsedMinutes measures the active window, clamped to zero for clock skew.
func elapsedMinutes(anchor *time.Time, now time.Time) int64 {
	if anchor == nil {
		return 0
	}
	minutes := int64(now.Sub(*anchor) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

func (s *LifecycleService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
