package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/duedate"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/events"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// SubmissionService handles request intake and due-date preview.
type SubmissionService struct {
	store      repository.RowStore
	tables     map[domain.BusinessUnit]string
	blobs      repository.BlobStore
	engine     *duedate.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// SubmissionDependencies bundles collaborators for the submission service.
type SubmissionDependencies struct {
	Store      repository.RowStore
	Tables     map[domain.BusinessUnit]string
	Blobs      repository.BlobStore
	Engine     *duedate.Engine
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// SubmitInput describes a new request payload.
type SubmitInput struct {
	Service     string
	ProcessStep string
	Details     string
	Attachment  *AttachmentInput
}

// AttachmentInput carries optional attachment bytes for the blob store.
type AttachmentInput struct {
	Data     []byte
	MimeType string
	FileName string
}

// NewSubmissionService constructs the service.
func NewSubmissionService(deps SubmissionDependencies) *SubmissionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		store:      deps.Store,
		tables:     deps.Tables,
		blobs:      deps.Blobs,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitRequest creates a request record for the caller's business unit. The
// due date is computed exactly once, here.
func (s *SubmissionService) SubmitRequest(ctx context.Context, session *domain.Session, input SubmitInput) (*domain.RequestRecord, error) {
	if session == nil {
		return nil, apperrors.NewUnauthorized("session required")
	}
	if strings.TrimSpace(input.Service) == "" {
		return nil, apperrors.NewValidationError("service required", nil)
	}
	unit := domain.CompanyFromCode(session.CompanyCode)
	if unit == "" {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unknown company code %q", session.CompanyCode), nil)
	}
	table, ok := s.tables[unit]
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("no table configured for company %s", unit), nil)
	}

	seq, err := s.store.NextSequence(ctx, table)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	requestDate := now
	due := s.engine.ComputeDueDate(input.Service, input.ProcessStep, requestDate)

	requestID := domain.FormatRequestID(session.CompanyCode, session.AccountCode, seq)
	details := strings.TrimSpace(input.Details)

	if input.Attachment != nil && len(input.Attachment.Data) > 0 {
		url, err := s.blobs.Store(ctx, input.Attachment.Data, input.Attachment.MimeType, input.Attachment.FileName)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if details != "" {
			details += "\n"
		}
		details += "Attachment: " + url
	}

	rec := &domain.RequestRecord{
		RequestID:      requestID,
		Company:        unit,
		Service:        strings.TrimSpace(input.Service),
		ProcessStep:    strings.TrimSpace(input.ProcessStep),
		RequesterEmail: session.Email,
		Department:     session.Department,
		RequestDate:    &requestDate,
		DueDate:        due,
		Status:         domain.StatusOpen,
		Details:        details,
	}

	if due == nil && duedate.DueDateRequired(input.Service) {
		// anomaly: logged and published, never blocks the submission
		s.logger.Warn("due-date-required service produced no due date",
			zap.String("request_id", requestID),
			zap.String("service", rec.Service),
			zap.String("process_step", rec.ProcessStep))
		s.publish(ctx, events.Event{
			Type:      events.EventDueDateMissing,
			RequestID: requestID,
			Company:   unit,
			Actor:     session.Email,
			Payload: events.DueDateMissingPayload{
				Service:     rec.Service,
				ProcessStep: rec.ProcessStep,
			},
		})
	}

	if err := s.store.AppendRow(ctx, table, repository.EncodeRecord(rec)); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		RequestID: requestID,
		Company:   unit,
		Actor:     session.Email,
		Payload: events.RequestSubmittedPayload{
			Service:     rec.Service,
			ProcessStep: rec.ProcessStep,
			DueDate:     due,
		},
	})
	return rec, nil
}

// PreviewDueDate exposes the rule engine for the submission flow.
func (s *SubmissionService) PreviewDueDate(service, processStep string, requestDate time.Time) *time.Time {
	return s.engine.ComputeDueDate(service, processStep, requestDate)
}

func (s *SubmissionService) publish(ctx context.Context, event events.Event) {
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
