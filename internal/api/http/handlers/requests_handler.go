package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/api/dto"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/observability"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/service"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// RequestsHandler manages request submission, lifecycle actions and the
// unified log.
type RequestsHandler struct {
	submissions *service.SubmissionService
	lifecycle   *service.LifecycleService
	unifiedLog  *service.UnifiedLogService
	metrics     *observability.Metrics
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(
	submissions *service.SubmissionService,
	lifecycle *service.LifecycleService,
	unifiedLog *service.UnifiedLogService,
	metrics *observability.Metrics,
) *RequestsHandler {
	return &RequestsHandler{
		submissions: submissions,
		lifecycle:   lifecycle,
		unifiedLog:  unifiedLog,
		metrics:     metrics,
	}
}

// Submit POST /requests.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.SubmitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Service) == "" {
		return apperrors.NewValidationError("service required", nil)
	}

	input := service.SubmitInput{
		Service:     req.Service,
		ProcessStep: req.ProcessStep,
		Details:     req.Details,
	}
	if req.Attachment != nil && req.Attachment.ContentB64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.Attachment.ContentB64)
		if err != nil {
			return apperrors.NewValidationError("attachment content_b64 is not valid base64", nil)
		}
		input.Attachment = &service.AttachmentInput{
			Data:     data,
			MimeType: req.Attachment.MimeType,
			FileName: req.Attachment.FileName,
		}
	}

	rec, err := h.submissions.SubmitRequest(c.Context(), session, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestResponse(rec)})
}

// PreviewDueDate GET /requests/duedate.
func (h *RequestsHandler) PreviewDueDate(c *fiber.Ctx) error {
	serviceName := strings.TrimSpace(c.Query("service"))
	if serviceName == "" {
		return apperrors.NewValidationError("service query parameter required", nil)
	}
	processStep := c.Query("process_step")
	requestDate := time.Now()
	if raw := c.Query("request_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err != nil {
			return apperrors.NewValidationError("request_date must be YYYY-MM-DD or RFC3339", nil)
		}
		requestDate = parsed
	}

	due := h.submissions.PreviewDueDate(serviceName, processStep, requestDate)
	return c.JSON(fiber.Map{"data": dto.DueDatePreviewResponse{
		Service:     serviceName,
		ProcessStep: processStep,
		RequestDate: requestDate,
		DueDate:     due,
	}})
}

// PerformAction POST /requests/:id/actions/:action.
func (h *RequestsHandler) PerformAction(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	action, ok := domain.ParseAction(c.Params("action"))
	if !ok {
		return apperrors.NewValidationError("unknown action; expected start, pause, resume or end", nil)
	}

	var req dto.LifecycleActionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	rec, err := h.lifecycle.Perform(c.Context(), session, action, service.ActionInput{
		RequestID:   c.Params("id"),
		Company:     req.Company,
		Service:     req.Service,
		ProcessStep: req.ProcessStep,
		Remarks:     req.Remarks,
	})
	h.metrics.RecordAction(string(action), err == nil)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(rec)})
}

// UnifiedLog GET /requests/log.
func (h *RequestsHandler) UnifiedLog(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	filter := service.LogFilter{
		Company: c.Query("company"),
		Service: c.Query("service"),
		Status:  c.Query("status"),
	}
	if from := parseTime(c.Query("from")); from != nil {
		filter.From = from
	}
	if to := parseTime(c.Query("to")); to != nil {
		filter.To = to
	}

	records, err := h.unifiedLog.UnifiedLog(c.Context(), session, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponseList(records)})
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		t, err = time.Parse("2006-01-02", val)
	}
	if err != nil {
		return nil
	}
	return &t
}
