package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/service"
	apperrors "github.com/hipolitokrisandrew-code/hr-request-service/pkg/util/errorutil"
)

// ReportsHandler exposes SLA compliance reporting.
type ReportsHandler struct {
	unifiedLog *service.UnifiedLogService
	reports    *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(unifiedLog *service.UnifiedLogService, reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{unifiedLog: unifiedLog, reports: reports}
}

// SLAReport GET /reports/sla.
func (h *ReportsHandler) SLAReport(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	records, err := h.unifiedLog.UnifiedLog(c.Context(), session, service.LogFilter{})
	if err != nil {
		return err
	}

	report := h.reports.ClassifyForReporting(records, service.ReportFilter{
		Company: c.Query("company"),
		Service: c.Query("service"),
	})
	return c.JSON(fiber.Map{"data": report})
}
