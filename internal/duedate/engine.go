package duedate

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Engine resolves SLA due dates for service requests against the ordered rule
// catalog. It is pure with respect to its inputs; the logger only carries
// diagnostics and can never affect the result.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs an engine. A nil logger disables diagnostics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ComputeDueDate resolves the due date for a service/process-step pair
// anchored at requestDate. A nil result means no rule matched or the inputs
// were unusable; both are normal outcomes, never errors.
func (e *Engine) ComputeDueDate(service, processStep string, requestDate time.Time) *time.Time {
	if requestDate.IsZero() {
		e.logger.Warn("due date skipped: invalid request date",
			zap.String("service", service))
		return nil
	}
	svc := normalizeService(service)
	if svc == "" {
		e.logger.Warn("due date skipped: empty service")
		return nil
	}
	step := normalizeStep(processStep)

	for _, r := range catalog {
		if strings.Contains(svc, r.match) {
			due := r.compute(step, requestDate)
			e.logger.Debug("due date rule matched",
				zap.String("rule", r.name),
				zap.String("service", svc),
				zap.String("process_step", step),
				zap.Time("due_date", due))
			return &due
		}
	}

	e.logger.Debug("due date rule matched",
		zap.String("rule", "no match"),
		zap.String("service", svc),
		zap.String("process_step", step))
	return nil
}

// normalizeService lowercases, trims and collapses internal whitespace.
func normalizeService(service string) string {
	return strings.Join(strings.Fields(strings.ToLower(service)), " ")
}

func normalizeStep(step string) string {
	return strings.TrimSpace(strings.ToLower(step))
}
