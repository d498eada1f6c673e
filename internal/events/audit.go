package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLogger subscribes a zap-backed audit trail for every event
// type. The trail is observational only; it can never fail a publish.
func RegisterAuditLogger(d Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, e Event) error {
		logger.Info("audit event",
			zap.String("event_id", e.ID),
			zap.String("type", string(e.Type)),
			zap.String("request_id", e.RequestID),
			zap.String("company", string(e.Company)),
			zap.String("actor", e.Actor))
		return nil
	}
	for _, t := range []EventType{EventRequestSubmitted, EventLifecycleChanged, EventDueDateMissing} {
		d.Subscribe(t, handler)
	}
}
