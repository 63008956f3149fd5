// Package audit provides the default audit recorder used when MongoDB is not
// configured: events go to the structured log instead of a collection.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// LogRecorder writes audit events to a zerolog logger.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(_ context.Context, event domain.AuditEvent) error {
	r.log.Info().
		Str("entity", event.Entity).
		Str("action", string(event.Action)).
		Str("entity_id", event.EntityID).
		Strs("fields", event.Fields).
		Time("event_time", event.Timestamp).
		Msg("audit")
	return nil
}
