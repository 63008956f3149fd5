package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// AuditPublisher accepts audit events from the service layer. Publish must not
// block the request path beyond queue backpressure.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}

// AuditRecorder persists audit events. Implementations: the Mongo task_audit
// collection, or a structured-log recorder when Mongo is not configured.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// IdempotencyStore maps an Idempotency-Key to the id of the task it created.
// Lookup misses are reported as ok=false, not as errors.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (taskID string, ok bool, err error)
	Set(ctx context.Context, key, taskID string) error
}
