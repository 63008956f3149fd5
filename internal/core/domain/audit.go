package domain

import "time"

// AuditAction identifies the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

// AuditEvent records a single successful mutation on a stored entity.
// Recording is fire-and-forget; events never influence the request path.
type AuditEvent struct {
	Entity    string      `json:"entity"`
	Action    AuditAction `json:"action"`
	EntityID  string      `json:"entity_id"`
	Fields    []string    `json:"fields,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
