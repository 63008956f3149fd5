package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

const auditCollection = "task_audit"

// AuditRepository persists audit events to the task_audit collection. The
// authoritative Record Store stays in process memory; this collection is an
// append-only trail of mutations.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Record inserts a single audit document.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := bson.M{
		"entity":      event.Entity,
		"action":      string(event.Action),
		"entity_id":   event.EntityID,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if len(event.Fields) > 0 {
		doc["fields"] = event.Fields
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
