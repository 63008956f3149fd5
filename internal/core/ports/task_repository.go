package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// NewTask carries the caller-supplied fields for task creation. The store
// assigns id, createdAt, and updatedAt.
type NewTask struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	AssignedUserID string
}

// TaskUpdate is a partial update: nil fields are left untouched. The store
// always bumps updatedAt on a successful merge; id and createdAt cannot be
// altered through this path.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Status         *domain.TaskStatus
	AssignedUserID *string
}

// Provided returns the names of the fields this update carries, in wire form.
func (u TaskUpdate) Provided() []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.Description != nil {
		fields = append(fields, "description")
	}
	if u.Status != nil {
		fields = append(fields, "status")
	}
	if u.AssignedUserID != nil {
		fields = append(fields, "assignedUserId")
	}
	return fields
}

// TaskRepository defines the Record Store operations for tasks. List returns
// tasks in insertion order; implementations must hand out copies so callers
// never hold references into the backing collection.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, fields NewTask) (*domain.Task, error)
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
