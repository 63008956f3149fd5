package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// ListTasksInput carries the query parameters for listing tasks.
// Filters compose with logical AND; an empty filter matches everything.
type ListTasksInput struct {
	Status    string // exact match on the status field
	TitleLike string // case-insensitive substring match on title
	Page      int    // 1-based; defaults to 1
	Limit     int    // 0 = no pagination; capped at 100 by the service
}

// ListTasksResult is a page of the filtered task collection. Total is the
// filtered count before pagination, exposed to clients via X-Total-Count.
type ListTasksResult struct {
	Items []domain.Task
	Total int
}

// CreateTaskInput carries all data needed to create a task. IdempotencyKey is
// optional: a replayed key returns the originally created task.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         string
	AssignedUserID string
	IdempotencyKey string
}

// TaskService defines the use-case operations over the task collection.
type TaskService interface {
	List(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// UserService exposes the read-only user collection, passwords stripped.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}
