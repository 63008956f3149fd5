package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

const maxPageLimit = 100

// TaskService implements listing, filtering, pagination, and CRUD over the
// task collection.
type TaskService struct {
	repo   ports.TaskRepository
	idem   ports.IdempotencyStore
	audit  ports.AuditPublisher
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, idem ports.IdempotencyStore, audit ports.AuditPublisher, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, idem: idem, audit: audit, logger: logger}
}

// List returns the filtered task collection in insertion order. Both filters
// must match (logical AND); an empty filter matches everything. When Limit is
// set the result is sliced to the requested page and Total still reports the
// full filtered count.
func (s *TaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	filtered := tasks[:0:0]
	needle := strings.ToLower(input.TitleLike)
	for _, t := range tasks {
		if input.Status != "" && string(t.Status) != input.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		filtered = append(filtered, t)
	}

	total := len(filtered)
	return &ports.ListTasksResult{
		Items: paginate(filtered, input.Page, input.Limit),
		Total: total,
	}, nil
}

// paginate slices tasks to the requested 1-based page. limit <= 0 disables
// pagination and returns the whole slice.
func paginate(tasks []domain.Task, page, limit int) []domain.Task {
	if limit <= 0 {
		return tasks
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit
	if skip >= len(tasks) {
		return []domain.Task{}
	}
	end := skip + limit
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[skip:end]
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new task. All four fields must be non-empty; id and both
// timestamps are assigned by the store. A replayed Idempotency-Key returns
// the previously created task without side effects.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" || input.Description == "" || input.Status == "" || input.AssignedUserID == "" {
		return nil, domain.ErrMissingFields
	}

	if input.IdempotencyKey != "" {
		if id, ok, err := s.idem.Get(ctx, input.IdempotencyKey); err != nil {
			s.logger.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		} else if ok {
			existing, err := s.repo.FindByID(ctx, id)
			if err == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("task_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	task, err := s.repo.Create(ctx, ports.NewTask{
		Title:          input.Title,
		Description:    input.Description,
		Status:         domain.TaskStatus(input.Status),
		AssignedUserID: input.AssignedUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if input.IdempotencyKey != "" {
		if err := s.idem.Set(ctx, input.IdempotencyKey, task.ID); err != nil {
			s.logger.Warn().Err(err).Str("task_id", task.ID).Msg("failed to record idempotency key")
		}
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	s.publish(domain.AuditCreated, task.ID, nil)
	s.logger.Info().Str("task_id", task.ID).Str("status", string(task.Status)).Msg("task created")
	return task, nil
}

// Update merges the provided fields over the stored record and bumps
// updatedAt. id and createdAt are not part of TaskUpdate, so attempts to alter
// them are dropped during binding rather than erroring.
func (s *TaskService) Update(ctx context.Context, id string, update ports.TaskUpdate) (*domain.Task, error) {
	task, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	metrics.TasksUpdatedTotal.Inc()
	s.publish(domain.AuditUpdated, task.ID, update.Provided())
	s.logger.Info().Str("task_id", task.ID).Strs("fields", update.Provided()).Msg("task updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}

	metrics.TasksDeletedTotal.Inc()
	s.publish(domain.AuditDeleted, id, nil)
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) publish(action domain.AuditAction, id string, fields []string) {
	s.audit.Publish(domain.AuditEvent{
		Entity:    "task",
		Action:    action,
		EntityID:  id,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	})
}
