package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/infrastructure/memory"
)

var discardLogger = zerolog.Nop()

// recordingPublisher collects published audit events synchronously.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (p *recordingPublisher) Publish(event domain.AuditEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) all() []domain.AuditEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AuditEvent, len(p.events))
	copy(out, p.events)
	return out
}

// newTaskService stands up a service over a fresh seeded store.
func newTaskService(t *testing.T) (*TaskService, *recordingPublisher) {
	t.Helper()
	store, err := memory.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	publisher := &recordingPublisher{}
	svc := NewTaskService(memory.NewTaskRepo(store), store.Idempotency(), publisher, discardLogger)
	return svc, publisher
}

// ---------------------------------------------------------------------------
// List filters
// ---------------------------------------------------------------------------

func TestTaskService_List_NoFilters(t *testing.T) {
	svc, _ := newTaskService(t)

	result, err := svc.List(context.Background(), ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 7 || len(result.Items) != 7 {
		t.Fatalf("expected all 7 tasks, got total=%d len=%d", result.Total, len(result.Items))
	}
}

func TestTaskService_List_StatusFilter(t *testing.T) {
	svc, _ := newTaskService(t)

	result, err := svc.List(context.Background(), ports.ListTasksInput{Status: "pending"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []string{"3", "4", "6"}
	if len(result.Items) != len(wantIDs) {
		t.Fatalf("expected %d pending tasks, got %d", len(wantIDs), len(result.Items))
	}
	for i, task := range result.Items {
		if task.Status != domain.StatusPending {
			t.Fatalf("non-pending task in result: %+v", task)
		}
		if task.ID != wantIDs[i] {
			t.Fatalf("result order broken: got %q at %d, want %q", task.ID, i, wantIDs[i])
		}
	}
}

func TestTaskService_List_TitleLike_CaseInsensitive(t *testing.T) {
	svc, _ := newTaskService(t)

	result, err := svc.List(context.Background(), ports.ListTasksInput{TitleLike: "doc"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Title != "Update Documentation" {
		t.Fatalf("expected only 'Update Documentation', got %+v", result.Items)
	}
}

func TestTaskService_List_FiltersCompose(t *testing.T) {
	svc, _ := newTaskService(t)

	// "Design Database Schema" matches title_like=data? no; use in-progress + "auth".
	result, err := svc.List(context.Background(), ports.ListTasksInput{Status: "in-progress", TitleLike: "auth"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "1" {
		t.Fatalf("expected only task 1, got %+v", result.Items)
	}

	// A matching title with a non-matching status must be excluded.
	result, _ = svc.List(context.Background(), ports.ListTasksInput{Status: "completed", TitleLike: "auth"})
	if len(result.Items) != 0 {
		t.Fatalf("AND composition broken: %+v", result.Items)
	}
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

func TestTaskService_List_Pagination(t *testing.T) {
	svc, _ := newTaskService(t)

	page1, err := svc.List(context.Background(), ports.ListTasksInput{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page1.Total != 7 {
		t.Fatalf("total must report the filtered count, got %d", page1.Total)
	}
	if len(page1.Items) != 3 || page1.Items[0].ID != "1" {
		t.Fatalf("unexpected first page: %+v", page1.Items)
	}

	page3, _ := svc.List(context.Background(), ports.ListTasksInput{Page: 3, Limit: 3})
	if len(page3.Items) != 1 || page3.Items[0].ID != "7" {
		t.Fatalf("unexpected last page: %+v", page3.Items)
	}

	beyond, _ := svc.List(context.Background(), ports.ListTasksInput{Page: 4, Limit: 3})
	if len(beyond.Items) != 0 {
		t.Fatalf("page past the end must be empty, got %+v", beyond.Items)
	}
}

func TestTaskService_List_ZeroLimitReturnsEverything(t *testing.T) {
	svc, _ := newTaskService(t)

	result, _ := svc.List(context.Background(), ports.ListTasksInput{Page: 5, Limit: 0})
	if len(result.Items) != 7 {
		t.Fatalf("limit 0 must disable pagination, got %d items", len(result.Items))
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	svc, publisher := newTaskService(t)

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "T", Description: "D", Status: "pending", AssignedUserID: "2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields missing: %+v", task)
	}

	events := publisher.all()
	if len(events) != 1 || events[0].Action != domain.AuditCreated || events[0].EntityID != task.ID {
		t.Fatalf("expected one created audit event, got %+v", events)
	}
}

func TestTaskService_Create_MissingFields(t *testing.T) {
	svc, publisher := newTaskService(t)

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "T", Description: "", Status: "pending", AssignedUserID: "2",
	})
	if err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if len(publisher.all()) != 0 {
		t.Fatalf("failed create must not publish audit events")
	}
}

func TestTaskService_Create_IdempotentReplay(t *testing.T) {
	svc, _ := newTaskService(t)

	input := ports.CreateTaskInput{
		Title: "T", Description: "D", Status: "pending", AssignedUserID: "2",
		IdempotencyKey: "req-123",
	}

	first, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replay created a new task: %q vs %q", second.ID, first.ID)
	}

	result, _ := svc.List(context.Background(), ports.ListTasksInput{TitleLike: "T"})
	count := 0
	for _, task := range result.Items {
		if task.ID == first.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one stored task for the key, found %d", count)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestTaskService_Update_PublishesChangedFields(t *testing.T) {
	svc, publisher := newTaskService(t)

	status := domain.StatusCompleted
	task, err := svc.Update(context.Background(), "4", ports.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if task.Status != domain.StatusCompleted {
		t.Fatalf("status not applied: %+v", task)
	}

	events := publisher.all()
	if len(events) != 1 || events[0].Action != domain.AuditUpdated {
		t.Fatalf("expected one updated event, got %+v", events)
	}
	if len(events[0].Fields) != 1 || events[0].Fields[0] != "status" {
		t.Fatalf("expected changed fields [status], got %v", events[0].Fields)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc, _ := newTaskService(t)

	title := "x"
	if _, err := svc.Update(context.Background(), "404", ports.TaskUpdate{Title: &title}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	svc, publisher := newTaskService(t)

	if err := svc.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "2"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "2"); err != domain.ErrTaskNotFound {
		t.Fatalf("second delete must report not found, got %v", err)
	}

	events := publisher.all()
	if len(events) != 1 || events[0].Action != domain.AuditDeleted || events[0].EntityID != "2" {
		t.Fatalf("expected one deleted event for id 2, got %+v", events)
	}
}
