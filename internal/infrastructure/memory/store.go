// Package memory implements the Record Store: the authoritative in-process
// collections of users and tasks. A single Store guards both collections with
// one mutex because the HTTP layer serves requests on parallel goroutines and
// reads and writes touch the same backing slices. Every read hands out copies
// so no caller can mutate a record outside the store's update paths.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// Store holds the user and task collections. It implements
// ports.TaskRepository, ports.UserRepository, and (as a fallback when Redis is
// not configured) ports.IdempotencyStore.
type Store struct {
	mu     sync.RWMutex
	users  []domain.User
	tasks  []domain.Task
	idem   map[string]string
	lastID int64
}

// NewStore returns a Store populated with the seed data.
func NewStore() (*Store, error) {
	users, err := seedUsers()
	if err != nil {
		return nil, err
	}
	s := &Store{}
	s.seed(users)
	return s, nil
}

// Reset restores both collections to their seed state. Not reachable from the
// HTTP surface; it exists for deterministic tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := seedUsers()
	if err != nil {
		// seed data is static; hashing it cannot fail at runtime
		panic(err)
	}
	s.seed(users)
}

// seed installs fresh copies of the seed collections. Callers hold the lock
// (or own the store exclusively, as in NewStore).
func (s *Store) seed(users []domain.User) {
	s.users = users
	s.tasks = seedTasks()
	s.idem = make(map[string]string)
	s.lastID = 0
}

// --- ports.UserRepository ---

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// --- ports.TaskRepository ---
// Exposed through the TaskRepo wrapper so the two repository interfaces keep
// distinct method sets despite sharing the one locked store.

// TaskRepo adapts a Store to ports.TaskRepository.
type TaskRepo struct {
	store *Store
}

// NewTaskRepo returns the task-collection view of the store.
func NewTaskRepo(store *Store) *TaskRepo {
	return &TaskRepo{store: store}
}

func (r *TaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *TaskRepo) Create(ctx context.Context, fields ports.NewTask) (*domain.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := domain.Task{
		ID:             s.nextID(now),
		Title:          fields.Title,
		Description:    fields.Description,
		Status:         fields.Status,
		AssignedUserID: fields.AssignedUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.tasks = append(s.tasks, task)

	clone := task
	return &clone, nil
}

func (r *TaskRepo) Update(ctx context.Context, id string, update ports.TaskUpdate) (*domain.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if update.Title != nil {
			t.Title = *update.Title
		}
		if update.Description != nil {
			t.Description = *update.Description
		}
		if update.Status != nil {
			t.Status = *update.Status
		}
		if update.AssignedUserID != nil {
			t.AssignedUserID = *update.AssignedUserID
		}
		// updatedAt moves on every successful merge, even a no-op one;
		// id and createdAt are not reachable through TaskUpdate.
		t.UpdatedAt = time.Now().UTC()

		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// nextID derives a unique id from the wall clock, bumping past the previous
// one when two creations land on the same millisecond. Callers hold the lock.
func (s *Store) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// --- ports.IdempotencyStore (fallback when Redis is not configured) ---

// Idempotency returns the in-process idempotency-key view of the store.
func (s *Store) Idempotency() *IdemStore {
	return &IdemStore{store: s}
}

// IdemStore keeps Idempotency-Key → task-id mappings in process memory. Like
// the rest of the store it does not survive restarts.
type IdemStore struct {
	store *Store
}

func (i *IdemStore) Get(ctx context.Context, key string) (string, bool, error) {
	s := i.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idem[key]
	return id, ok, nil
}

func (i *IdemStore) Set(ctx context.Context, key, taskID string) error {
	s := i.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idem[key] = taskID
	return nil
}
