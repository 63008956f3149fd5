package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrMissingFields = errors.New("missing required fields")
var ErrMalformedRequest = errors.New("invalid request")
var ErrForbidden = errors.New("forbidden")

// IsValid reports whether s is one of the known workflow states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is the core aggregate. AssignedUserID references a User but is
// deliberately not validated against user existence.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	AssignedUserID string     `json:"assignedUserId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
