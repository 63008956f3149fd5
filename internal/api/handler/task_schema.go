package handler

import (
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// messageResponse is the confirmation envelope for DELETE and the error
// envelope for all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

// createTaskRequest requires all four fields; the store assigns id and both
// timestamps, so anything else in the body is ignored.
type createTaskRequest struct {
	Title          string `json:"title"          validate:"required"`
	Description    string `json:"description"    validate:"required"`
	Status         string `json:"status"         validate:"required"`
	AssignedUserID string `json:"assignedUserId" validate:"required"`
}

// updateTaskRequest is a partial update: absent fields stay nil and leave the
// record untouched. id and createdAt have no counterpart here, which is how
// attempts to alter them are silently dropped.
type updateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
	AssignedUserID *string `json:"assignedUserId"`
}

func (r updateTaskRequest) toUpdate() ports.TaskUpdate {
	u := ports.TaskUpdate{
		Title:          r.Title,
		Description:    r.Description,
		AssignedUserID: r.AssignedUserID,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		u.Status = &status
	}
	return u
}

// reassigns reports whether the update touches anything beyond status. Used
// only in enforcement mode: non-admins may update status and nothing else.
func (r updateTaskRequest) reassigns() bool {
	return r.Title != nil || r.Description != nil || r.AssignedUserID != nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
