package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
	// enforceRoles mirrors the router's ENFORCE_RBAC mode: when set,
	// non-admins may only touch a task's status through PATCH.
	enforceRoles bool
}

func NewTaskHandler(service ports.TaskService, enforceRoles bool) *TaskHandler {
	return &TaskHandler{service: service, enforceRoles: enforceRoles}
}

// List handles GET /tasks.
//
// @Summary      List tasks with optional filters
// @Tags         tasks
// @Produce      json
// @Param        status      query     string  false  "Exact status filter (pending, in-progress, completed)"
// @Param        title_like  query     string  false  "Case-insensitive substring filter on title"
// @Param        page        query     int     false  "1-based page (requires limit)"
// @Param        limit       query     int     false  "Page size, capped at 100; omit for the full list"
// @Success      200         {array}   domain.Task
// @Header       200         {string}  X-Total-Count  "Filtered count before pagination"
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		Status:    c.QueryParam("status"),
		TitleLike: c.QueryParam("title_like"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	return c.JSON(http.StatusOK, result.Items)
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  messageResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Replay-safe creation key"
// @Param        body             body      createTaskRequest  true   "Task fields"
// @Success      201              {object}  domain.Task
// @Failure      400              {object}  messageResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedRequest
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrMissingFields
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// Update handles PATCH /tasks/:id.
//
// @Summary      Partially update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedRequest
	}

	if h.enforceRoles {
		role, _ := c.Get("role").(string)
		if role != domain.RoleAdmin && req.reassigns() {
			return domain.ErrForbidden
		}
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
}
