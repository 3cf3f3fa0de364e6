package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/taskdeck-api/internal/api/metrics"
	"github.com/taskdeck/taskdeck-api/internal/core/domain"
	"github.com/taskdeck/taskdeck-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. The owning user is
// always the authenticated identity; no route accepts a user id.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create stores a new task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  taskEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), identity, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	return c.JSON(http.StatusCreated, taskEnvelope{Success: true, Task: toTaskResponse(task)})
}

// List returns the caller's tasks, newest-first.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  listTasksResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return c.JSON(http.StatusOK, listTasksResponse{Tasks: out})
}

// Update applies a partial update to a task the caller owns.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskEnvelope{Success: true, Task: toTaskResponse(task)})
}

// Delete removes a task the caller owns.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id  path  string  true  "Task id"
// @Success      204  "task deleted"
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Stats returns per-status counts over the caller's tasks.
//
// @Summary      Task statistics
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  domain.TaskStats
// @Failure      401  {object}  errorResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
