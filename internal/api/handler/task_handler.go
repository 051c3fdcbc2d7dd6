package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for the task lifecycle. Capability
// enforcement happens inside the service; the handler only shapes requests
// and responses.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Users handles GET /api/users, the assignment dropdown source.
//
// @Summary      List assignable users
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  actionResponse
// @Failure      403  {object}  actionResponse
// @Router       /api/users [get]
func (h *TaskHandler) Users(c echo.Context) error {
	users, err := h.service.ListAssignableUsers(c.Request().Context(), ctxPrincipal(c))
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, userListResponse{Success: true, Users: out})
}

// Tasks handles GET /api/tasks: every task, admin only.
//
// @Summary      List all tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  actionResponse
// @Failure      403  {object}  actionResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) Tasks(c echo.Context) error {
	tasks, err := h.service.ListAll(c.Request().Context(), ctxPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListResponse{Success: true, Tasks: toTaskResponses(tasks)})
}

// MyTasks handles GET /api/my-tasks: tasks assigned to the caller.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  actionResponse
// @Router       /api/my-tasks [get]
func (h *TaskHandler) MyTasks(c echo.Context) error {
	tasks, err := h.service.ListMine(c.Request().Context(), ctxPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListResponse{Success: true, Tasks: toTaskResponses(tasks)})
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      200   {object}  createTaskResponse
// @Failure      400   {object}  actionResponse
// @Failure      401   {object}  actionResponse
// @Failure      403   {object}  actionResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.AssignedTo != "" {
		id, err := strconv.ParseInt(req.AssignedTo, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
		}
		input.AssignedTo = &id
	}

	id, err := h.service.Create(c.Request().Context(), ctxPrincipal(c), input)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusOK, createTaskResponse{
		Success: true,
		Message: "Task created successfully",
		TaskID:  id,
	})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  actionResponse
// @Failure      404  {object}  actionResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, actionResponse{Success: true, Message: "Task deleted successfully"})
}

// Complete handles PATCH /api/tasks/:id/complete. Idempotent: completing an
// already completed task reports success again.
//
// @Summary      Mark a task completed
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  actionResponse
// @Failure      404  {object}  actionResponse
// @Router       /api/tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Complete(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}

	metrics.TasksCompletedTotal.Inc()
	return c.JSON(http.StatusOK, actionResponse{Success: true, Message: "Task marked as completed"})
}

// taskIDParam parses the :id route parameter. A non-numeric id can match no
// task, so it reports NotFound rather than a bad request.
func taskIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}

func toTaskResponses(tasks []ports.TaskView) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp := taskResponse{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			AssignedTo:  t.AssignedTo,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
		}
		if t.AssignedUsername != "" {
			name := t.AssignedUsername
			resp.Username = &name
		}
		out = append(out, resp)
	}
	return out
}
