package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/gtask-api/internal/api/shared"
	"github.com/phrazzld/gtask-api/internal/service"
)

// Task success messages
const (
	MsgTaskCreated  = "Task created successfully"
	MsgTaskUpdated  = "Task updated successfully"
	MsgTaskDeleted  = "Task deleted successfully"
	MsgTaskRestored = "Task restored successfully"
)

// TaskHandler handles the /api/tasks endpoints. Every operation is scoped to
// the authenticated caller.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RequireTask rejects requests whose {id} does not name an active task of
// the caller with a 404, before the wrapped handler reads the body.
func (h *TaskHandler) RequireTask(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, taskID, ok := handleUserIDAndTaskID(w, r)
		if !ok {
			return
		}

		exists, err := h.taskService.Exists(r.Context(), userID, taskID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		if !exists {
			HandleAPIError(w, r, service.ErrTaskNotFound, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.fields())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, MsgTaskCreated, taskResponse(task))
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query, err := parseTaskQuery(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.taskService.List(r.Context(), userID, query)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, shared.DefaultSuccessMessage, TaskListResponse{
		Data:       taskResponses(page.Data),
		Pagination: page.Pagination,
	})
}

// ListDeletedTasks handles GET /api/tasks/deleted.
func (h *TaskHandler) ListDeletedTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListDeleted(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, shared.DefaultSuccessMessage, taskResponses(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, shared.DefaultSuccessMessage, taskResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id}. Only the fields present in the
// body change.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, req.patch())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskUpdated, taskResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}. Deleting an already deleted or
// unknown task still succeeds.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskDeleted, nil)
}

// RestoreTask handles POST /api/tasks/{id}/restore.
func (h *TaskHandler) RestoreTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Restore(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskRestored, taskResponse(task))
}
