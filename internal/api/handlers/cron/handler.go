package cron

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	cronService "github.com/m04kA/blitz-booking/internal/service/cron"
	"github.com/m04kA/blitz-booking/internal/service/cron/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID задачи"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные задачи"
	msgInvalidSchedule    = "некорректное расписание задачи"
	msgTaskNotFound       = "задача не найдена"
)

type Handler struct {
	service CronService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service CronService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateTask POST /api/v1/cron/tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cron/tasks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	task, err := h.service.CreateTask(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /cron/tasks", err)
		return
	}

	h.logger.Info("POST /cron/tasks - Task created: task_id=%d, url=%s", task.ID, task.URL)
	handlers.RespondJSON(w, http.StatusCreated, task)
}

// ListTasks GET /api/v1/cron/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /cron/tasks", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, tasks)
}

// DeleteTask DELETE /api/v1/cron/tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		h.respondServiceError(w, "DELETE /cron/tasks/{id}", err)
		return
	}

	h.logger.Info("DELETE /cron/tasks/%d - Task deleted", taskID)
	handlers.RespondNoContent(w)
}

// ListExecutions GET /api/v1/cron/tasks/{id}/executions?limit=20
func (h *Handler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	taskID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListExecutions(r.Context(), taskID, limit)
	if err != nil {
		h.respondServiceError(w, "GET /cron/tasks/{id}/executions", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Execute POST /api/v1/cron/execute
// Внешний триггер: запускает все задачи, время которых наступило
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ExecuteDueTasks(r.Context(), h.now())
	if err != nil {
		h.respondServiceError(w, "POST /cron/execute", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondServiceError ошибки сервиса cron-задач в HTTP коды
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, cronService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, cronService.ErrInvalidSchedule):
		h.logger.Warn("%s - Invalid schedule: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
	case errors.Is(err, cronService.ErrTaskNotFound):
		handlers.RespondNotFound(w, msgTaskNotFound)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
