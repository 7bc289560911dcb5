package tomato

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	tomatoService "github.com/m04kA/blitz-booking/internal/service/tomato"
	"github.com/m04kA/blitz-booking/internal/service/tomato/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID в пути запроса"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgUnauthorized       = "пользователь не определён"
	msgAccessDenied       = "нет доступа к данным другого пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgMessageNotFound    = "сообщение не найдено"
	msgAlreadyReported    = "вы уже пожаловались на это сообщение"
)

type Handler struct {
	service TomatoService
	logger  Logger
}

func NewHandler(service TomatoService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetUserTomatoes GET /api/v1/users/{userId}/tomatoes
func (h *Handler) GetUserTomatoes(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	current, ok := middleware.GetUser(r.Context())
	if !ok || (current.ID != userID && !current.IsStaff) {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetUserTomatoes(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /users/{userId}/tomatoes", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreditTomato POST /api/v1/tomatoes
func (h *Handler) CreditTomato(w http.ResponseWriter, r *http.Request) {
	var req models.CreditTomatoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tomatoes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tomato, err := h.service.CreditTomato(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /tomatoes", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, tomato)
}

// ListMessages GET /api/v1/messages?limit=50
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListMessages(r.Context(), limit)
	if err != nil {
		h.respondServiceError(w, "GET /messages", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// PostMessage POST /api/v1/messages
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.PostMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	msg, err := h.service.PostMessage(r.Context(), user, &req)
	if err != nil {
		h.respondServiceError(w, "POST /messages", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, msg)
}

// ReportMessage POST /api/v1/messages/{id}/reports
func (h *Handler) ReportMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.ReportMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.service.ReportMessage(r.Context(), userID, messageID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /messages/{id}/reports", err)
		return
	}

	h.logger.Info("POST /messages/%d/reports - Reported by user_id=%d", messageID, userID)
	handlers.RespondJSON(w, http.StatusCreated, report)
}

// RecordAttendance POST /api/v1/attendances
// Повторная отметка возвращает 200 вместо 201
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.RecordAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordAttendance(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /attendances", err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	handlers.RespondJSON(w, status, result)
}

// CountAttendance GET /api/v1/attendances/{key}/count
// Клиенты опрашивают этот endpoint вместо websocket-подписки
func (h *Handler) CountAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CountAttendance(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		h.respondServiceError(w, "GET /attendances/{key}/count", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondServiceError ошибки сервиса томатов в HTTP коды
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tomatoService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, tomatoService.ErrUserNotFound):
		handlers.RespondNotFound(w, msgUserNotFound)
	case errors.Is(err, tomatoService.ErrMessageNotFound):
		handlers.RespondNotFound(w, msgMessageNotFound)
	case errors.Is(err, tomatoService.ErrAlreadyReported):
		handlers.RespondConflict(w, msgAlreadyReported)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
