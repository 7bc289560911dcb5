package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	usersService "github.com/m04kA/blitz-booking/internal/service/users"
	"github.com/m04kA/blitz-booking/internal/service/users/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidUserID       = "некорректный ID пользователя"
	msgInvalidInput        = "некорректные данные пользователя"
	msgUserNotFound        = "пользователь не найден"
	msgEmailTaken          = "пользователь с таким email уже существует"
	msgAccessDenied        = "нет доступа к данным другого пользователя"
	msgInsufficientTickets = "недостаточно билетов"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usersService.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, usersService.ErrEmailTaken):
			h.logger.Warn("POST /users - Email taken: %s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)
		default:
			h.logger.Error("POST /users - Failed to create user: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Get GET /api/v1/users/{userId}
// Пользователь видит только свой профиль
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}
	if !h.ownsOrStaff(r, userID) {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usersService.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /users/%d - Failed to get user: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// AdjustTickets POST /api/v1/users/{userId}/tickets (только сотрудники)
func (h *Handler) AdjustTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.AdjustTicketsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/%d/tickets - Invalid request body: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.AdjustTickets(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, usersService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		case errors.Is(err, usersService.ErrInsufficientTickets):
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientTickets)
		default:
			h.logger.Error("POST /users/%d/tickets - Failed to adjust tickets: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/%d/tickets - Tickets adjusted by %d, balance=%d", userID, req.Delta, user.Tickets)
	handlers.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) ownsOrStaff(r *http.Request, userID int64) bool {
	current, ok := middleware.GetUser(r.Context())
	return ok && (current.ID == userID || current.IsStaff)
}
