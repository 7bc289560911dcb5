package retreats

import (
	"errors"
	"net/http"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	retreatsService "github.com/m04kA/blitz-booking/internal/service/retreats"
	"github.com/m04kA/blitz-booking/internal/service/retreats/models"
	cancelRetreatReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_retreat_reservation"
	reserveRetreat "github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidID              = "некорректный ID в пути запроса"
	msgInvalidQuery           = "некорректные параметры запроса"
	msgInvalidInput           = "некорректные данные ретрита"
	msgRetreatNotFound        = "ретрит не найден"
	msgRetreatNotFull         = "на ретрите есть свободные места, очередь не нужна"
	msgAlreadyReserved        = "ретрит уже забронирован"
	msgAlreadyQueued          = "вы уже в очереди ожидания"
	msgNotQueued              = "вы не состоите в очереди ожидания"
	msgInvalidReminderKind    = "неизвестный тип напоминания"
	msgRetreatStarted         = "ретрит уже начался"
	msgRetreatFull            = "свободных мест нет"
	msgOverlappingReservation = "у пользователя есть ретрит, пересекающийся по датам"
	msgReservationNotFound    = "бронирование не найдено"
	msgAccessDenied           = "бронирование принадлежит другому пользователю"
	msgAlreadyCancelled       = "бронирование уже отменено"
	msgRefundFailed           = "не удалось вернуть оплату, попробуйте позже"
	msgUnauthorized           = "пользователь не определён"
)

type Handler struct {
	service RetreatService
	reserve ReserveRetreatUseCase
	cancel  CancelReservationUseCase
	logger  Logger
}

func NewHandler(service RetreatService, reserve ReserveRetreatUseCase, cancel CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		reserve: reserve,
		cancel:  cancel,
		logger:  logger,
	}
}

// CreateRetreat POST /api/v1/retreats
func (h *Handler) CreateRetreat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRetreatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /retreats - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	retreat, err := h.service.CreateRetreat(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /retreats", err)
		return
	}

	h.logger.Info("POST /retreats - Retreat created: retreat_id=%d", retreat.ID)
	handlers.RespondJSON(w, http.StatusCreated, retreat)
}

// ListRetreats GET /api/v1/retreats?active=true&from=2026-01-01
func (h *Handler) ListRetreats(w http.ResponseWriter, r *http.Request) {
	activeOnly, errActive := handlers.QueryBool(r, "active", true)
	from, errFrom := handlers.QueryTime(r, "from")
	if errActive != nil || errFrom != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListRetreats(r.Context(), &models.ListRetreatsRequest{ActiveOnly: activeOnly, From: from})
	if err != nil {
		h.respondServiceError(w, "GET /retreats", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// GetRetreat GET /api/v1/retreats/{id}
func (h *Handler) GetRetreat(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	retreat, err := h.service.GetRetreat(r.Context(), retreatID)
	if err != nil {
		h.respondServiceError(w, "GET /retreats/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, retreat)
}

// ActivateRetreat POST /api/v1/retreats/{id}/activate
func (h *Handler) ActivateRetreat(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	retreat, err := h.service.ActivateRetreat(r.Context(), retreatID)
	if err != nil {
		h.respondServiceError(w, "POST /retreats/{id}/activate", err)
		return
	}

	h.logger.Info("POST /retreats/%d/activate - Retreat activated", retreatID)
	handlers.RespondJSON(w, http.StatusOK, retreat)
}

// Remind GET /api/v1/internal/retreats/{id}/remind?kind=reminder
// Вызывается cron-задачами, созданными при активации ретрита
func (h *Handler) Remind(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.SendReminders(r.Context(), retreatID, r.URL.Query().Get("kind"))
	if err != nil {
		h.respondServiceError(w, "GET /internal/retreats/{id}/remind", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Reserve POST /api/v1/retreats/{id}/reservations
// Бронирование сотрудником без оплаты; покупатели бронируют через заказ
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /retreats/%d/reservations - Invalid request body: %v", retreatID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.reserve.Execute(r.Context(), &reserveRetreat.Request{UserID: req.UserID, RetreatID: retreatID})
	if err != nil {
		switch {
		case errors.Is(err, reserveRetreat.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, reserveRetreat.ErrRetreatNotFound):
			handlers.RespondNotFound(w, msgRetreatNotFound)
		case errors.Is(err, reserveRetreat.ErrRetreatStarted):
			handlers.RespondBadRequest(w, msgRetreatStarted)
		case errors.Is(err, reserveRetreat.ErrRetreatFull):
			handlers.RespondConflict(w, msgRetreatFull)
		case errors.Is(err, reserveRetreat.ErrAlreadyReserved):
			handlers.RespondConflict(w, msgAlreadyReserved)
		case errors.Is(err, reserveRetreat.ErrOverlappingReservation):
			handlers.RespondConflict(w, msgOverlappingReservation)
		default:
			h.logger.Error("POST /retreats/%d/reservations - Failed to reserve: user_id=%d, error=%v", retreatID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /retreats/%d/reservations - Reservation created: reservation_id=%d, user_id=%d",
		retreatID, result.ID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromReserveResponse(result))
}

// CancelReservation PATCH /api/v1/retreat-reservations/{id}/cancel
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.cancel.Execute(r.Context(), &cancelRetreatReservation.Request{UserID: userID, ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, cancelRetreatReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, cancelRetreatReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, cancelRetreatReservation.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, cancelRetreatReservation.ErrAlreadyCancelled):
			handlers.RespondConflict(w, msgAlreadyCancelled)
		case errors.Is(err, cancelRetreatReservation.ErrRefundFailed):
			h.logger.Warn("PATCH /retreat-reservations/%d/cancel - Refund failed: %v", reservationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)
		default:
			h.logger.Error("PATCH /retreat-reservations/%d/cancel - Failed to cancel: user_id=%d, error=%v", reservationID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /retreat-reservations/%d/cancel - Reservation cancelled: action=%s, refunded=%s",
		reservationID, result.Action, result.RefundedAmount)
	handlers.RespondJSON(w, http.StatusOK, FromCancelResponse(result))
}

// JoinWaitQueue POST /api/v1/retreats/{id}/wait-queue
func (h *Handler) JoinWaitQueue(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	entry, err := h.service.JoinWaitQueue(r.Context(), userID, retreatID)
	if err != nil {
		h.respondServiceError(w, "POST /retreats/{id}/wait-queue", err)
		return
	}

	h.logger.Info("POST /retreats/%d/wait-queue - User %d joined wait queue", retreatID, userID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}

// LeaveWaitQueue DELETE /api/v1/retreats/{id}/wait-queue
func (h *Handler) LeaveWaitQueue(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.LeaveWaitQueue(r.Context(), userID, retreatID); err != nil {
		h.respondServiceError(w, "DELETE /retreats/{id}/wait-queue", err)
		return
	}
	handlers.RespondNoContent(w)
}

// NotifyWaitQueue POST /api/v1/retreats/{id}/wait-queue/notify
func (h *Handler) NotifyWaitQueue(w http.ResponseWriter, r *http.Request) {
	retreatID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.NotifyWaitQueue(r.Context(), retreatID)
	if err != nil {
		h.respondServiceError(w, "POST /retreats/{id}/wait-queue/notify", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListUserReservations GET /api/v1/users/{userId}/retreat-reservations
func (h *Handler) ListUserReservations(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.service.ListUserReservations(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /users/{userId}/retreat-reservations", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// respondServiceError ошибки сервиса ретритов в HTTP коды
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, retreatsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, retreatsService.ErrRetreatNotFound):
		handlers.RespondNotFound(w, msgRetreatNotFound)
	case errors.Is(err, retreatsService.ErrRetreatNotFull):
		handlers.RespondConflict(w, msgRetreatNotFull)
	case errors.Is(err, retreatsService.ErrAlreadyReserved):
		handlers.RespondConflict(w, msgAlreadyReserved)
	case errors.Is(err, retreatsService.ErrAlreadyQueued):
		handlers.RespondConflict(w, msgAlreadyQueued)
	case errors.Is(err, retreatsService.ErrNotQueued):
		handlers.RespondNotFound(w, msgNotQueued)
	case errors.Is(err, retreatsService.ErrInvalidReminderKind):
		handlers.RespondBadRequest(w, msgInvalidReminderKind)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
