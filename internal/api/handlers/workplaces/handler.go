package workplaces

import (
	"errors"
	"net/http"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	workplaceService "github.com/m04kA/blitz-booking/internal/service/workplace"
	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
	cancelTimeslotReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_timeslot_reservation"
	generateTimeslots "github.com/m04kA/blitz-booking/internal/usecase/generate_timeslots"
	reserveTimeslot "github.com/m04kA/blitz-booking/internal/usecase/reserve_timeslot"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidID              = "некорректный ID в пути запроса"
	msgInvalidQuery           = "некорректные параметры запроса"
	msgInvalidInput           = "некорректные данные запроса"
	msgWorkplaceNotFound      = "пространство не найдено"
	msgPeriodNotFound         = "период не найден"
	msgTimeslotNotFound       = "таймслот не найден"
	msgReservationNotFound    = "бронирование не найдено"
	msgPeriodOverlap          = "период пересекается с другим активным периодом"
	msgTimeslotOverlap        = "таймслот пересекается с существующим"
	msgTimeslotOutsidePeriod  = "таймслот выходит за границы периода"
	msgTimeslotHasReservation = "у таймслота есть активные бронирования, используйте force=true"
	msgInvalidTimezone        = "некорректный часовой пояс пространства"
	msgTooManyTimeslots       = "слишком много таймслотов за один запрос"
	msgTimeslotStarted        = "таймслот уже начался"
	msgUserNotFound           = "пользователь не найден"
	msgAlreadyReserved        = "таймслот уже забронирован"
	msgOverlappingReservation = "у вас есть бронирование, пересекающееся по времени"
	msgTimeslotFull           = "свободных мест нет"
	msgInsufficientTickets    = "недостаточно билетов"
	msgAccessDenied           = "бронирование принадлежит другому пользователю"
	msgAlreadyCancelled       = "бронирование уже отменено"
	msgUnauthorized           = "пользователь не определён"
)

type Handler struct {
	service  WorkplaceService
	generate GenerateTimeslotsUseCase
	reserve  ReserveTimeslotUseCase
	cancel   CancelReservationUseCase
	logger   Logger
}

func NewHandler(
	service WorkplaceService,
	generate GenerateTimeslotsUseCase,
	reserve ReserveTimeslotUseCase,
	cancel CancelReservationUseCase,
	logger Logger,
) *Handler {
	return &Handler{
		service:  service,
		generate: generate,
		reserve:  reserve,
		cancel:   cancel,
		logger:   logger,
	}
}

// CreateWorkplace POST /api/v1/workplaces
func (h *Handler) CreateWorkplace(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkplaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workplaces - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	workplace, err := h.service.CreateWorkplace(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /workplaces", err)
		return
	}

	h.logger.Info("POST /workplaces - Workplace created: workplace_id=%d", workplace.ID)
	handlers.RespondJSON(w, http.StatusCreated, workplace)
}

// ListWorkplaces GET /api/v1/workplaces
func (h *Handler) ListWorkplaces(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListWorkplaces(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /workplaces", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// CreatePeriod POST /api/v1/workplaces/{id}/periods
func (h *Handler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	workplaceID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.CreatePeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workplaces/%d/periods - Invalid request body: %v", workplaceID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	period, err := h.service.CreatePeriod(r.Context(), workplaceID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /workplaces/{id}/periods", err)
		return
	}

	h.logger.Info("POST /workplaces/%d/periods - Period created: period_id=%d", workplaceID, period.ID)
	handlers.RespondJSON(w, http.StatusCreated, period)
}

// CreateTimeslot POST /api/v1/periods/{id}/timeslots
func (h *Handler) CreateTimeslot(w http.ResponseWriter, r *http.Request) {
	periodID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.CreateTimeslotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /periods/%d/timeslots - Invalid request body: %v", periodID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ts, err := h.service.CreateTimeslot(r.Context(), periodID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /periods/{id}/timeslots", err)
		return
	}

	h.logger.Info("POST /periods/%d/timeslots - Timeslot created: timeslot_id=%d", periodID, ts.ID)
	handlers.RespondJSON(w, http.StatusCreated, ts)
}

// GenerateTimeslots POST /api/v1/periods/{id}/timeslots/generate
func (h *Handler) GenerateTimeslots(w http.ResponseWriter, r *http.Request) {
	periodID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req GenerateTimeslotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /periods/%d/timeslots/generate - Invalid request body: %v", periodID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	useCaseReq, err := req.ToUseCaseRequest(periodID)
	if err != nil {
		h.logger.Warn("POST /periods/%d/timeslots/generate - Failed to parse request: %v", periodID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.generate.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateTimeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, generateTimeslots.ErrPeriodNotFound):
			handlers.RespondNotFound(w, msgPeriodNotFound)
		case errors.Is(err, generateTimeslots.ErrTooManyTimeslots):
			handlers.RespondBadRequest(w, msgTooManyTimeslots)
		case errors.Is(err, generateTimeslots.ErrInvalidTimezone):
			h.logger.Error("POST /periods/%d/timeslots/generate - %v", periodID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTimezone)
		default:
			h.logger.Error("POST /periods/%d/timeslots/generate - Failed to generate timeslots: %v", periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /periods/%d/timeslots/generate - created=%d, skipped=%d", periodID, len(result.Created), result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromGenerateResponse(result))
}

// ListTimeslots GET /api/v1/workplaces/{id}/timeslots?from&to
func (h *Handler) ListTimeslots(w http.ResponseWriter, r *http.Request) {
	workplaceID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	from, errFrom := handlers.QueryTime(r, "from")
	to, errTo := handlers.QueryTime(r, "to")
	if errFrom != nil || errTo != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.ListTimeslots(r.Context(), &models.ListTimeslotsRequest{
		WorkplaceID: workplaceID,
		From:        from,
		To:          to,
	})
	if err != nil {
		h.respondServiceError(w, "GET /workplaces/{id}/timeslots", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// DeleteTimeslot DELETE /api/v1/timeslots/{id}?force=true
func (h *Handler) DeleteTimeslot(w http.ResponseWriter, r *http.Request) {
	timeslotID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	force, err := handlers.QueryBool(r, "force", false)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.DeleteTimeslot(r.Context(), timeslotID, &models.DeleteTimeslotRequest{Force: force})
	if err != nil {
		h.respondServiceError(w, "DELETE /timeslots/{id}", err)
		return
	}

	h.logger.Info("DELETE /timeslots/%d - Timeslot deleted: cancelled=%d, refunded=%d",
		timeslotID, result.CancelledReservations, result.TicketsRefunded)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Reserve POST /api/v1/timeslots/{id}/reservations
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	timeslotID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.reserve.Execute(r.Context(), &reserveTimeslot.Request{UserID: userID, TimeslotID: timeslotID})
	if err != nil {
		switch {
		case errors.Is(err, reserveTimeslot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, reserveTimeslot.ErrTimeslotNotFound):
			handlers.RespondNotFound(w, msgTimeslotNotFound)
		case errors.Is(err, reserveTimeslot.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		case errors.Is(err, reserveTimeslot.ErrTimeslotStarted):
			handlers.RespondBadRequest(w, msgTimeslotStarted)
		case errors.Is(err, reserveTimeslot.ErrAlreadyReserved):
			handlers.RespondConflict(w, msgAlreadyReserved)
		case errors.Is(err, reserveTimeslot.ErrOverlappingReservation):
			handlers.RespondConflict(w, msgOverlappingReservation)
		case errors.Is(err, reserveTimeslot.ErrTimeslotFull):
			handlers.RespondConflict(w, msgTimeslotFull)
		case errors.Is(err, reserveTimeslot.ErrInsufficientTickets):
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientTickets)
		default:
			h.logger.Error("POST /timeslots/%d/reservations - Failed to reserve: user_id=%d, error=%v", timeslotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeslots/%d/reservations - Reservation created: reservation_id=%d, user_id=%d",
		timeslotID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromReserveResponse(result))
}

// CancelReservation PATCH /api/v1/reservations/{id}/cancel
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

	result, err := h.cancel.Execute(r.Context(), &cancelTimeslotReservation.Request{UserID: userID, ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, cancelTimeslotReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, cancelTimeslotReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, cancelTimeslotReservation.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, cancelTimeslotReservation.ErrAlreadyCancelled):
			handlers.RespondConflict(w, msgAlreadyCancelled)
		case errors.Is(err, cancelTimeslotReservation.ErrTimeslotStarted):
			handlers.RespondBadRequest(w, msgTimeslotStarted)
		default:
			h.logger.Error("PATCH /reservations/%d/cancel - Failed to cancel: user_id=%d, error=%v", reservationID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/cancel - Reservation cancelled: user_id=%d, tickets_refunded=%d",
		reservationID, userID, result.TicketsRefunded)
	handlers.RespondJSON(w, http.StatusOK, FromCancelResponse(result))
}

// MarkPresence PATCH /api/v1/reservations/{id}/presence
func (h *Handler) MarkPresence(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.PresenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.MarkPresence(r.Context(), reservationID, &req); err != nil {
		h.respondServiceError(w, "PATCH /reservations/{id}/presence", err)
		return
	}
	handlers.RespondNoContent(w)
}

// respondServiceError ошибки сервиса пространств в HTTP коды
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, workplaceService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, workplaceService.ErrWorkplaceNotFound):
		handlers.RespondNotFound(w, msgWorkplaceNotFound)
	case errors.Is(err, workplaceService.ErrPeriodNotFound):
		handlers.RespondNotFound(w, msgPeriodNotFound)
	case errors.Is(err, workplaceService.ErrTimeslotNotFound):
		handlers.RespondNotFound(w, msgTimeslotNotFound)
	case errors.Is(err, workplaceService.ErrReservationNotFound):
		handlers.RespondNotFound(w, msgReservationNotFound)
	case errors.Is(err, workplaceService.ErrPeriodOverlap):
		handlers.RespondConflict(w, msgPeriodOverlap)
	case errors.Is(err, workplaceService.ErrTimeslotOverlap):
		handlers.RespondConflict(w, msgTimeslotOverlap)
	case errors.Is(err, workplaceService.ErrTimeslotOutsidePeriod):
		handlers.RespondBadRequest(w, msgTimeslotOutsidePeriod)
	case errors.Is(err, workplaceService.ErrTimeslotHasReservations):
		handlers.RespondConflict(w, msgTimeslotHasReservation)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
