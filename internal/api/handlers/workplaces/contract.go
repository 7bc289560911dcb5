package workplaces

import (
	"context"

	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
	cancelTimeslotReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_timeslot_reservation"
	generateTimeslots "github.com/m04kA/blitz-booking/internal/usecase/generate_timeslots"
	reserveTimeslot "github.com/m04kA/blitz-booking/internal/usecase/reserve_timeslot"
)

// WorkplaceService интерфейс сервиса пространств
type WorkplaceService interface {
	CreateWorkplace(ctx context.Context, req *models.CreateWorkplaceRequest) (*models.WorkplaceResponse, error)
	ListWorkplaces(ctx context.Context) ([]*models.WorkplaceResponse, error)
	CreatePeriod(ctx context.Context, workplaceID int64, req *models.CreatePeriodRequest) (*models.PeriodResponse, error)
	CreateTimeslot(ctx context.Context, periodID int64, req *models.CreateTimeslotRequest) (*models.TimeslotResponse, error)
	ListTimeslots(ctx context.Context, req *models.ListTimeslotsRequest) (*models.TimeslotListResponse, error)
	DeleteTimeslot(ctx context.Context, timeslotID int64, req *models.DeleteTimeslotRequest) (*models.DeleteTimeslotResponse, error)
	MarkPresence(ctx context.Context, reservationID int64, req *models.PresenceRequest) error
}

// GenerateTimeslotsUseCase интерфейс use case генерации таймслотов
type GenerateTimeslotsUseCase interface {
	Execute(ctx context.Context, req *generateTimeslots.Request) (*generateTimeslots.Response, error)
}

// ReserveTimeslotUseCase интерфейс use case бронирования таймслота
type ReserveTimeslotUseCase interface {
	Execute(ctx context.Context, req *reserveTimeslot.Request) (*reserveTimeslot.Response, error)
}

// CancelReservationUseCase интерфейс use case отмены бронирования таймслота
type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *cancelTimeslotReservation.Request) (*cancelTimeslotReservation.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
