package retreats

import (
	"context"

	"github.com/m04kA/blitz-booking/internal/service/retreats/models"
	cancelRetreatReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_retreat_reservation"
	reserveRetreat "github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
)

// RetreatService интерфейс сервиса ретритов
type RetreatService interface {
	CreateRetreat(ctx context.Context, req *models.CreateRetreatRequest) (*models.RetreatResponse, error)
	GetRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error)
	ListRetreats(ctx context.Context, req *models.ListRetreatsRequest) ([]*models.RetreatResponse, error)
	ActivateRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error)
	SendReminders(ctx context.Context, id int64, kind string) (*models.RemindResponse, error)
	JoinWaitQueue(ctx context.Context, userID, retreatID int64) (*models.WaitQueueResponse, error)
	LeaveWaitQueue(ctx context.Context, userID, retreatID int64) error
	NotifyWaitQueue(ctx context.Context, retreatID int64) (*models.NotifyWaitQueueResponse, error)
	ListUserReservations(ctx context.Context, userID int64) ([]*models.RetreatReservationResponse, error)
}

// ReserveRetreatUseCase интерфейс use case бронирования ретрита
type ReserveRetreatUseCase interface {
	Execute(ctx context.Context, req *reserveRetreat.Request) (*reserveRetreat.Response, error)
}

// CancelReservationUseCase интерфейс use case отмены бронирования ретрита
type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *cancelRetreatReservation.Request) (*cancelRetreatReservation.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
