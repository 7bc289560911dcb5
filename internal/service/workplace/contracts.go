package workplace

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// WorkplaceRepository интерфейс репозитория пространств, периодов и таймслотов
type WorkplaceRepository interface {
	CreateWorkplace(ctx context.Context, w *domain.Workplace) (*domain.Workplace, error)
	GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error)
	ListWorkplaces(ctx context.Context) ([]*domain.Workplace, error)

	CreatePeriod(ctx context.Context, p *domain.Period) (*domain.Period, error)
	GetPeriod(ctx context.Context, id int64) (*domain.Period, error)
	ListActivePeriods(ctx context.Context, workplaceID int64) ([]*domain.Period, error)

	CreateTimeslot(ctx context.Context, ts *domain.TimeSlot) (*domain.TimeSlot, error)
	GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error)
	ListOverlappingTimeslots(ctx context.Context, workplaceID int64, start, end time.Time) ([]*domain.TimeSlot, error)
	ListTimeslotsWithAvailability(ctx context.Context, workplaceID int64, from, to time.Time) ([]*domain.TimeSlotAvailability, error)
	DeleteTimeslot(ctx context.Context, id int64) error

	ListActiveReservationsByTimeslot(ctx context.Context, timeslotID int64) ([]*domain.Reservation, error)
	CancelReservation(ctx context.Context, id int64, reason domain.ReservationCancelationReason, at time.Time, ticketsRefunded int) error
	SetPresence(ctx context.Context, id int64, present bool) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	AddTickets(ctx context.Context, id int64, delta int) (int, error)
}

// Notifier интерфейс рассылки уведомлений
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics счётчики бронирований
type Metrics interface {
	IncReservation(kind, action string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
