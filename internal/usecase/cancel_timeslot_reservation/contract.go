package cancel_timeslot_reservation

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// WorkplaceRepository интерфейс репозитория бронирований
type WorkplaceRepository interface {
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error)
	CancelReservation(ctx context.Context, id int64, reason domain.ReservationCancelationReason, at time.Time, ticketsRefunded int) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	AddTickets(ctx context.Context, id int64, delta int) (int, error)
}

// Notifier интерфейс рассылки уведомлений
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncReservation(kind, action string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
