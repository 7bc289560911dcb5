package reserve_timeslot

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// WorkplaceRepository интерфейс репозитория пространств и бронирований
type WorkplaceRepository interface {
	GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error)
	GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error)
	CountActiveReservations(ctx context.Context, timeslotID int64) (int, error)
	ListUserActiveReservationsOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Reservation, error)
	CreateReservation(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AddTickets(ctx context.Context, id int64, delta int) (int, error)
}

// TomatoRepository интерфейс журнала томатов
type TomatoRepository interface {
	CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error)
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
