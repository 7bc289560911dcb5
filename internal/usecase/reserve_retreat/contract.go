package reserve_retreat

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// RetreatRepository интерфейс репозитория ретритов
type RetreatRepository interface {
	GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error)
	FindActiveReservation(ctx context.Context, userID, retreatID int64) (*domain.RetreatReservation, error)
	ListUserActiveReservationsOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.RetreatReservation, error)
	HasActiveHold(ctx context.Context, userID, retreatID int64) (bool, error)
	CreateReservation(ctx context.Context, res *domain.RetreatReservation) (*domain.RetreatReservation, error)
	RemoveFromWaitQueue(ctx context.Context, userID, retreatID int64) error
}

// TomatoRepository интерфейс журнала томатов
type TomatoRepository interface {
	CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error)
}

// CacheInvalidator сброс кэша карточки ретрита
type CacheInvalidator interface {
	Invalidate(ctx context.Context, retreatID int64)
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
