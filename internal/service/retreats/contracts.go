package retreats

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// RetreatRepository интерфейс репозитория ретритов
type RetreatRepository interface {
	CreateRetreat(ctx context.Context, rt *domain.Retreat) (*domain.Retreat, error)
	GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error)
	ListRetreats(ctx context.Context, activeOnly bool, from time.Time) ([]*domain.Retreat, error)
	SetActive(ctx context.Context, id int64, active bool) error

	FindActiveReservation(ctx context.Context, userID, retreatID int64) (*domain.RetreatReservation, error)
	ListUserReservations(ctx context.Context, userID int64) ([]*domain.RetreatReservation, error)
	ListActiveReservationsByRetreat(ctx context.Context, retreatID int64) ([]*domain.RetreatReservation, error)

	AddToWaitQueue(ctx context.Context, entry *domain.WaitQueueEntry) (*domain.WaitQueueEntry, error)
	RemoveFromWaitQueue(ctx context.Context, userID, retreatID int64) error
	ListWaitQueue(ctx context.Context, retreatID int64) ([]*domain.WaitQueueEntry, error)
	CreateNotification(ctx context.Context, n *domain.WaitQueueNotification) (*domain.WaitQueueNotification, error)
	ListNotifiedUserIDs(ctx context.Context, retreatID int64) (map[int64]bool, error)
}

// CronTaskRepository интерфейс репозитория cron-задач (напоминания о ретритах)
type CronTaskRepository interface {
	Create(ctx context.Context, t *domain.CronTask) (*domain.CronTask, error)
}

// Cache кэш карточек ретритов
type Cache interface {
	Get(ctx context.Context, id int64) (*domain.Retreat, error)
	Set(ctx context.Context, rt *domain.Retreat) error
	Invalidate(ctx context.Context, id int64) error
}

// Notifier интерфейс рассылки уведомлений
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
