package cancel_retreat_reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatModels "github.com/m04kA/blitz-booking/internal/service/retreats/models"
	storeModels "github.com/m04kA/blitz-booking/internal/service/store/models"
)

// RetreatRepository интерфейс репозитория ретритов
type RetreatRepository interface {
	GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error)
	GetReservation(ctx context.Context, id int64) (*domain.RetreatReservation, error)
	CancelReservation(
		ctx context.Context,
		id int64,
		reason domain.RetreatCancelationReason,
		action domain.CancelationAction,
		at time.Time,
	) error
}

// OrderLineRepository чтение строк заказа
type OrderLineRepository interface {
	GetOrderLine(ctx context.Context, id int64) (*domain.OrderLine, error)
}

// Refunder возврат денег по строке заказа через платёжный шлюз
type Refunder interface {
	RefundOrderLine(ctx context.Context, orderLineID int64, amount decimal.Decimal) (*storeModels.RefundResponse, error)
}

// WaitQueue оповещение очереди ожидания о свободном месте
type WaitQueue interface {
	NotifyWaitQueue(ctx context.Context, retreatID int64) (*retreatModels.NotifyWaitQueueResponse, error)
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
