package create_order

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
	"github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

// StoreRepository интерфейс репозитория магазина
type StoreRepository interface {
	GetMembership(ctx context.Context, id int64) (*domain.Membership, error)
	GetPackage(ctx context.Context, id int64) (*domain.Package, error)
	CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error)
	IncrementCouponUses(ctx context.Context, couponID, userID int64) error
}

// RetreatRepository чтение ретритов для расчёта цены
type RetreatRepository interface {
	GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AddTickets(ctx context.Context, id int64, delta int) (int, error)
	SetMembership(ctx context.Context, id int64, membershipID int64, end time.Time) error
}

// TomatoRepository интерфейс журнала томатов
type TomatoRepository interface {
	CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error)
}

// CouponValidator проверка купона и расчёт скидки
type CouponValidator interface {
	Execute(ctx context.Context, req *validate_coupon.Request) (*validate_coupon.Response, error)
}

// RetreatReserver бронирование ретрита внутри транзакции заказа
type RetreatReserver interface {
	Reserve(ctx context.Context, req *reserve_retreat.Request) (*reserve_retreat.Response, error)
	AfterCommit(ctx context.Context, resp *reserve_retreat.Response)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, token string, amountCents int64, merchantRef string) (string, error)
	Refund(ctx context.Context, settlementID string, amountCents int64) (string, error)
}

// Notifier интерфейс рассылки уведомлений
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncOrder(result string)
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
