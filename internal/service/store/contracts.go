package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// StoreRepository интерфейс репозитория магазина
type StoreRepository interface {
	CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error)
	GetMembership(ctx context.Context, id int64) (*domain.Membership, error)
	ListMemberships(ctx context.Context, availableOnly bool) ([]*domain.Membership, error)
	CreatePackage(ctx context.Context, p *domain.Package) (*domain.Package, error)
	ListPackages(ctx context.Context, availableOnly bool) ([]*domain.Package, error)

	CreateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)

	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderLine(ctx context.Context, id int64) (*domain.OrderLine, error)
	SumRefunded(ctx context.Context, orderLineID int64) (decimal.Decimal, error)
	CreateRefund(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
}

// PaymentGateway интерфейс платёжного шлюза для возвратов
type PaymentGateway interface {
	Refund(ctx context.Context, settlementID string, amountCents int64) (string, error)
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
