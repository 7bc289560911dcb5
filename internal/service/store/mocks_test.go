package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateMembership(ctx context.Context, ms *domain.Membership) (*domain.Membership, error) {
	args := m.Called(ctx, ms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *mockRepo) GetMembership(ctx context.Context, id int64) (*domain.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *mockRepo) ListMemberships(ctx context.Context, availableOnly bool) ([]*domain.Membership, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

func (m *mockRepo) CreatePackage(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *mockRepo) ListPackages(ctx context.Context, availableOnly bool) ([]*domain.Package, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Package), args.Error(1)
}

func (m *mockRepo) CreateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *mockRepo) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockRepo) GetOrderLine(ctx context.Context, id int64) (*domain.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderLine), args.Error(1)
}

func (m *mockRepo) SumRefunded(ctx context.Context, orderLineID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, orderLineID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepo) CreateRefund(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	args := m.Called(ctx, refund)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Refund(ctx context.Context, settlementID string, amountCents int64) (string, error) {
	args := m.Called(ctx, settlementID, amountCents)
	return args.String(0), args.Error(1)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
