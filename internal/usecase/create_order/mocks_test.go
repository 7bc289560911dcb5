package create_order

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
	"github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

type mockStoreRepo struct {
	mock.Mock
}

func (m *mockStoreRepo) GetMembership(ctx context.Context, id int64) (*domain.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *mockStoreRepo) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

// CreateOrder проставляет ID заказу и строкам, как это делает база
func (m *mockStoreRepo) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, o)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	o.ID = 100
	for i := range o.Lines {
		o.Lines[i].ID = int64(200 + i)
		o.Lines[i].OrderID = o.ID
	}
	return o, nil
}

func (m *mockStoreRepo) IncrementCouponUses(ctx context.Context, couponID, userID int64) error {
	args := m.Called(ctx, couponID, userID)
	return args.Error(0)
}

type mockRetreatRepo struct {
	mock.Mock
}

func (m *mockRetreatRepo) GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Retreat), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) AddTickets(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepo) SetMembership(ctx context.Context, id int64, membershipID int64, end time.Time) error {
	args := m.Called(ctx, id, membershipID, end)
	return args.Error(0)
}

type mockTomatoRepo struct {
	mock.Mock
}

func (m *mockTomatoRepo) CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tomato), args.Error(1)
}

type mockCoupons struct {
	mock.Mock
}

func (m *mockCoupons) Execute(ctx context.Context, req *validate_coupon.Request) (*validate_coupon.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validate_coupon.Response), args.Error(1)
}

type mockReserver struct {
	mock.Mock
	committed []*reserve_retreat.Response
}

func (m *mockReserver) Reserve(ctx context.Context, req *reserve_retreat.Request) (*reserve_retreat.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reserve_retreat.Response), args.Error(1)
}

func (m *mockReserver) AfterCommit(_ context.Context, resp *reserve_retreat.Response) {
	m.committed = append(m.committed, resp)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Charge(ctx context.Context, token string, amountCents int64, merchantRef string) (string, error) {
	args := m.Called(ctx, token, amountCents, merchantRef)
	return args.String(0), args.Error(1)
}

func (m *mockPayments) Refund(ctx context.Context, settlementID string, amountCents int64) (string, error) {
	args := m.Called(ctx, settlementID, amountCents)
	return args.String(0), args.Error(1)
}

type recordingNotifier struct {
	events []domain.Event
}

func (n *recordingNotifier) Publish(_ context.Context, e domain.Event) {
	n.events = append(n.events, e)
}

type recordingMetrics struct {
	orders []string
}

func (m *recordingMetrics) IncOrder(result string) {
	m.orders = append(m.orders, result)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
