package cancel_retreat_reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatModels "github.com/m04kA/blitz-booking/internal/service/retreats/models"
	storeModels "github.com/m04kA/blitz-booking/internal/service/store/models"
)

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

func (m *mockRetreatRepo) GetReservation(ctx context.Context, id int64) (*domain.RetreatReservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetreatReservation), args.Error(1)
}

func (m *mockRetreatRepo) CancelReservation(
	ctx context.Context,
	id int64,
	reason domain.RetreatCancelationReason,
	action domain.CancelationAction,
	at time.Time,
) error {
	args := m.Called(ctx, id, reason, action, at)
	return args.Error(0)
}

type mockOrderLineRepo struct {
	mock.Mock
}

func (m *mockOrderLineRepo) GetOrderLine(ctx context.Context, id int64) (*domain.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderLine), args.Error(1)
}

type mockRefunder struct {
	mock.Mock
}

func (m *mockRefunder) RefundOrderLine(ctx context.Context, orderLineID int64, amount decimal.Decimal) (*storeModels.RefundResponse, error) {
	args := m.Called(ctx, orderLineID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModels.RefundResponse), args.Error(1)
}

type mockWaitQueue struct {
	mock.Mock
	invalidated []int64
}

func (m *mockWaitQueue) NotifyWaitQueue(ctx context.Context, retreatID int64) (*retreatModels.NotifyWaitQueueResponse, error) {
	args := m.Called(ctx, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retreatModels.NotifyWaitQueueResponse), args.Error(1)
}

func (m *mockWaitQueue) Invalidate(_ context.Context, retreatID int64) {
	m.invalidated = append(m.invalidated, retreatID)
}

type recordingNotifier struct {
	events []domain.Event
}

func (n *recordingNotifier) Publish(_ context.Context, e domain.Event) {
	n.events = append(n.events, e)
}

type nopMetrics struct{}

func (nopMetrics) IncReservation(string, string) {}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
