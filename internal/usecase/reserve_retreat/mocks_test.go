package reserve_retreat

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
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

func (m *mockRetreatRepo) FindActiveReservation(ctx context.Context, userID, retreatID int64) (*domain.RetreatReservation, error) {
	args := m.Called(ctx, userID, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetreatReservation), args.Error(1)
}

func (m *mockRetreatRepo) ListUserActiveReservationsOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.RetreatReservation, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RetreatReservation), args.Error(1)
}

func (m *mockRetreatRepo) HasActiveHold(ctx context.Context, userID, retreatID int64) (bool, error) {
	args := m.Called(ctx, userID, retreatID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRetreatRepo) CreateReservation(ctx context.Context, res *domain.RetreatReservation) (*domain.RetreatReservation, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetreatReservation), args.Error(1)
}

func (m *mockRetreatRepo) RemoveFromWaitQueue(ctx context.Context, userID, retreatID int64) error {
	args := m.Called(ctx, userID, retreatID)
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

type recordingCache struct {
	invalidated []int64
}

func (c *recordingCache) Invalidate(_ context.Context, retreatID int64) {
	c.invalidated = append(c.invalidated, retreatID)
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

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
