package retreats

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateRetreat(ctx context.Context, rt *domain.Retreat) (*domain.Retreat, error) {
	args := m.Called(ctx, rt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Retreat), args.Error(1)
}

func (m *mockRepo) GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Retreat), args.Error(1)
}

func (m *mockRepo) ListRetreats(ctx context.Context, activeOnly bool, from time.Time) ([]*domain.Retreat, error) {
	args := m.Called(ctx, activeOnly, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Retreat), args.Error(1)
}

func (m *mockRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockRepo) FindActiveReservation(ctx context.Context, userID, retreatID int64) (*domain.RetreatReservation, error) {
	args := m.Called(ctx, userID, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetreatReservation), args.Error(1)
}

func (m *mockRepo) ListUserReservations(ctx context.Context, userID int64) ([]*domain.RetreatReservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RetreatReservation), args.Error(1)
}

func (m *mockRepo) ListActiveReservationsByRetreat(ctx context.Context, retreatID int64) ([]*domain.RetreatReservation, error) {
	args := m.Called(ctx, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RetreatReservation), args.Error(1)
}

func (m *mockRepo) AddToWaitQueue(ctx context.Context, entry *domain.WaitQueueEntry) (*domain.WaitQueueEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitQueueEntry), args.Error(1)
}

func (m *mockRepo) RemoveFromWaitQueue(ctx context.Context, userID, retreatID int64) error {
	return m.Called(ctx, userID, retreatID).Error(0)
}

func (m *mockRepo) ListWaitQueue(ctx context.Context, retreatID int64) ([]*domain.WaitQueueEntry, error) {
	args := m.Called(ctx, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WaitQueueEntry), args.Error(1)
}

func (m *mockRepo) CreateNotification(ctx context.Context, n *domain.WaitQueueNotification) (*domain.WaitQueueNotification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitQueueNotification), args.Error(1)
}

func (m *mockRepo) ListNotifiedUserIDs(ctx context.Context, retreatID int64) (map[int64]bool, error) {
	args := m.Called(ctx, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockCronRepo struct {
	mock.Mock
}

func (m *mockCronRepo) Create(ctx context.Context, t *domain.CronTask) (*domain.CronTask, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CronTask), args.Error(1)
}

// memCache кэш в памяти для тестов
type memCache struct {
	items       map[int64]*domain.Retreat
	invalidated []int64
}

func newMemCache() *memCache {
	return &memCache{items: make(map[int64]*domain.Retreat)}
}

func (c *memCache) Get(_ context.Context, id int64) (*domain.Retreat, error) {
	return c.items[id], nil
}

func (c *memCache) Set(_ context.Context, rt *domain.Retreat) error {
	c.items[rt.ID] = rt
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id int64) error {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type recordingNotifier struct {
	events []domain.Event
}

func (n *recordingNotifier) Publish(_ context.Context, e domain.Event) {
	n.events = append(n.events, e)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
