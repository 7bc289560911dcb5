package workplace

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateWorkplace(ctx context.Context, w *domain.Workplace) (*domain.Workplace, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}

func (m *mockRepo) GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}

func (m *mockRepo) ListWorkplaces(ctx context.Context) ([]*domain.Workplace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Workplace), args.Error(1)
}

func (m *mockRepo) CreatePeriod(ctx context.Context, p *domain.Period) (*domain.Period, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *mockRepo) GetPeriod(ctx context.Context, id int64) (*domain.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *mockRepo) ListActivePeriods(ctx context.Context, workplaceID int64) ([]*domain.Period, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Period), args.Error(1)
}

func (m *mockRepo) CreateTimeslot(ctx context.Context, ts *domain.TimeSlot) (*domain.TimeSlot, error) {
	args := m.Called(ctx, ts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockRepo) GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockRepo) ListOverlappingTimeslots(ctx context.Context, workplaceID int64, start, end time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, workplaceID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *mockRepo) ListTimeslotsWithAvailability(ctx context.Context, workplaceID int64, from, to time.Time) ([]*domain.TimeSlotAvailability, error) {
	args := m.Called(ctx, workplaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlotAvailability), args.Error(1)
}

func (m *mockRepo) DeleteTimeslot(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ListActiveReservationsByTimeslot(ctx context.Context, timeslotID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, timeslotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *mockRepo) CancelReservation(ctx context.Context, id int64, reason domain.ReservationCancelationReason, at time.Time, ticketsRefunded int) error {
	return m.Called(ctx, id, reason, at, ticketsRefunded).Error(0)
}

func (m *mockRepo) SetPresence(ctx context.Context, id int64, present bool) error {
	return m.Called(ctx, id, present).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) AddTickets(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
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

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
