package cancel_timeslot_reservation

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockWorkplaceRepo struct {
	mock.Mock
}

func (m *mockWorkplaceRepo) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockWorkplaceRepo) GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockWorkplaceRepo) CancelReservation(ctx context.Context, id int64, reason domain.ReservationCancelationReason, at time.Time, ticketsRefunded int) error {
	args := m.Called(ctx, id, reason, at, ticketsRefunded)
	return args.Error(0)
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

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }
