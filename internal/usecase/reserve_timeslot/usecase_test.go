package reserve_timeslot

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/blitz-booking/internal/domain"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/logger"
	"github.com/m04kA/blitz-booking/pkg/txmanager"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	workplaces *mockWorkplaceRepo
	users      *mockUserRepo
	tomatoes   *mockTomatoRepo
	notifier   *recordingNotifier
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		workplaces: new(mockWorkplaceRepo),
		users:      new(mockUserRepo),
		tomatoes:   new(mockTomatoRepo),
		notifier:   &recordingNotifier{},
	}
	f.uc = NewUseCase(f.workplaces, f.users, f.tomatoes, f.notifier, nopMetrics{}, passthroughTx{}, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func timeslot() *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          5,
		WorkplaceID: 1,
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(26 * time.Hour),
		Price:       2,
	}
}

func (f *fixture) expectUpToCapacity(ts *domain.TimeSlot, user *domain.User, overlapping []*domain.Reservation, reserved, seats int) {
	f.workplaces.On("GetTimeslot", mock.Anything, ts.ID).Return(ts, nil)
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.workplaces.On("ListUserActiveReservationsOverlapping", mock.Anything, user.ID, ts.StartTime, ts.EndTime).
		Return(overlapping, nil)
	f.workplaces.On("GetWorkplace", mock.Anything, ts.WorkplaceID).Return(&domain.Workplace{ID: ts.WorkplaceID, Seats: seats}, nil)
	f.workplaces.On("CountActiveReservations", mock.Anything, ts.ID).Return(reserved, nil)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	ts := timeslot()
	user := &domain.User{ID: 10, Tickets: 5}
	f.expectUpToCapacity(ts, user, []*domain.Reservation{}, 1, 2)

	f.users.On("AddTickets", mock.Anything, int64(10), -2).Return(3, nil)
	// списанная цена фиксируется в бронировании для будущего возврата
	f.workplaces.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.UserID == 10 && r.TimeSlotID == 5 && r.IsActive && r.TicketsSpent == ts.Price
	})).Return(&domain.Reservation{ID: 77, UserID: 10, TimeSlotID: 5, IsActive: true, TicketsSpent: 2}, nil)
	f.tomatoes.On("CreditTomato", mock.Anything, mock.MatchedBy(func(tm *domain.Tomato) bool {
		return tm.Source == domain.TomatoSourceTimeslot && tm.UserID == 10
	})).Return(&domain.Tomato{ID: 1}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, 2, resp.TicketsSpent)
	assert.Equal(t, 3, resp.TicketsLeft)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventReservationCreated, f.notifier.events[0].Type)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{UserID: 0, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("timeslot not found", func(t *testing.T) {
		f := newFixture()
		f.workplaces.On("GetTimeslot", mock.Anything, int64(5)).Return(nil, workplaceRepo.ErrTimeslotNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrTimeslotNotFound)
	})

	t.Run("started timeslot", func(t *testing.T) {
		f := newFixture()
		ts := timeslot()
		ts.StartTime = now
		f.workplaces.On("GetTimeslot", mock.Anything, int64(5)).Return(ts, nil)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrTimeslotStarted)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.workplaces.On("GetTimeslot", mock.Anything, int64(5)).Return(timeslot(), nil)
		f.users.On("GetByID", mock.Anything, int64(10)).Return(nil, userRepo.ErrUserNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture()
		ts := timeslot()
		user := &domain.User{ID: 10, Tickets: 5}
		f.expectUpToCapacity(ts, user, []*domain.Reservation{{ID: 1, TimeSlotID: 5}}, 0, 2)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrAlreadyReserved)
	})

	t.Run("overlap", func(t *testing.T) {
		f := newFixture()
		ts := timeslot()
		user := &domain.User{ID: 10, Tickets: 5}
		f.expectUpToCapacity(ts, user, []*domain.Reservation{{ID: 1, TimeSlotID: 9}}, 0, 2)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrOverlappingReservation)
	})

	t.Run("full", func(t *testing.T) {
		f := newFixture()
		ts := timeslot()
		user := &domain.User{ID: 10, Tickets: 5}
		f.expectUpToCapacity(ts, user, nil, 2, 2)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrTimeslotFull)
		f.users.AssertNotCalled(t, "AddTickets", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient tickets", func(t *testing.T) {
		f := newFixture()
		ts := timeslot()
		user := &domain.User{ID: 10, Tickets: 1}
		f.expectUpToCapacity(ts, user, nil, 0, 2)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
		assert.ErrorIs(t, err, ErrInsufficientTickets)
		f.workplaces.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
		assert.Empty(t, f.notifier.events)
	})
}

type fakeTx struct {
	dbmetrics.DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type countingBeginner struct {
	begun int
}

func (b *countingBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return fakeTx{}, nil
}

func TestExecute_RetriesOnSerializationConflict(t *testing.T) {
	f := newFixture()
	beginner := &countingBeginner{}
	f.uc.txManager = txmanager.NewTransactionManager(beginner)

	ts := timeslot()
	user := &domain.User{ID: 10, Tickets: 5}

	// конкурентное бронирование того же таймслота: первая попытка падает на 40001
	conflict := fmt.Errorf("%w: GetTimeslot - scan timeslot: %w", workplaceRepo.ErrScanRow, &pq.Error{Code: "40001"})
	f.workplaces.On("GetTimeslot", mock.Anything, ts.ID).Return(nil, conflict).Once()
	f.expectUpToCapacity(ts, user, nil, 1, 2)

	f.users.On("AddTickets", mock.Anything, int64(10), -2).Return(3, nil)
	f.workplaces.On("CreateReservation", mock.Anything, mock.Anything).
		Return(&domain.Reservation{ID: 78, UserID: 10, TimeSlotID: 5, IsActive: true}, nil)
	f.tomatoes.On("CreditTomato", mock.Anything, mock.Anything).Return(&domain.Tomato{ID: 1}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(78), resp.ID)
	assert.Equal(t, 2, beginner.begun)
	f.workplaces.AssertNumberOfCalls(t, "GetTimeslot", 2)
}

func TestExecute_ConflictThenFull(t *testing.T) {
	f := newFixture()
	f.uc.txManager = txmanager.NewTransactionManager(&countingBeginner{})

	ts := timeslot()
	user := &domain.User{ID: 10, Tickets: 5}

	conflict := fmt.Errorf("%w: CountActiveReservations: %w", workplaceRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	f.workplaces.On("GetTimeslot", mock.Anything, ts.ID).Return(ts, nil)
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.workplaces.On("ListUserActiveReservationsOverlapping", mock.Anything, user.ID, ts.StartTime, ts.EndTime).Return(nil, nil)
	f.workplaces.On("GetWorkplace", mock.Anything, ts.WorkplaceID).Return(&domain.Workplace{ID: ts.WorkplaceID, Seats: 2}, nil)
	f.workplaces.On("CountActiveReservations", mock.Anything, ts.ID).Return(0, conflict).Once()
	f.workplaces.On("CountActiveReservations", mock.Anything, ts.ID).Return(2, nil)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, TimeslotID: 5})
	assert.ErrorIs(t, err, ErrTimeslotFull)
	f.users.AssertNotCalled(t, "AddTickets", mock.Anything, mock.Anything, mock.Anything)
}
