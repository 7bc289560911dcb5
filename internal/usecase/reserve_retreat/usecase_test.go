package reserve_retreat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
	"github.com/m04kA/blitz-booking/pkg/logger"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *mockRetreatRepo
	tomatoes *mockTomatoRepo
	cache    *recordingCache
	notifier *recordingNotifier
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(mockRetreatRepo),
		tomatoes: new(mockTomatoRepo),
		cache:    &recordingCache{},
		notifier: &recordingNotifier{},
	}
	f.uc = NewUseCase(f.repo, f.tomatoes, f.cache, f.notifier, nopMetrics{}, passthroughTx{}, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func retreat(seats, reserved int) *domain.Retreat {
	return &domain.Retreat{
		ID:            4,
		Seats:         seats,
		ReservedSeats: reserved,
		IsActive:      true,
		StartTime:     now.AddDate(0, 1, 0),
		EndTime:       now.AddDate(0, 1, 3),
	}
}

func (f *fixture) expectChecks(rt *domain.Retreat, hold bool) {
	f.repo.On("GetRetreat", mock.Anything, rt.ID).Return(rt, nil)
	f.repo.On("FindActiveReservation", mock.Anything, int64(10), rt.ID).Return(nil, retreatRepo.ErrReservationNotFound)
	f.repo.On("ListUserActiveReservationsOverlapping", mock.Anything, int64(10), rt.StartTime, rt.EndTime).
		Return([]*domain.RetreatReservation{}, nil)
	f.repo.On("HasActiveHold", mock.Anything, int64(10), rt.ID).Return(hold, nil)
}

func (f *fixture) expectCreate() {
	f.repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(&domain.RetreatReservation{ID: 30, UserID: 10, RetreatID: 4, IsActive: true}, nil)
	f.repo.On("RemoveFromWaitQueue", mock.Anything, int64(10), int64(4)).Return(retreatRepo.ErrNotQueued)
	f.tomatoes.On("CreditTomato", mock.Anything, mock.MatchedBy(func(t *domain.Tomato) bool {
		return t.Source == domain.TomatoSourceRetreat
	})).Return(&domain.Tomato{ID: 1}, nil)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.expectChecks(retreat(10, 3), false)
	f.expectCreate()

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(30), resp.ID)
	assert.Equal(t, []int64{4}, f.cache.invalidated)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventReservationCreated, f.notifier.events[0].Type)
}

func TestExecute_HeldSeat(t *testing.T) {
	t.Run("seat held for another user counts as taken", func(t *testing.T) {
		f := newFixture()
		// 1 бронирование + 1 предложение из очереди
		f.expectChecks(retreat(2, 2), false)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		assert.ErrorIs(t, err, ErrRetreatFull)
		f.repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("own hold lets the user in", func(t *testing.T) {
		f := newFixture()
		f.expectChecks(retreat(2, 2), true)
		f.expectCreate()

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		require.NoError(t, err)
	})
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		f := newFixture()
		rt := retreat(10, 0)
		rt.IsActive = false
		f.repo.On("GetRetreat", mock.Anything, int64(4)).Return(rt, nil)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		assert.ErrorIs(t, err, ErrRetreatNotFound)
	})

	t.Run("started", func(t *testing.T) {
		f := newFixture()
		rt := retreat(10, 0)
		rt.StartTime = now.Add(-time.Hour)
		f.repo.On("GetRetreat", mock.Anything, int64(4)).Return(rt, nil)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		assert.ErrorIs(t, err, ErrRetreatStarted)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetRetreat", mock.Anything, int64(4)).Return(retreat(10, 1), nil)
		f.repo.On("FindActiveReservation", mock.Anything, int64(10), int64(4)).
			Return(&domain.RetreatReservation{ID: 1}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		assert.ErrorIs(t, err, ErrAlreadyReserved)
	})

	t.Run("overlap", func(t *testing.T) {
		f := newFixture()
		rt := retreat(10, 1)
		f.repo.On("GetRetreat", mock.Anything, int64(4)).Return(rt, nil)
		f.repo.On("FindActiveReservation", mock.Anything, int64(10), int64(4)).Return(nil, retreatRepo.ErrReservationNotFound)
		f.repo.On("ListUserActiveReservationsOverlapping", mock.Anything, int64(10), rt.StartTime, rt.EndTime).
			Return([]*domain.RetreatReservation{{ID: 2, RetreatID: 8}}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{UserID: 10, RetreatID: 4})
		assert.ErrorIs(t, err, ErrOverlappingReservation)
		assert.Empty(t, f.notifier.events)
		assert.Empty(t, f.cache.invalidated)
	})
}
