package workplace

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/blitz-booking/internal/domain"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
	"github.com/m04kA/blitz-booking/pkg/logger"
)

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo, users *mockUserRepo, n *recordingNotifier) *Service {
	s := NewService(repo, users, n, nopMetrics{}, passthroughTx{}, logger.NewNop())
	s.timeProvider = fixedTime{now: now}
	return s
}

func TestCreateWorkplace_Validation(t *testing.T) {
	s := newTestService(new(mockRepo), new(mockUserRepo), &recordingNotifier{})

	_, err := s.CreateWorkplace(context.Background(), &models.CreateWorkplaceRequest{Name: "", Seats: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateWorkplace(context.Background(), &models.CreateWorkplaceRequest{Name: "Hall", Seats: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateWorkplace(context.Background(), &models.CreateWorkplaceRequest{Name: "Hall", Seats: 5, Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreatePeriod_RejectsOverlap(t *testing.T) {
	repo := new(mockRepo)
	s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})

	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Seats: 10}, nil)
	repo.On("ListActivePeriods", mock.Anything, int64(1)).Return([]*domain.Period{{
		ID:        5,
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}}, nil)

	_, err := s.CreatePeriod(context.Background(), 1, &models.CreatePeriodRequest{
		Name: "July", StartDate: "2026-06-30", EndDate: "2026-07-31", Price: 1,
	})
	assert.ErrorIs(t, err, ErrPeriodOverlap)
	repo.AssertNotCalled(t, "CreatePeriod", mock.Anything, mock.Anything)
}

func TestCreatePeriod_InactiveSkipsOverlapCheck(t *testing.T) {
	repo := new(mockRepo)
	s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
	inactive := false

	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1}, nil)
	repo.On("CreatePeriod", mock.Anything, mock.Anything).Return(&domain.Period{
		ID: 6, WorkplaceID: 1, Name: "Draft",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}, nil)

	resp, err := s.CreatePeriod(context.Background(), 1, &models.CreatePeriodRequest{
		Name: "Draft", StartDate: "2026-06-01", EndDate: "2026-06-30", IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-06-30", resp.EndDate)
	repo.AssertNotCalled(t, "ListActivePeriods", mock.Anything, mock.Anything)
}

func TestCreateTimeslot(t *testing.T) {
	period := &domain.Period{
		ID: 2, WorkplaceID: 1, Price: 3,
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	start := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("outside period", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetPeriod", mock.Anything, int64(2)).Return(period, nil)
		repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "UTC"}, nil)

		outside := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
		_, err := s.CreateTimeslot(context.Background(), 2, &models.CreateTimeslotRequest{StartTime: outside, EndTime: outside.Add(time.Hour)})
		assert.ErrorIs(t, err, ErrTimeslotOutsidePeriod)
	})

	t.Run("overlap", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetPeriod", mock.Anything, int64(2)).Return(period, nil)
		repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "UTC"}, nil)
		repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), start, end).
			Return([]*domain.TimeSlot{{ID: 77}}, nil)

		_, err := s.CreateTimeslot(context.Background(), 2, &models.CreateTimeslotRequest{StartTime: start, EndTime: end})
		assert.ErrorIs(t, err, ErrTimeslotOverlap)
	})

	t.Run("price inherited from period", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetPeriod", mock.Anything, int64(2)).Return(period, nil)
		repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "UTC"}, nil)
		repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), start, end).Return([]*domain.TimeSlot{}, nil)
		repo.On("CreateTimeslot", mock.Anything, mock.MatchedBy(func(ts *domain.TimeSlot) bool {
			return ts.Price == 3 && ts.WorkplaceID == 1
		})).Return(&domain.TimeSlot{ID: 10, PeriodID: 2, WorkplaceID: 1, StartTime: start, EndTime: end, Price: 3}, nil)

		resp, err := s.CreateTimeslot(context.Background(), 2, &models.CreateTimeslotRequest{StartTime: start, EndTime: end})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.BillingPrice)
	})

	t.Run("last evening in workplace timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Montreal")
		require.NoError(t, err)
		winter := &domain.Period{
			ID: 2, WorkplaceID: 1, Price: 1,
			StartDate: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		}
		evening := time.Date(2026, 1, 31, 21, 0, 0, 0, loc)

		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetPeriod", mock.Anything, int64(2)).Return(winter, nil)
		repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "America/Montreal"}, nil)
		repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), evening, evening.Add(time.Hour)).Return([]*domain.TimeSlot{}, nil)
		repo.On("CreateTimeslot", mock.Anything, mock.Anything).
			Return(&domain.TimeSlot{ID: 11, PeriodID: 2, WorkplaceID: 1, StartTime: evening, EndTime: evening.Add(time.Hour), Price: 1}, nil)

		resp, err := s.CreateTimeslot(context.Background(), 2, &models.CreateTimeslotRequest{StartTime: evening, EndTime: evening.Add(time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
	})

	t.Run("too short", func(t *testing.T) {
		s := newTestService(new(mockRepo), new(mockUserRepo), &recordingNotifier{})
		_, err := s.CreateTimeslot(context.Background(), 2, &models.CreateTimeslotRequest{StartTime: start, EndTime: start.Add(5 * time.Minute)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteTimeslot(t *testing.T) {
	// цена таймслота выросла после бронирований; возвращается списанное
	ts := &domain.TimeSlot{ID: 4, WorkplaceID: 1, Price: 5, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)}
	reservations := []*domain.Reservation{{ID: 100, UserID: 7, TicketsSpent: 2}, {ID: 101, UserID: 8, TicketsSpent: 3}}

	t.Run("requires force when reserved", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetTimeslot", mock.Anything, int64(4)).Return(ts, nil)
		repo.On("ListActiveReservationsByTimeslot", mock.Anything, int64(4)).Return(reservations, nil)

		_, err := s.DeleteTimeslot(context.Background(), 4, &models.DeleteTimeslotRequest{})
		assert.ErrorIs(t, err, ErrTimeslotHasReservations)
		repo.AssertNotCalled(t, "DeleteTimeslot", mock.Anything, mock.Anything)
	})

	t.Run("force cancels and refunds", func(t *testing.T) {
		repo := new(mockRepo)
		users := new(mockUserRepo)
		n := &recordingNotifier{}
		s := newTestService(repo, users, n)

		repo.On("GetTimeslot", mock.Anything, int64(4)).Return(ts, nil)
		repo.On("ListActiveReservationsByTimeslot", mock.Anything, int64(4)).Return(reservations, nil)
		repo.On("CancelReservation", mock.Anything, int64(100), domain.CancelationTimeslotDeleted, now, 2).Return(nil)
		repo.On("CancelReservation", mock.Anything, int64(101), domain.CancelationTimeslotDeleted, now, 3).Return(nil)
		users.On("AddTickets", mock.Anything, int64(7), 2).Return(5, nil)
		users.On("AddTickets", mock.Anything, int64(8), 3).Return(3, nil)
		repo.On("DeleteTimeslot", mock.Anything, int64(4)).Return(nil)

		resp, err := s.DeleteTimeslot(context.Background(), 4, &models.DeleteTimeslotRequest{Force: true})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.CancelledReservations)
		assert.Equal(t, 5, resp.TicketsRefunded)
		require.Len(t, n.events, 2)
		assert.Equal(t, domain.EventTimeslotDeleted, n.events[0].Type)
		assert.Equal(t, 2, n.events[0].Payload["ticketsRefunded"])
		assert.Equal(t, 3, n.events[1].Payload["ticketsRefunded"])
		users.AssertExpectations(t)
		users.AssertNotCalled(t, "AddTickets", mock.Anything, mock.Anything, 5)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
		repo.On("GetTimeslot", mock.Anything, int64(4)).Return(nil, workplaceRepo.ErrTimeslotNotFound)

		_, err := s.DeleteTimeslot(context.Background(), 4, &models.DeleteTimeslotRequest{Force: true})
		assert.ErrorIs(t, err, ErrTimeslotNotFound)
	})
}

func TestListTimeslots_DefaultsToOneWeek(t *testing.T) {
	repo := new(mockRepo)
	s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})

	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Seats: 3}, nil)
	repo.On("ListTimeslotsWithAvailability", mock.Anything, int64(1), now, now.AddDate(0, 0, 7)).
		Return([]*domain.TimeSlotAvailability{{
			TimeSlot: domain.TimeSlot{ID: 1, Price: 1}, Reserved: 2, PlacesRemaining: 1,
		}}, nil)

	resp, err := s.ListTimeslots(context.Background(), &models.ListTimeslotsRequest{WorkplaceID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Timeslots, 1)
	assert.Equal(t, 1, *resp.Timeslots[0].PlacesRemaining)
}

func TestMarkPresence_NotFound(t *testing.T) {
	repo := new(mockRepo)
	s := newTestService(repo, new(mockUserRepo), &recordingNotifier{})
	repo.On("SetPresence", mock.Anything, int64(3), true).Return(workplaceRepo.ErrReservationNotFound)

	err := s.MarkPresence(context.Background(), 3, &models.PresenceRequest{IsPresent: true})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
