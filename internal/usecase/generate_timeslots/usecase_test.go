package generate_timeslots

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
	"github.com/m04kA/blitz-booking/pkg/logger"
	"github.com/m04kA/blitz-booking/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateDaySlots(t *testing.T) {
	tests := []struct {
		name    string
		open    string
		close   string
		minutes int
		want    []string
	}{
		{name: "exact fit", open: "09:00", close: "11:00", minutes: 60, want: []string{"09:00", "10:00"}},
		{name: "tail dropped", open: "09:00", close: "10:45", minutes: 30, want: []string{"09:00", "09:30", "10:00"}},
		{name: "until midnight", open: "22:00", close: "24:00", minutes: 60, want: []string{"22:00", "23:00"}},
		{name: "slot longer than day", open: "09:00", close: "09:30", minutes: 60, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateDaySlots(types.TimeString(tt.open), types.TimeString(tt.close), tt.minutes)
			strs := make([]string, len(got))
			for i, s := range got {
				strs[i] = s.String()
			}
			assert.Equal(t, tt.want, strs)
		})
	}
}

func TestExecute_SkipsOverlapsAndWeekdays(t *testing.T) {
	repo := new(mockWorkplaceRepo)
	uc := NewUseCase(repo, passthroughTx{}, logger.NewNop())

	// 2026-06-01 понедельник, 2026-06-03 среда
	period := &domain.Period{ID: 3, WorkplaceID: 1, StartDate: date(2026, 6, 1), EndDate: date(2026, 6, 3), Price: 2}
	repo.On("GetPeriod", mock.Anything, int64(3)).Return(period, nil)
	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "UTC"}, nil)

	busy := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), busy, busy.Add(time.Hour)).
		Return([]*domain.TimeSlot{{ID: 99}}, nil)
	repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.TimeSlot{}, nil)
	repo.On("CreateTimeslot", mock.Anything, mock.Anything)

	resp, err := uc.Execute(context.Background(), &Request{
		PeriodID:    3,
		OpenTime:    "09:00",
		CloseTime:   "11:00",
		SlotMinutes: 60,
		Weekdays:    []time.Weekday{time.Monday, time.Wednesday},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Created, 3)
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), resp.Created[0].StartTime)
	assert.Equal(t, time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC), resp.Created[1].StartTime)
	for _, ts := range resp.Created {
		assert.Equal(t, 2, ts.Price)
	}
}

func TestExecute_UsesWorkplaceTimezone(t *testing.T) {
	repo := new(mockWorkplaceRepo)
	uc := NewUseCase(repo, passthroughTx{}, logger.NewNop())

	period := &domain.Period{ID: 3, WorkplaceID: 1, StartDate: date(2026, 6, 1), EndDate: date(2026, 6, 1)}
	repo.On("GetPeriod", mock.Anything, int64(3)).Return(period, nil)
	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "America/Montreal"}, nil)
	repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.TimeSlot{}, nil)
	repo.On("CreateTimeslot", mock.Anything, mock.Anything)

	resp, err := uc.Execute(context.Background(), &Request{
		PeriodID: 3, OpenTime: "09:00", CloseTime: "10:00", SlotMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	// 09:00 EDT = 13:00 UTC
	assert.True(t, resp.Created[0].StartTime.Equal(time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)))
}

func TestGenerateIntervals_EveningSlotsOnBoundaryDays(t *testing.T) {
	loc, err := time.LoadLocation("America/Montreal")
	require.NoError(t, err)

	period := &domain.Period{ID: 3, WorkplaceID: 1, StartDate: date(2026, 1, 30), EndDate: date(2026, 1, 31)}
	req := &Request{PeriodID: 3, OpenTime: "18:00", CloseTime: "22:00", SlotMinutes: 60}

	intervals, ok, err := generateIntervals(period, req, loc, domain.MaxGeneratedTimeslots)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, intervals, 8)

	assert.True(t, intervals[0].start.Equal(time.Date(2026, 1, 30, 18, 0, 0, 0, loc)))
	assert.True(t, intervals[3].end.Equal(time.Date(2026, 1, 30, 22, 0, 0, 0, loc)))
	assert.True(t, intervals[4].start.Equal(time.Date(2026, 1, 31, 18, 0, 0, 0, loc)))
	// 21:00 EST 31 января = 02:00 UTC 1 февраля
	assert.True(t, intervals[7].start.Equal(time.Date(2026, 2, 1, 2, 0, 0, 0, time.UTC)))
}

func TestExecute_EveningSlotsInWorkplaceTimezone(t *testing.T) {
	repo := new(mockWorkplaceRepo)
	uc := NewUseCase(repo, passthroughTx{}, logger.NewNop())

	period := &domain.Period{ID: 3, WorkplaceID: 1, StartDate: date(2026, 1, 30), EndDate: date(2026, 1, 31), Price: 1}
	repo.On("GetPeriod", mock.Anything, int64(3)).Return(period, nil)
	repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1, Timezone: "America/Montreal"}, nil)
	repo.On("ListOverlappingTimeslots", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*domain.TimeSlot{}, nil)
	repo.On("CreateTimeslot", mock.Anything, mock.Anything)

	resp, err := uc.Execute(context.Background(), &Request{
		PeriodID: 3, OpenTime: "18:00", CloseTime: "22:00", SlotMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Generated)
	assert.Equal(t, 0, resp.Skipped)
	assert.Len(t, resp.Created, 8)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("close before open", func(t *testing.T) {
		uc := NewUseCase(new(mockWorkplaceRepo), passthroughTx{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{PeriodID: 3, OpenTime: "18:00", CloseTime: "09:00", SlotMinutes: 60})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too short slot", func(t *testing.T) {
		uc := NewUseCase(new(mockWorkplaceRepo), passthroughTx{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{PeriodID: 3, OpenTime: "09:00", CloseTime: "18:00", SlotMinutes: 5})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("period not found", func(t *testing.T) {
		repo := new(mockWorkplaceRepo)
		uc := NewUseCase(repo, passthroughTx{}, logger.NewNop())
		repo.On("GetPeriod", mock.Anything, int64(3)).Return(nil, workplaceRepo.ErrPeriodNotFound)

		_, err := uc.Execute(context.Background(), &Request{PeriodID: 3, OpenTime: "09:00", CloseTime: "18:00", SlotMinutes: 60})
		assert.ErrorIs(t, err, ErrPeriodNotFound)
	})

	t.Run("over limit", func(t *testing.T) {
		repo := new(mockWorkplaceRepo)
		uc := NewUseCase(repo, passthroughTx{}, logger.NewNop())
		period := &domain.Period{ID: 3, WorkplaceID: 1, StartDate: date(2026, 1, 1), EndDate: date(2026, 12, 31)}
		repo.On("GetPeriod", mock.Anything, int64(3)).Return(period, nil)
		repo.On("GetWorkplace", mock.Anything, int64(1)).Return(&domain.Workplace{ID: 1}, nil)

		_, err := uc.Execute(context.Background(), &Request{PeriodID: 3, OpenTime: "08:00", CloseTime: "20:00", SlotMinutes: 15})
		assert.ErrorIs(t, err, ErrTooManyTimeslots)
		repo.AssertNotCalled(t, "CreateTimeslot", mock.Anything, mock.Anything)
	})
}
