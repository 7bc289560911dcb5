package generate_timeslots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockWorkplaceRepo struct {
	mock.Mock
}

func (m *mockWorkplaceRepo) GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}

func (m *mockWorkplaceRepo) GetPeriod(ctx context.Context, id int64) (*domain.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *mockWorkplaceRepo) ListOverlappingTimeslots(ctx context.Context, workplaceID int64, start, end time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, workplaceID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *mockWorkplaceRepo) CreateTimeslot(ctx context.Context, ts *domain.TimeSlot) (*domain.TimeSlot, error) {
	m.Called(ctx, ts)
	created := *ts
	created.ID = int64(len(m.Calls))
	return &created, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
