package workplaces

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
	cancelTimeslotReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_timeslot_reservation"
	generateTimeslots "github.com/m04kA/blitz-booking/internal/usecase/generate_timeslots"
	reserveTimeslot "github.com/m04kA/blitz-booking/internal/usecase/reserve_timeslot"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateWorkplace(ctx context.Context, req *models.CreateWorkplaceRequest) (*models.WorkplaceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkplaceResponse), args.Error(1)
}

func (m *mockService) ListWorkplaces(ctx context.Context) ([]*models.WorkplaceResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkplaceResponse), args.Error(1)
}

func (m *mockService) CreatePeriod(ctx context.Context, workplaceID int64, req *models.CreatePeriodRequest) (*models.PeriodResponse, error) {
	args := m.Called(ctx, workplaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PeriodResponse), args.Error(1)
}

func (m *mockService) CreateTimeslot(ctx context.Context, periodID int64, req *models.CreateTimeslotRequest) (*models.TimeslotResponse, error) {
	args := m.Called(ctx, periodID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeslotResponse), args.Error(1)
}

func (m *mockService) ListTimeslots(ctx context.Context, req *models.ListTimeslotsRequest) (*models.TimeslotListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimeslotListResponse), args.Error(1)
}

func (m *mockService) DeleteTimeslot(ctx context.Context, timeslotID int64, req *models.DeleteTimeslotRequest) (*models.DeleteTimeslotResponse, error) {
	args := m.Called(ctx, timeslotID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeleteTimeslotResponse), args.Error(1)
}

func (m *mockService) MarkPresence(ctx context.Context, reservationID int64, req *models.PresenceRequest) error {
	args := m.Called(ctx, reservationID, req)
	return args.Error(0)
}

type mockGenerate struct {
	mock.Mock
}

func (m *mockGenerate) Execute(ctx context.Context, req *generateTimeslots.Request) (*generateTimeslots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generateTimeslots.Response), args.Error(1)
}

type mockReserve struct {
	mock.Mock
}

func (m *mockReserve) Execute(ctx context.Context, req *reserveTimeslot.Request) (*reserveTimeslot.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reserveTimeslot.Response), args.Error(1)
}

type mockCancel struct {
	mock.Mock
}

func (m *mockCancel) Execute(ctx context.Context, req *cancelTimeslotReservation.Request) (*cancelTimeslotReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelTimeslotReservation.Response), args.Error(1)
}
