package retreats

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/service/retreats/models"
	cancelRetreatReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_retreat_reservation"
	reserveRetreat "github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateRetreat(ctx context.Context, req *models.CreateRetreatRequest) (*models.RetreatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetreatResponse), args.Error(1)
}

func (m *mockService) GetRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetreatResponse), args.Error(1)
}

func (m *mockService) ListRetreats(ctx context.Context, req *models.ListRetreatsRequest) ([]*models.RetreatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RetreatResponse), args.Error(1)
}

func (m *mockService) ActivateRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetreatResponse), args.Error(1)
}

func (m *mockService) SendReminders(ctx context.Context, id int64, kind string) (*models.RemindResponse, error) {
	args := m.Called(ctx, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemindResponse), args.Error(1)
}

func (m *mockService) JoinWaitQueue(ctx context.Context, userID, retreatID int64) (*models.WaitQueueResponse, error) {
	args := m.Called(ctx, userID, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WaitQueueResponse), args.Error(1)
}

func (m *mockService) LeaveWaitQueue(ctx context.Context, userID, retreatID int64) error {
	args := m.Called(ctx, userID, retreatID)
	return args.Error(0)
}

func (m *mockService) NotifyWaitQueue(ctx context.Context, retreatID int64) (*models.NotifyWaitQueueResponse, error) {
	args := m.Called(ctx, retreatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotifyWaitQueueResponse), args.Error(1)
}

func (m *mockService) ListUserReservations(ctx context.Context, userID int64) ([]*models.RetreatReservationResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RetreatReservationResponse), args.Error(1)
}

type mockReserve struct {
	mock.Mock
}

func (m *mockReserve) Execute(ctx context.Context, req *reserveRetreat.Request) (*reserveRetreat.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reserveRetreat.Response), args.Error(1)
}

type mockCancel struct {
	mock.Mock
}

func (m *mockCancel) Execute(ctx context.Context, req *cancelRetreatReservation.Request) (*cancelRetreatReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelRetreatReservation.Response), args.Error(1)
}
