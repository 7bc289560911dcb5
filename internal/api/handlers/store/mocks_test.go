package store

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/service/store/models"
	createOrder "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	validateCoupon "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateMembership(ctx context.Context, req *models.CreateMembershipRequest) (*models.MembershipResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipResponse), args.Error(1)
}

func (m *mockService) CreatePackage(ctx context.Context, req *models.CreatePackageRequest) (*models.PackageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageResponse), args.Error(1)
}

func (m *mockService) ListProducts(ctx context.Context) (*models.ProductsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductsResponse), args.Error(1)
}

func (m *mockService) CreateCoupon(ctx context.Context, ownerID int64, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CouponResponse), args.Error(1)
}

func (m *mockService) RefundOrderLine(ctx context.Context, orderLineID int64, amount decimal.Decimal) (*models.RefundResponse, error) {
	args := m.Called(ctx, orderLineID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefundResponse), args.Error(1)
}

type mockValidate struct {
	mock.Mock
}

func (m *mockValidate) Execute(ctx context.Context, req *validateCoupon.Request) (*validateCoupon.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validateCoupon.Response), args.Error(1)
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createOrder.Response), args.Error(1)
}
