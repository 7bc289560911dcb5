package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/service/store/models"
	createOrder "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	validateCoupon "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

// StoreService интерфейс сервиса магазина
type StoreService interface {
	CreateMembership(ctx context.Context, req *models.CreateMembershipRequest) (*models.MembershipResponse, error)
	CreatePackage(ctx context.Context, req *models.CreatePackageRequest) (*models.PackageResponse, error)
	ListProducts(ctx context.Context) (*models.ProductsResponse, error)
	CreateCoupon(ctx context.Context, ownerID int64, req *models.CreateCouponRequest) (*models.CouponResponse, error)
	RefundOrderLine(ctx context.Context, orderLineID int64, amount decimal.Decimal) (*models.RefundResponse, error)
}

// ValidateCouponUseCase интерфейс use case проверки купона
type ValidateCouponUseCase interface {
	Execute(ctx context.Context, req *validateCoupon.Request) (*validateCoupon.Response, error)
}

// CreateOrderUseCase интерфейс use case оформления заказа
type CreateOrderUseCase interface {
	Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
