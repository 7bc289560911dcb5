package store

import (
	"fmt"
	"strings"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/service/store/models"
)

const maxCouponCodeLength = 64

// buildCoupon проверяет запрос на купон
// Задаётся либо фиксированная сумма, либо процент, но не оба сразу
func buildCoupon(ownerID int64, req *models.CreateCouponRequest) (*domain.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if len(code) > maxCouponCodeLength {
		return nil, fmt.Errorf("%w: code must be at most %d characters", ErrInvalidInput, maxCouponCodeLength)
	}

	hasValue := req.Value.IsPositive()
	hasPercent := req.PercentOff != 0
	if req.Value.IsNegative() {
		return nil, fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	if hasValue == hasPercent {
		return nil, fmt.Errorf("%w: exactly one of value and percentOff must be set", ErrInvalidInput)
	}
	if hasPercent && (req.PercentOff < 1 || req.PercentOff > domain.MaxPercentOff) {
		return nil, fmt.Errorf("%w: percentOff must be between 1 and %d", ErrInvalidInput, domain.MaxPercentOff)
	}
	if req.MaxUse < 0 || req.MaxUsePerUser < 0 {
		return nil, fmt.Errorf("%w: maxUse and maxUsePerUser must not be negative", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	types := make([]domain.ProductType, 0, len(req.ApplicableProductTypes))
	for _, t := range req.ApplicableProductTypes {
		pt := domain.ProductType(t)
		if !pt.IsValid() {
			return nil, fmt.Errorf("%w: unknown product type %q", ErrInvalidInput, t)
		}
		types = append(types, pt)
	}

	return &domain.Coupon{
		Code:                   code,
		Value:                  req.Value,
		PercentOff:             req.PercentOff,
		MaxUse:                 req.MaxUse,
		MaxUsePerUser:          req.MaxUsePerUser,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		OwnerID:                ownerID,
		Details:                req.Details,
		ApplicableRetreats:     req.ApplicableRetreats,
		ApplicablePackages:     req.ApplicablePackages,
		ApplicableMemberships:  req.ApplicableMemberships,
		ApplicableProductTypes: types,
	}, nil
}
