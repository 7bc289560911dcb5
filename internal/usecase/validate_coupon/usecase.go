package validate_coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	storeRepo "github.com/m04kA/blitz-booking/internal/infra/storage/store"
)

// UseCase use case для проверки купона и расчёта скидки
type UseCase struct {
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(couponRepo CouponRepository, logger Logger) *UseCase {
	return &UseCase{
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет купон для пользователя и строк заказа
// Вызывается и в транзакции оформления заказа: там строка купона блокируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateCoupon: validation failed: %v", err)
		return nil, err
	}
	code := strings.TrimSpace(req.Code)

	// 2. Купон
	coupon, err := uc.couponRepo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storeRepo.ErrCouponNotFound) {
			return nil, ErrCouponNotFound
		}
		uc.logger.Error("ValidateCoupon: code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %w", ErrInternal, err)
	}

	// 3. Срок действия и лимиты
	if !coupon.IsActiveAt(uc.timeProvider.Now()) {
		return nil, ErrCouponNotActive
	}
	if coupon.IsExhausted() {
		return nil, ErrCouponExhausted
	}
	if coupon.MaxUsePerUser > 0 {
		uses, err := uc.couponRepo.GetCouponUses(ctx, coupon.ID, req.UserID)
		if err != nil {
			uc.logger.Error("ValidateCoupon: code=%s, user=%d: %v", code, req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get coupon uses: %w", ErrInternal, err)
		}
		if coupon.IsExhaustedFor(uses) {
			return nil, ErrCouponUserLimit
		}
	}

	// 4. Строка со скидкой
	idx := pickLine(coupon, req.Lines)
	if idx < 0 {
		return nil, ErrCouponNotApplicable
	}
	line := req.Lines[idx]

	return &Response{
		CouponID:  coupon.ID,
		Code:      coupon.Code,
		Value:     coupon.DiscountFor(line.Cost),
		LineIndex: idx,
		OrderLine: line,
	}, nil
}
