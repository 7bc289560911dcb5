package cancel_retreat_reservation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	return nil
}

// refundAmount сумма к возврату: доля refund_rate от уплаченного за строку
// Возврата нет после дедлайна и для бронирований без оплаты
func refundAmount(rt *domain.Retreat, line *domain.OrderLine, now time.Time) decimal.Decimal {
	if line == nil || !rt.IsRefundable(now) {
		return decimal.Zero
	}
	paid := line.Cost.Sub(line.CouponRealValue)
	if !paid.IsPositive() {
		return decimal.Zero
	}
	return rt.RefundAmount(paid)
}
