package validate_coupon

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(req.Lines) == 0 || len(req.Lines) > domain.MaxOrderLines {
		return fmt.Errorf("%w: between 1 and %d lines required", ErrInvalidInput, domain.MaxOrderLines)
	}
	for i, l := range req.Lines {
		if !domain.ProductType(l.ProductType).IsValid() {
			return fmt.Errorf("%w: line %d: unknown product type %q", ErrInvalidInput, i, l.ProductType)
		}
		if l.Cost.IsNegative() {
			return fmt.Errorf("%w: line %d: cost must not be negative", ErrInvalidInput, i)
		}
	}
	return nil
}

// pickLine выбирает самую дорогую строку, к которой применим купон
// При равной стоимости берётся первая; -1, если применимых строк нет
func pickLine(c *domain.Coupon, lines []Line) int {
	best := -1
	bestCost := decimal.Zero
	for i, l := range lines {
		if !c.AppliesTo(domain.ProductType(l.ProductType), l.ObjectID) {
			continue
		}
		if best == -1 || l.Cost.GreaterThan(bestCost) {
			best = i
			bestCost = l.Cost
		}
	}
	return best
}
