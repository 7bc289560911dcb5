package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon скидочный код
// Задаётся либо фиксированная сумма Value, либо процент PercentOff
type Coupon struct {
	ID            int64
	Code          string
	Value         decimal.Decimal
	PercentOff    int
	MaxUse        int // 0 = без ограничений
	MaxUsePerUser int // 0 = без ограничений
	StartTime     time.Time
	EndTime       time.Time
	OwnerID       int64
	Details       string

	ApplicableRetreats     []int64
	ApplicablePackages     []int64
	ApplicableMemberships  []int64
	ApplicableProductTypes []ProductType

	// Uses общее число использований
	Uses      int
	CreatedAt time.Time
}

func (c *Coupon) IsPercent() bool {
	return c.PercentOff > 0
}

// IsActiveAt true, если купон действует в момент now
func (c *Coupon) IsActiveAt(now time.Time) bool {
	return !now.Before(c.StartTime) && now.Before(c.EndTime)
}

// IsExhausted true, если исчерпан общий лимит
func (c *Coupon) IsExhausted() bool {
	return c.MaxUse > 0 && c.Uses >= c.MaxUse
}

// IsExhaustedFor true, если пользователь исчерпал свой лимит
func (c *Coupon) IsExhaustedFor(userUses int) bool {
	return c.MaxUsePerUser > 0 && userUses >= c.MaxUsePerUser
}

// AppliesTo проверяет, применим ли купон к товару
// Купон без ограничений применимости не применим ни к чему
func (c *Coupon) AppliesTo(productType ProductType, objectID int64) bool {
	for _, t := range c.ApplicableProductTypes {
		if t == productType {
			return true
		}
	}

	var ids []int64
	switch productType {
	case ProductRetreat:
		ids = c.ApplicableRetreats
	case ProductPackage:
		ids = c.ApplicablePackages
	case ProductMembership:
		ids = c.ApplicableMemberships
	}
	for _, id := range ids {
		if id == objectID {
			return true
		}
	}
	return false
}

// DiscountFor размер скидки для строки со стоимостью cost
// Фиксированная скидка не превышает стоимость, процент округляется до центов
func (c *Coupon) DiscountFor(cost decimal.Decimal) decimal.Decimal {
	if cost.IsNegative() || cost.IsZero() {
		return decimal.Zero
	}
	if c.IsPercent() {
		return cost.Mul(decimal.NewFromInt(int64(c.PercentOff))).Div(decimal.NewFromInt(100)).Round(2)
	}
	return decimal.Min(c.Value, cost)
}

// CouponUser число использований купона пользователем
type CouponUser struct {
	CouponID int64
	UserID   int64
	Uses     int
}
