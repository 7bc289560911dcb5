package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType тип товара в строке заказа
type ProductType string

const (
	ProductMembership ProductType = "membership"
	ProductPackage    ProductType = "package"
	ProductRetreat    ProductType = "retreat"
)

// IsValid проверяет, что тип товара известен
func (t ProductType) IsValid() bool {
	switch t {
	case ProductMembership, ProductPackage, ProductRetreat:
		return true
	}
	return false
}

// Membership абонемент
type Membership struct {
	ID           int64
	Name         string
	Details      string
	Price        decimal.Decimal
	DurationDays int
	Available    bool
	CreatedAt    time.Time
}

// Package пакет билетов для бронирования таймслотов
type Package struct {
	ID      int64
	Name    string
	Details string
	Price   decimal.Decimal
	Tickets int
	// ExclusiveMembershipIDs если не пусто, купить пакет могут только владельцы этих абонементов
	ExclusiveMembershipIDs []int64
	Available              bool
	CreatedAt              time.Time
}

// IsExclusive true, если пакет доступен только по абонементу
func (p *Package) IsExclusive() bool {
	return len(p.ExclusiveMembershipIDs) > 0
}

// AllowedFor проверяет, что пользователь может купить пакет
func (p *Package) AllowedFor(u *User, now time.Time) bool {
	if !p.IsExclusive() {
		return true
	}
	if !u.HasActiveMembership(now) {
		return false
	}
	for _, id := range p.ExclusiveMembershipIDs {
		if id == *u.MembershipID {
			return true
		}
	}
	return false
}

// Order заказ пользователя
type Order struct {
	ID        int64
	UserID    int64
	Reference string
	// TransactionID идентификатор платежа у Paysafe (nil для бесплатных заказов)
	TransactionID   *string
	TransactionDate time.Time
	Total           decimal.Decimal
	Discount        decimal.Decimal
	CouponID        *int64
	Lines           []OrderLine
	CreatedAt       time.Time
}

// OrderLine строка заказа
type OrderLine struct {
	ID              int64
	OrderID         int64
	ProductType     ProductType
	ObjectID        int64
	Quantity        int
	Cost            decimal.Decimal
	CouponID        *int64
	CouponRealValue decimal.Decimal
	CreatedAt       time.Time
}

// Refund возврат по строке заказа
type Refund struct {
	ID          int64
	OrderLineID int64
	Amount      decimal.Decimal
	RefundID    string
	RefundDate  time.Time
}

// ToCents переводит сумму в центы для платёжного шлюза
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
