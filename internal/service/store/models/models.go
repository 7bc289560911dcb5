package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Request модели

// CreateMembershipRequest запрос на создание абонемента
type CreateMembershipRequest struct {
	Name         string          `json:"name"`
	Details      string          `json:"details"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"durationDays"`
	Available    *bool           `json:"available,omitempty"`
}

// CreatePackageRequest запрос на создание пакета билетов
type CreatePackageRequest struct {
	Name                   string          `json:"name"`
	Details                string          `json:"details"`
	Price                  decimal.Decimal `json:"price"`
	Tickets                int             `json:"tickets"`
	ExclusiveMembershipIDs []int64         `json:"exclusiveMemberships,omitempty"`
	Available              *bool           `json:"available,omitempty"`
}

// CreateCouponRequest запрос на создание купона
// Пустой Code генерируется автоматически
type CreateCouponRequest struct {
	Code                   string          `json:"code"`
	Value                  decimal.Decimal `json:"value"`
	PercentOff             int             `json:"percentOff"`
	MaxUse                 int             `json:"maxUse"`
	MaxUsePerUser          int             `json:"maxUsePerUser"`
	StartTime              time.Time       `json:"startTime"`
	EndTime                time.Time       `json:"endTime"`
	Details                string          `json:"details"`
	ApplicableRetreats     []int64         `json:"applicableRetreats,omitempty"`
	ApplicablePackages     []int64         `json:"applicablePackages,omitempty"`
	ApplicableMemberships  []int64         `json:"applicableMemberships,omitempty"`
	ApplicableProductTypes []string        `json:"applicableProductTypes,omitempty"`
}

// RefundRequest запрос на возврат по строке заказа
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Response модели

// MembershipResponse абонемент
type MembershipResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Details      string          `json:"details"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"durationDays"`
	Available    bool            `json:"available"`
}

// PackageResponse пакет билетов
type PackageResponse struct {
	ID                     int64           `json:"id"`
	Name                   string          `json:"name"`
	Details                string          `json:"details"`
	Price                  decimal.Decimal `json:"price"`
	Tickets                int             `json:"tickets"`
	ExclusiveMembershipIDs []int64         `json:"exclusiveMemberships"`
	Available              bool            `json:"available"`
}

// ProductsResponse каталог товаров
type ProductsResponse struct {
	Memberships []*MembershipResponse `json:"memberships"`
	Packages    []*PackageResponse    `json:"packages"`
}

// CouponResponse купон
type CouponResponse struct {
	ID                     int64           `json:"id"`
	Code                   string          `json:"code"`
	Value                  decimal.Decimal `json:"value"`
	PercentOff             int             `json:"percentOff"`
	MaxUse                 int             `json:"maxUse"`
	MaxUsePerUser          int             `json:"maxUsePerUser"`
	StartTime              time.Time       `json:"startTime"`
	EndTime                time.Time       `json:"endTime"`
	OwnerID                int64           `json:"ownerId"`
	Details                string          `json:"details"`
	ApplicableRetreats     []int64         `json:"applicableRetreats"`
	ApplicablePackages     []int64         `json:"applicablePackages"`
	ApplicableMemberships  []int64         `json:"applicableMemberships"`
	ApplicableProductTypes []string        `json:"applicableProductTypes"`
	Uses                   int             `json:"uses"`
}

// OrderLineResponse строка заказа
type OrderLineResponse struct {
	ID              int64           `json:"id"`
	ProductType     string          `json:"productType"`
	ObjectID        int64           `json:"objectId"`
	Quantity        int             `json:"quantity"`
	Cost            decimal.Decimal `json:"cost"`
	CouponRealValue decimal.Decimal `json:"couponRealValue"`
}

// OrderResponse заказ
type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"userId"`
	Reference       string              `json:"reference"`
	TransactionID   *string             `json:"transactionId,omitempty"`
	TransactionDate time.Time           `json:"transactionDate"`
	Total           decimal.Decimal     `json:"total"`
	Discount        decimal.Decimal     `json:"discount"`
	CouponID        *int64              `json:"couponId,omitempty"`
	Lines           []OrderLineResponse `json:"lines"`
}

// RefundResponse выполненный возврат
type RefundResponse struct {
	ID          int64           `json:"id"`
	OrderLineID int64           `json:"orderLineId"`
	Amount      decimal.Decimal `json:"amount"`
	RefundID    string          `json:"refundId"`
	RefundDate  time.Time       `json:"refundDate"`
}

// Методы конвертации

// FromDomainMembership конвертирует domain модель в DTO
func FromDomainMembership(m *domain.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:           m.ID,
		Name:         m.Name,
		Details:      m.Details,
		Price:        m.Price,
		DurationDays: m.DurationDays,
		Available:    m.Available,
	}
}

// FromDomainPackage конвертирует domain модель в DTO
func FromDomainPackage(p *domain.Package) *PackageResponse {
	ids := p.ExclusiveMembershipIDs
	if ids == nil {
		ids = []int64{}
	}
	return &PackageResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Details:                p.Details,
		Price:                  p.Price,
		Tickets:                p.Tickets,
		ExclusiveMembershipIDs: ids,
		Available:              p.Available,
	}
}

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	types := make([]string, len(c.ApplicableProductTypes))
	for i, t := range c.ApplicableProductTypes {
		types[i] = string(t)
	}
	return &CouponResponse{
		ID:                     c.ID,
		Code:                   c.Code,
		Value:                  c.Value,
		PercentOff:             c.PercentOff,
		MaxUse:                 c.MaxUse,
		MaxUsePerUser:          c.MaxUsePerUser,
		StartTime:              c.StartTime,
		EndTime:                c.EndTime,
		OwnerID:                c.OwnerID,
		Details:                c.Details,
		ApplicableRetreats:     orEmpty(c.ApplicableRetreats),
		ApplicablePackages:     orEmpty(c.ApplicablePackages),
		ApplicableMemberships:  orEmpty(c.ApplicableMemberships),
		ApplicableProductTypes: types,
		Uses:                   c.Uses,
	}
}

// FromDomainOrder конвертирует заказ в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Reference:       o.Reference,
		TransactionID:   o.TransactionID,
		TransactionDate: o.TransactionDate,
		Total:           o.Total,
		Discount:        o.Discount,
		CouponID:        o.CouponID,
		Lines:           make([]OrderLineResponse, len(o.Lines)),
	}
	for i, l := range o.Lines {
		resp.Lines[i] = OrderLineResponse{
			ID:              l.ID,
			ProductType:     string(l.ProductType),
			ObjectID:        l.ObjectID,
			Quantity:        l.Quantity,
			Cost:            l.Cost,
			CouponRealValue: l.CouponRealValue,
		}
	}
	return resp
}

// FromDomainRefund конвертирует возврат в DTO
func FromDomainRefund(r *domain.Refund) *RefundResponse {
	return &RefundResponse{
		ID:          r.ID,
		OrderLineID: r.OrderLineID,
		Amount:      r.Amount,
		RefundID:    r.RefundID,
		RefundDate:  r.RefundDate,
	}
}

func orEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
