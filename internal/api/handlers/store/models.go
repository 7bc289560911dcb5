package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	createOrder "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	validateCoupon "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

// CouponLine строка корзины для предварительной проверки купона
type CouponLine struct {
	ProductType string          `json:"productType"`
	ObjectID    int64           `json:"objectId"`
	Cost        decimal.Decimal `json:"cost"`
}

// ValidateCouponRequest HTTP запрос на проверку купона
type ValidateCouponRequest struct {
	Code  string       `json:"code"`
	Lines []CouponLine `json:"lines"`
}

func (r *ValidateCouponRequest) ToUseCaseRequest(userID int64) *validateCoupon.Request {
	lines := make([]validateCoupon.Line, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = validateCoupon.Line{ProductType: l.ProductType, ObjectID: l.ObjectID, Cost: l.Cost}
	}
	return &validateCoupon.Request{UserID: userID, Code: r.Code, Lines: lines}
}

// ValidateCouponResponse размер скидки и строка, к которой она применится
type ValidateCouponResponse struct {
	CouponID  int64           `json:"couponId"`
	Code      string          `json:"code"`
	Value     decimal.Decimal `json:"value"`
	LineIndex int             `json:"lineIndex"`
	OrderLine CouponLine      `json:"orderLine"`
}

func FromValidateResponse(resp *validateCoupon.Response) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		CouponID:  resp.CouponID,
		Code:      resp.Code,
		Value:     resp.Value,
		LineIndex: resp.LineIndex,
		OrderLine: CouponLine{
			ProductType: resp.OrderLine.ProductType,
			ObjectID:    resp.OrderLine.ObjectID,
			Cost:        resp.OrderLine.Cost,
		},
	}
}

// OrderLineRequest строка заказа
type OrderLineRequest struct {
	ProductType string `json:"productType"`
	ObjectID    int64  `json:"objectId"`
	Quantity    int    `json:"quantity,omitempty"`
}

// CreateOrderRequest HTTP запрос на оформление заказа
type CreateOrderRequest struct {
	Lines        []OrderLineRequest `json:"lines"`
	CouponCode   string             `json:"couponCode,omitempty"`
	PaymentToken string             `json:"paymentToken,omitempty"`
}

func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) *createOrder.Request {
	lines := make([]createOrder.LineRequest, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = createOrder.LineRequest{ProductType: l.ProductType, ObjectID: l.ObjectID, Quantity: l.Quantity}
	}
	return &createOrder.Request{
		UserID:       userID,
		Lines:        lines,
		CouponCode:   r.CouponCode,
		PaymentToken: r.PaymentToken,
	}
}

// OrderLineResponse сохранённая строка заказа
type OrderLineResponse struct {
	ID              int64           `json:"id"`
	ProductType     string          `json:"productType"`
	ObjectID        int64           `json:"objectId"`
	Quantity        int             `json:"quantity"`
	Cost            decimal.Decimal `json:"cost"`
	CouponRealValue decimal.Decimal `json:"couponRealValue"`
	ReservationID   *int64          `json:"reservationId,omitempty"`
}

// OrderResponse HTTP ответ с заказом
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
	TicketsCredited int                 `json:"ticketsCredited"`
	MembershipEnd   *string             `json:"membershipEnd,omitempty"` // "2026-01-31"
}

func FromOrderResponse(resp *createOrder.Response) *OrderResponse {
	out := &OrderResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		Reference:       resp.Reference,
		TransactionID:   resp.TransactionID,
		TransactionDate: resp.TransactionDate,
		Total:           resp.Total,
		Discount:        resp.Discount,
		CouponID:        resp.CouponID,
		Lines:           make([]OrderLineResponse, len(resp.Lines)),
		TicketsCredited: resp.TicketsCredited,
	}
	for i, l := range resp.Lines {
		out.Lines[i] = OrderLineResponse{
			ID:              l.ID,
			ProductType:     l.ProductType,
			ObjectID:        l.ObjectID,
			Quantity:        l.Quantity,
			Cost:            l.Cost,
			CouponRealValue: l.CouponRealValue,
			ReservationID:   l.ReservationID,
		}
	}
	if resp.MembershipEnd != nil {
		end := resp.MembershipEnd.Format(domain.DateFormat)
		out.MembershipEnd = &end
	}
	return out
}
