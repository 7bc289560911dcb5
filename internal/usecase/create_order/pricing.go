package create_order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
	storeRepo "github.com/m04kA/blitz-booking/internal/infra/storage/store"
	"github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

// quote рассчитанный заказ
type quote struct {
	lines       []domain.OrderLine
	packages    map[int]*domain.Package
	memberships map[int]*domain.Membership
	subtotal    decimal.Decimal
	discount    decimal.Decimal
	total       decimal.Decimal
	couponID    *int64
}

// priceOrder загружает товары, проверяет доступность и применяет купон
// В транзакции строки ретритов и купона блокируются репозиториями
func (uc *UseCase) priceOrder(ctx context.Context, req *Request, user *domain.User, now time.Time) (*quote, error) {
	q := &quote{
		lines:       make([]domain.OrderLine, len(req.Lines)),
		packages:    make(map[int]*domain.Package),
		memberships: make(map[int]*domain.Membership),
		subtotal:    decimal.Zero,
		discount:    decimal.Zero,
	}

	for i, l := range req.Lines {
		t := domain.ProductType(l.ProductType)

		var price decimal.Decimal
		switch t {
		case domain.ProductPackage:
			p, err := uc.storeRepo.GetPackage(ctx, l.ObjectID)
			if err != nil {
				if errors.Is(err, storeRepo.ErrPackageNotFound) {
					return nil, fmt.Errorf("%w: package id=%d", ErrProductNotFound, l.ObjectID)
				}
				return nil, fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
			}
			if !p.Available {
				return nil, fmt.Errorf("%w: package id=%d", ErrProductNotFound, l.ObjectID)
			}
			if !p.AllowedFor(user, now) {
				return nil, fmt.Errorf("%w: package id=%d", ErrProductNotAllowed, l.ObjectID)
			}
			q.packages[i] = p
			price = p.Price

		case domain.ProductMembership:
			m, err := uc.storeRepo.GetMembership(ctx, l.ObjectID)
			if err != nil {
				if errors.Is(err, storeRepo.ErrMembershipNotFound) {
					return nil, fmt.Errorf("%w: membership id=%d", ErrProductNotFound, l.ObjectID)
				}
				return nil, fmt.Errorf("%w: failed to get membership: %w", ErrInternal, err)
			}
			if !m.Available {
				return nil, fmt.Errorf("%w: membership id=%d", ErrProductNotFound, l.ObjectID)
			}
			q.memberships[i] = m
			price = m.Price

		case domain.ProductRetreat:
			rt, err := uc.retreatRepo.GetRetreat(ctx, l.ObjectID)
			if err != nil {
				if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
					return nil, fmt.Errorf("%w: retreat id=%d", ErrProductNotFound, l.ObjectID)
				}
				return nil, fmt.Errorf("%w: failed to get retreat: %w", ErrInternal, err)
			}
			if !rt.IsActive {
				return nil, fmt.Errorf("%w: retreat id=%d", ErrProductNotFound, l.ObjectID)
			}
			price = rt.Price
		}

		cost := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		q.lines[i] = domain.OrderLine{
			ProductType:     t,
			ObjectID:        l.ObjectID,
			Quantity:        l.Quantity,
			Cost:            cost,
			CouponRealValue: decimal.Zero,
		}
		q.subtotal = q.subtotal.Add(cost)
	}

	if req.CouponCode != "" {
		if err := uc.applyCoupon(ctx, req, q); err != nil {
			return nil, err
		}
	}

	q.total = q.subtotal.Sub(q.discount)
	return q, nil
}

func (uc *UseCase) applyCoupon(ctx context.Context, req *Request, q *quote) error {
	lines := make([]validate_coupon.Line, len(q.lines))
	for i, l := range q.lines {
		lines[i] = validate_coupon.Line{
			ProductType: string(l.ProductType),
			ObjectID:    l.ObjectID,
			Cost:        l.Cost,
		}
	}

	res, err := uc.coupons.Execute(ctx, &validate_coupon.Request{
		UserID: req.UserID,
		Code:   req.CouponCode,
		Lines:  lines,
	})
	if err != nil {
		if errors.Is(err, validate_coupon.ErrInternal) {
			return fmt.Errorf("%w: failed to validate coupon: %w", ErrInternal, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidCoupon, err)
	}

	couponID := res.CouponID
	q.couponID = &couponID
	q.discount = res.Value
	q.lines[res.LineIndex].CouponID = &couponID
	q.lines[res.LineIndex].CouponRealValue = res.Value
	return nil
}

// membershipEnd новая дата окончания абонемента
// Действующий абонемент продлевается от своей даты окончания, иначе отсчёт от сегодня
func membershipEnd(user *domain.User, m *domain.Membership, now time.Time) time.Time {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if user.HasActiveMembership(now) && user.MembershipEnd.After(base) {
		base = *user.MembershipEnd
	}
	return base.AddDate(0, 0, m.DurationDays)
}
