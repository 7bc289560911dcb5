package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	storeRepo "github.com/m04kA/blitz-booking/internal/infra/storage/store"
	"github.com/m04kA/blitz-booking/internal/integrations/paysafe"
	"github.com/m04kA/blitz-booking/internal/service/store/models"
)

// couponCodeLength длина сгенерированного кода купона
const couponCodeLength = 12

// Service сервис каталога, купонов и возвратов
type Service struct {
	repo         StoreRepository
	payments     PaymentGateway
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo StoreRepository, payments PaymentGateway, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
		payments:     payments,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateMembership создает абонемент
func (s *Service) CreateMembership(ctx context.Context, req *models.CreateMembershipRequest) (*models.MembershipResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: durationDays must be positive", ErrInvalidInput)
	}

	created, err := s.repo.CreateMembership(ctx, &domain.Membership{
		Name:         name,
		Details:      req.Details,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Available:    req.Available == nil || *req.Available,
	})
	if err != nil {
		s.logger.Error("CreateMembership: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateMembership - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateMembership: membership id=%d created", created.ID)
	return models.FromDomainMembership(created), nil
}

// CreatePackage создает пакет билетов
// Эксклюзивные абонементы должны существовать
func (s *Service) CreatePackage(ctx context.Context, req *models.CreatePackageRequest) (*models.PackageResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Tickets <= 0 {
		return nil, fmt.Errorf("%w: tickets must be positive", ErrInvalidInput)
	}

	for _, id := range req.ExclusiveMembershipIDs {
		if _, err := s.repo.GetMembership(ctx, id); err != nil {
			if errors.Is(err, storeRepo.ErrMembershipNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrMembershipNotFound, id)
			}
			s.logger.Error("CreatePackage: get membership id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: CreatePackage - get membership: %w", ErrInternal, err)
		}
	}

	created, err := s.repo.CreatePackage(ctx, &domain.Package{
		Name:                   name,
		Details:                req.Details,
		Price:                  req.Price,
		Tickets:                req.Tickets,
		ExclusiveMembershipIDs: req.ExclusiveMembershipIDs,
		Available:              req.Available == nil || *req.Available,
	})
	if err != nil {
		s.logger.Error("CreatePackage: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePackage - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreatePackage: package id=%d created", created.ID)
	return models.FromDomainPackage(created), nil
}

// ListProducts доступные для покупки абонементы и пакеты
func (s *Service) ListProducts(ctx context.Context) (*models.ProductsResponse, error) {
	memberships, err := s.repo.ListMemberships(ctx, true)
	if err != nil {
		s.logger.Error("ListProducts: list memberships: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - list memberships: %w", ErrInternal, err)
	}
	packages, err := s.repo.ListPackages(ctx, true)
	if err != nil {
		s.logger.Error("ListProducts: list packages: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - list packages: %w", ErrInternal, err)
	}

	resp := &models.ProductsResponse{
		Memberships: make([]*models.MembershipResponse, len(memberships)),
		Packages:    make([]*models.PackageResponse, len(packages)),
	}
	for i, m := range memberships {
		resp.Memberships[i] = models.FromDomainMembership(m)
	}
	for i, p := range packages {
		resp.Packages[i] = models.FromDomainPackage(p)
	}
	return resp, nil
}

// CreateCoupon создает купон от имени сотрудника ownerID
func (s *Service) CreateCoupon(ctx context.Context, ownerID int64, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	coupon, err := buildCoupon(ownerID, req)
	if err != nil {
		return nil, err
	}
	if coupon.Code == "" {
		coupon.Code = generateCouponCode()
	}

	created, err := s.repo.CreateCoupon(ctx, coupon)
	if err != nil {
		if errors.Is(err, storeRepo.ErrCouponCodeTaken) {
			return nil, ErrCouponCodeTaken
		}
		s.logger.Error("CreateCoupon: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCoupon - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateCoupon: coupon id=%d, code=%s created by user id=%d", created.ID, created.Code, ownerID)
	return models.FromDomainCoupon(created), nil
}

// RefundOrderLine возвращает amount по строке заказа через платёжный шлюз
// Сумма не может превышать оплаченный остаток: стоимость минус скидка минус прошлые возвраты
func (s *Service) RefundOrderLine(ctx context.Context, orderLineID int64, amount decimal.Decimal) (*models.RefundResponse, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	amount = amount.Round(2)

	var refund *domain.Refund
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		line, err := s.repo.GetOrderLine(txCtx, orderLineID)
		if err != nil {
			if errors.Is(err, storeRepo.ErrOrderLineNotFound) {
				return ErrOrderLineNotFound
			}
			return fmt.Errorf("%w: RefundOrderLine - get order line: %w", ErrInternal, err)
		}

		order, err := s.repo.GetOrder(txCtx, line.OrderID)
		if err != nil {
			return fmt.Errorf("%w: RefundOrderLine - get order: %w", ErrInternal, err)
		}
		if order.TransactionID == nil {
			return ErrOrderNotPaid
		}

		refunded, err := s.repo.SumRefunded(txCtx, orderLineID)
		if err != nil {
			return fmt.Errorf("%w: RefundOrderLine - sum refunded: %w", ErrInternal, err)
		}
		left := line.Cost.Sub(line.CouponRealValue).Sub(refunded)
		if amount.GreaterThan(left) {
			s.logger.Warn("RefundOrderLine: line id=%d, requested %s, left %s", orderLineID, amount, left)
			return ErrRefundExceedsPaid
		}

		refundID, err := s.payments.Refund(txCtx, *order.TransactionID, domain.ToCents(amount))
		if err != nil {
			if errors.Is(err, paysafe.ErrPaymentDeclined) {
				return fmt.Errorf("%w: %w", ErrRefundRejected, err)
			}
			return fmt.Errorf("%w: %w", ErrPaymentGateway, err)
		}

		refund, err = s.repo.CreateRefund(txCtx, &domain.Refund{
			OrderLineID: orderLineID,
			Amount:      amount,
			RefundID:    refundID,
			RefundDate:  s.timeProvider.Now(),
		})
		if err != nil {
			// деньги уже возвращены шлюзом, запись нужно восстановить вручную
			s.logger.Error("RefundOrderLine: refund %s for line id=%d not recorded: %v", refundID, orderLineID, err)
			return fmt.Errorf("%w: RefundOrderLine - create refund: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrPaymentGateway) {
			s.logger.Error("RefundOrderLine: line id=%d: %v", orderLineID, err)
		}
		return nil, err
	}

	s.logger.Info("RefundOrderLine: refunded %s on line id=%d, refund_id=%s", amount, orderLineID, refund.RefundID)
	return models.FromDomainRefund(refund), nil
}

func generateCouponCode() string {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return code[:couponCodeLength]
}
