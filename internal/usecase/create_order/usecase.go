package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/blitz-booking/internal/domain"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	"github.com/m04kA/blitz-booking/internal/integrations/paysafe"
	"github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
)

// UseCase use case для оформления заказа в магазине
type UseCase struct {
	storeRepo    StoreRepository
	retreatRepo  RetreatRepository
	userRepo     UserRepository
	tomatoRepo   TomatoRepository
	coupons      CouponValidator
	retreats     RetreatReserver
	payments     PaymentGateway
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	storeRepo StoreRepository,
	retreatRepo RetreatRepository,
	userRepo UserRepository,
	tomatoRepo TomatoRepository,
	coupons CouponValidator,
	retreats RetreatReserver,
	payments PaymentGateway,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		storeRepo:    storeRepo,
		retreatRepo:  retreatRepo,
		userRepo:     userRepo,
		tomatoRepo:   tomatoRepo,
		coupons:      coupons,
		retreats:     retreats,
		payments:     payments,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute оформляет заказ
// Оплата проходит до транзакции; если сохранить заказ не удалось, платёж возвращается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: user=%d, %d lines, coupon=%q", req.UserID, len(req.Lines), req.CouponCode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		uc.metrics.IncOrder("rejected")
		return nil, err
	}

	now := uc.timeProvider.Now()
	reference := uuid.NewString()

	// 2. Предварительный расчёт стоимости
	user, err := uc.getUser(ctx, req.UserID)
	if err != nil {
		return nil, uc.fail(req, err)
	}
	q, err := uc.priceOrder(ctx, req, user, now)
	if err != nil {
		return nil, uc.fail(req, err)
	}

	// 3. Оплата (бесплатный заказ не оплачивается)
	var transactionID *string
	if q.total.IsPositive() {
		if req.PaymentToken == "" {
			return nil, uc.fail(req, ErrPaymentRequired)
		}
		id, err := uc.payments.Charge(ctx, req.PaymentToken, domain.ToCents(q.total), reference)
		if err != nil {
			if errors.Is(err, paysafe.ErrPaymentDeclined) {
				return nil, uc.fail(req, fmt.Errorf("%w: %w", ErrPaymentDeclined, err))
			}
			return nil, uc.fail(req, fmt.Errorf("%w: %w", ErrPaymentGateway, err))
		}
		transactionID = &id
	}
	charged := q.total

	// 4. Повторная проверка и сохранение в сериализуемой транзакции
	var (
		order        *domain.Order
		reservations map[int]*reserve_retreat.Response
		resp         *Response
	)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Цена могла измениться после оплаты
		user, err := uc.getUser(txCtx, req.UserID)
		if err != nil {
			return err
		}
		q, err := uc.priceOrder(txCtx, req, user, now)
		if err != nil {
			return err
		}
		if !q.total.Equal(charged) {
			return fmt.Errorf("%w: charged %s, now %s", ErrPriceChanged, charged, q.total)
		}

		// 4.2. Заказ со строками
		order, err = uc.storeRepo.CreateOrder(txCtx, &domain.Order{
			UserID:          req.UserID,
			Reference:       reference,
			TransactionID:   transactionID,
			TransactionDate: now,
			Total:           q.total,
			Discount:        q.discount,
			CouponID:        q.couponID,
			Lines:           q.lines,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create order: %w", ErrInternal, err)
		}

		resp = newResponse(order)
		reservations = make(map[int]*reserve_retreat.Response)

		// 4.3. Эффекты товаров
		for i := range order.Lines {
			line := &order.Lines[i]
			switch line.ProductType {
			case domain.ProductPackage:
				tickets := q.packages[i].Tickets * line.Quantity
				if _, err := uc.userRepo.AddTickets(txCtx, req.UserID, tickets); err != nil {
					return fmt.Errorf("%w: failed to credit tickets: %w", ErrInternal, err)
				}
				resp.TicketsCredited += tickets

			case domain.ProductMembership:
				end := membershipEnd(user, q.memberships[i], now)
				if err := uc.userRepo.SetMembership(txCtx, req.UserID, line.ObjectID, end); err != nil {
					return fmt.Errorf("%w: failed to set membership: %w", ErrInternal, err)
				}
				resp.MembershipEnd = &end

			case domain.ProductRetreat:
				lineID := line.ID
				res, err := uc.retreats.Reserve(txCtx, &reserve_retreat.Request{
					UserID:      req.UserID,
					RetreatID:   line.ObjectID,
					OrderLineID: &lineID,
				})
				if err != nil {
					if errors.Is(err, reserve_retreat.ErrInternal) {
						return fmt.Errorf("%w: failed to reserve retreat: %w", ErrInternal, err)
					}
					return fmt.Errorf("%w: retreat id=%d: %w", ErrRetreatUnavailable, line.ObjectID, err)
				}
				reservations[i] = res
				resp.Lines[i].ReservationID = &res.ID
			}

			// 4.4. Томат за каждую строку
			if _, err := uc.tomatoRepo.CreditTomato(txCtx, &domain.Tomato{
				UserID: req.UserID,
				Number: 1,
				Source: domain.TomatoSourcePurchase,
			}); err != nil {
				return fmt.Errorf("%w: failed to credit tomato: %w", ErrInternal, err)
			}
		}

		// 4.5. Использование купона
		if q.couponID != nil {
			if err := uc.storeRepo.IncrementCouponUses(txCtx, *q.couponID, req.UserID); err != nil {
				return fmt.Errorf("%w: failed to record coupon use: %w", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		// 5. Компенсация оплаты
		if transactionID != nil {
			uc.compensate(ctx, *transactionID, charged.String(), domain.ToCents(charged))
		}
		return nil, uc.fail(req, err)
	}

	// 6. Уведомления после коммита
	for _, res := range reservations {
		uc.retreats.AfterCommit(ctx, res)
	}
	uc.metrics.IncOrder("created")
	uc.notifier.Publish(ctx, domain.Event{
		Type:   domain.EventOrderCreated,
		UserID: req.UserID,
		Payload: map[string]interface{}{
			"orderId":   order.ID,
			"reference": order.Reference,
			"total":     order.Total.StringFixed(2),
			"discount":  order.Discount.StringFixed(2),
			"lines":     len(order.Lines),
		},
	})

	uc.logger.Info("CreateOrder: order id=%d (%s) created, total=%s", order.ID, order.Reference, order.Total)
	return resp, nil
}

func (uc *UseCase) getUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
	}
	return user, nil
}

// compensate возвращает списанную сумму, когда заказ не сохранился
// Возврат не должен прерываться отменой запроса клиента
func (uc *UseCase) compensate(ctx context.Context, transactionID, amount string, cents int64) {
	refundID, err := uc.payments.Refund(context.WithoutCancel(ctx), transactionID, cents)
	if err != nil {
		uc.logger.Error("CreateOrder: compensating refund of %s for transaction %s failed, manual action required: %v",
			amount, transactionID, err)
		return
	}
	uc.logger.Warn("CreateOrder: transaction %s refunded (%s), refund_id=%s", transactionID, amount, refundID)
}

func (uc *UseCase) fail(req *Request, err error) error {
	if errors.Is(err, ErrInternal) || errors.Is(err, ErrPaymentGateway) {
		uc.logger.Error("CreateOrder: user=%d: %v", req.UserID, err)
		uc.metrics.IncOrder("failed")
	} else {
		uc.logger.Warn("CreateOrder: user=%d rejected: %v", req.UserID, err)
		uc.metrics.IncOrder("rejected")
	}
	return err
}

func newResponse(o *domain.Order) *Response {
	resp := &Response{
		ID:              o.ID,
		UserID:          o.UserID,
		Reference:       o.Reference,
		TransactionID:   o.TransactionID,
		TransactionDate: o.TransactionDate,
		Total:           o.Total,
		Discount:        o.Discount,
		CouponID:        o.CouponID,
		Lines:           make([]LineResponse, len(o.Lines)),
	}
	for i, l := range o.Lines {
		resp.Lines[i] = LineResponse{
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
