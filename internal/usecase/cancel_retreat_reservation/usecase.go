package cancel_retreat_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
	"github.com/m04kA/blitz-booking/internal/service/store"
)

// UseCase use case для отмены бронирования ретрита пользователем
type UseCase struct {
	retreatRepo   RetreatRepository
	orderLineRepo OrderLineRepository
	refunder      Refunder
	waitQueue     WaitQueue
	notifier      Notifier
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	retreatRepo RetreatRepository,
	orderLineRepo OrderLineRepository,
	refunder Refunder,
	waitQueue WaitQueue,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		retreatRepo:   retreatRepo,
		orderLineRepo: orderLineRepo,
		refunder:      refunder,
		waitQueue:     waitQueue,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute отменяет бронирование, при необходимости возвращает деньги и оповещает очередь
// Транзакция READ COMMITTED с блокировкой строки: повтор после ошибки сериализации
// повторил бы возврат в платёжном шлюзе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelRetreatReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelRetreatReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	resp := &Response{
		ID:             req.ReservationID,
		Action:         string(domain.CancelationActionNone),
		RefundedAmount: decimal.Zero,
		CancelledAt:    now,
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Бронирование (строка блокируется)
		res, err := uc.retreatRepo.GetReservation(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, retreatRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}
		if res.UserID != req.UserID {
			return ErrAccessDenied
		}
		if !res.IsActive {
			return ErrAlreadyCancelled
		}
		resp.RetreatID = res.RetreatID

		rt, err := uc.retreatRepo.GetRetreat(txCtx, res.RetreatID)
		if err != nil {
			return fmt.Errorf("%w: failed to get retreat: %w", ErrInternal, err)
		}

		// 3. Возврат через магазин, если отмена до дедлайна
		var line *domain.OrderLine
		if res.OrderLineID != nil {
			line, err = uc.orderLineRepo.GetOrderLine(txCtx, *res.OrderLineID)
			if err != nil {
				return fmt.Errorf("%w: failed to get order line: %w", ErrInternal, err)
			}
		}
		action := domain.CancelationActionNone
		if amount := refundAmount(rt, line, now); amount.IsPositive() {
			refund, err := uc.refunder.RefundOrderLine(txCtx, line.ID, amount)
			if err != nil {
				if errors.Is(err, store.ErrRefundRejected) || errors.Is(err, store.ErrPaymentGateway) ||
					errors.Is(err, store.ErrOrderNotPaid) {
					return fmt.Errorf("%w: %w", ErrRefundFailed, err)
				}
				return fmt.Errorf("%w: failed to refund: %w", ErrInternal, err)
			}
			action = domain.CancelationActionRefund
			resp.RefundedAmount = refund.Amount
			resp.RefundID = refund.RefundID
		}
		resp.Action = string(action)

		// 4. Отмена
		if err := uc.retreatRepo.CancelReservation(txCtx, res.ID, domain.RetreatCancelationByUser, action, now); err != nil {
			return fmt.Errorf("%w: failed to cancel reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrRefundFailed) {
			uc.logger.Error("CancelRetreatReservation: reservation id=%d: %v", req.ReservationID, err)
		} else {
			uc.logger.Warn("CancelRetreatReservation: reservation id=%d rejected: %v", req.ReservationID, err)
		}
		return nil, err
	}

	// 5. Освободившееся место предлагается очереди
	uc.waitQueue.Invalidate(ctx, resp.RetreatID)
	resp.NotifiedUserIDs = []int64{}
	notified, err := uc.waitQueue.NotifyWaitQueue(ctx, resp.RetreatID)
	if err != nil {
		uc.logger.Warn("CancelRetreatReservation: notify wait queue of retreat id=%d: %v", resp.RetreatID, err)
	} else {
		resp.NotifiedUserIDs = notified.NotifiedUserIDs
	}

	uc.metrics.IncReservation("retreat", "cancelled")
	uc.notifier.Publish(ctx, domain.Event{
		Type:   domain.EventReservationCancelled,
		UserID: req.UserID,
		Payload: map[string]interface{}{
			"retreatReservationId": resp.ID,
			"retreatId":            resp.RetreatID,
			"action":               resp.Action,
			"refundedAmount":       resp.RefundedAmount.StringFixed(2),
		},
	})

	uc.logger.Info("CancelRetreatReservation: reservation id=%d cancelled, action=%s, refunded=%s",
		resp.ID, resp.Action, resp.RefundedAmount)
	return resp, nil
}
