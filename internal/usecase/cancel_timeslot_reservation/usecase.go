package cancel_timeslot_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
)

// UseCase use case для отмены бронирования таймслота пользователем
type UseCase struct {
	workplaceRepo WorkplaceRepository
	userRepo      UserRepository
	notifier      Notifier
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	refundWindow  time.Duration
}

// NewUseCase создает новый экземпляр use case
// refundHours - за сколько часов до начала отмена еще возвращает билеты
func NewUseCase(
	workplaceRepo WorkplaceRepository,
	userRepo UserRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	refundHours int,
) *UseCase {
	return &UseCase{
		workplaceRepo: workplaceRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		refundWindow:  time.Duration(refundHours) * time.Hour,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelTimeslotReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelTimeslotReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		ts       *domain.TimeSlot
		refunded int
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1.1. Бронирование (строка блокируется)
		res, err := uc.workplaceRepo.GetReservation(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, workplaceRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 1.2. Проверяем права и состояние
		if res.UserID != req.UserID {
			return ErrAccessDenied
		}
		if !res.IsActive {
			return ErrAlreadyCancelled
		}

		ts, err = uc.workplaceRepo.GetTimeslot(txCtx, res.TimeSlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get timeslot: %w", ErrInternal, err)
		}
		if ts.HasStarted(now) {
			return ErrTimeslotStarted
		}

		// 1.3. Отмена и возврат билетов
		refunded = refundTickets(res, ts, now, uc.refundWindow)
		if err := uc.workplaceRepo.CancelReservation(txCtx, res.ID, domain.CancelationByUser, now, refunded); err != nil {
			return fmt.Errorf("%w: failed to cancel reservation: %w", ErrInternal, err)
		}
		if refunded > 0 {
			if _, err := uc.userRepo.AddTickets(txCtx, res.UserID, refunded); err != nil {
				return fmt.Errorf("%w: failed to refund tickets: %w", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelTimeslotReservation: reservation id=%d: %v", req.ReservationID, err)
		} else {
			uc.logger.Warn("CancelTimeslotReservation: reservation id=%d rejected: %v", req.ReservationID, err)
		}
		return nil, err
	}

	// 2. Уведомление и метрики после коммита
	uc.metrics.IncReservation("timeslot", "cancelled")
	uc.notifier.Publish(ctx, domain.Event{
		Type:   domain.EventReservationCancelled,
		UserID: req.UserID,
		Payload: map[string]interface{}{
			"reservationId":   req.ReservationID,
			"timeslotId":      ts.ID,
			"startTime":       ts.StartTime,
			"ticketsRefunded": refunded,
		},
	})

	uc.logger.Info("CancelTimeslotReservation: reservation id=%d cancelled, %d tickets refunded", req.ReservationID, refunded)
	return &Response{
		ID:              req.ReservationID,
		TimeslotID:      ts.ID,
		TicketsRefunded: refunded,
		CancelledAt:     now,
	}, nil
}
