package reserve_timeslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
)

// UseCase use case для бронирования таймслота за билеты
type UseCase struct {
	workplaceRepo WorkplaceRepository
	userRepo      UserRepository
	tomatoRepo    TomatoRepository
	notifier      Notifier
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workplaceRepo WorkplaceRepository,
	userRepo UserRepository,
	tomatoRepo TomatoRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		workplaceRepo: workplaceRepo,
		userRepo:      userRepo,
		tomatoRepo:    tomatoRepo,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case бронирования таймслота
// Использует сериализуемую транзакцию: проверка мест и списание билетов атомарны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveTimeslot: user=%d, timeslot=%d", req.UserID, req.TimeslotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveTimeslot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		ts          *domain.TimeSlot
		reservation *domain.Reservation
		ticketsLeft int
	)

	// 2. Все проверки и изменения в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Таймслот (строка блокируется)
		var err error
		ts, err = uc.workplaceRepo.GetTimeslot(txCtx, req.TimeslotID)
		if err != nil {
			if errors.Is(err, workplaceRepo.ErrTimeslotNotFound) {
				return ErrTimeslotNotFound
			}
			return fmt.Errorf("%w: failed to get timeslot: %w", ErrInternal, err)
		}

		// 2.2. Нельзя бронировать начавшийся таймслот
		if ts.HasStarted(now) {
			return ErrTimeslotStarted
		}

		// 2.3. Пользователь
		user, err := uc.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
		}

		// 2.4. Дубль и пересечения с другими бронированиями пользователя
		overlapping, err := uc.workplaceRepo.ListUserActiveReservationsOverlapping(txCtx, req.UserID, ts.StartTime, ts.EndTime)
		if err != nil {
			return fmt.Errorf("%w: failed to list user reservations: %w", ErrInternal, err)
		}
		if err := checkUserReservations(ts.ID, overlapping); err != nil {
			return err
		}

		// 2.5. Свободные места
		workplace, err := uc.workplaceRepo.GetWorkplace(txCtx, ts.WorkplaceID)
		if err != nil {
			return fmt.Errorf("%w: failed to get workplace: %w", ErrInternal, err)
		}
		reserved, err := uc.workplaceRepo.CountActiveReservations(txCtx, ts.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count reservations: %w", ErrInternal, err)
		}
		if reserved >= workplace.Seats {
			uc.logger.Warn("ReserveTimeslot: timeslot id=%d full, %d/%d", ts.ID, reserved, workplace.Seats)
			return ErrTimeslotFull
		}

		// 2.6. Списание билетов
		if !user.CanAfford(ts.Price) {
			return ErrInsufficientTickets
		}
		ticketsLeft = user.Tickets
		if ts.Price > 0 {
			ticketsLeft, err = uc.userRepo.AddTickets(txCtx, req.UserID, -ts.Price)
			if err != nil {
				if errors.Is(err, userRepo.ErrInsufficientTickets) {
					return ErrInsufficientTickets
				}
				return fmt.Errorf("%w: failed to debit tickets: %w", ErrInternal, err)
			}
		}

		// 2.7. Бронирование
		reservation, err = uc.workplaceRepo.CreateReservation(txCtx, &domain.Reservation{
			UserID:       req.UserID,
			TimeSlotID:   ts.ID,
			IsActive:     true,
			TicketsSpent: ts.Price,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 2.8. Томат за бронирование
		if _, err := uc.tomatoRepo.CreditTomato(txCtx, &domain.Tomato{
			UserID: req.UserID,
			Number: 1,
			Source: domain.TomatoSourceTimeslot,
		}); err != nil {
			return fmt.Errorf("%w: failed to credit tomato: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ReserveTimeslot: user=%d, timeslot=%d: %v", req.UserID, req.TimeslotID, err)
		} else {
			uc.logger.Warn("ReserveTimeslot: user=%d, timeslot=%d rejected: %v", req.UserID, req.TimeslotID, err)
		}
		return nil, err
	}

	// 3. Уведомление и метрики после коммита
	uc.metrics.IncReservation("timeslot", "created")
	uc.notifier.Publish(ctx, domain.Event{
		Type:   domain.EventReservationCreated,
		UserID: req.UserID,
		Payload: map[string]interface{}{
			"reservationId": reservation.ID,
			"timeslotId":    ts.ID,
			"startTime":     ts.StartTime,
			"endTime":       ts.EndTime,
		},
	})

	uc.logger.Info("ReserveTimeslot: reservation id=%d created, %d tickets left", reservation.ID, ticketsLeft)
	return &Response{
		ID:           reservation.ID,
		UserID:       reservation.UserID,
		TimeslotID:   ts.ID,
		StartTime:    ts.StartTime,
		EndTime:      ts.EndTime,
		TicketsSpent: ts.Price,
		TicketsLeft:  ticketsLeft,
		CreatedAt:    reservation.CreatedAt,
	}, nil
}
