package reserve_retreat

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
)

// UseCase use case для бронирования места на ретрите
// Используется магазином при обработке заказа и сотрудниками напрямую
type UseCase struct {
	retreatRepo  RetreatRepository
	tomatoRepo   TomatoRepository
	cache        CacheInvalidator
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	retreatRepo RetreatRepository,
	tomatoRepo TomatoRepository,
	cache CacheInvalidator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		retreatRepo:  retreatRepo,
		tomatoRepo:   tomatoRepo,
		cache:        cache,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute бронирует место в собственной транзакции и рассылает уведомление после коммита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveRetreat: user=%d, retreat=%d", req.UserID, req.RetreatID)

	var resp *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.Reserve(txCtx, req)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ReserveRetreat: user=%d, retreat=%d: %v", req.UserID, req.RetreatID, err)
		} else {
			uc.logger.Warn("ReserveRetreat: user=%d, retreat=%d rejected: %v", req.UserID, req.RetreatID, err)
		}
		return nil, err
	}

	uc.AfterCommit(ctx, resp)
	return resp, nil
}

// Reserve проверяет и создает бронирование внутри транзакции вызывающего
// После коммита вызывающий должен вызвать AfterCommit
func (uc *UseCase) Reserve(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Ретрит (строка блокируется)
	rt, err := uc.retreatRepo.GetRetreat(ctx, req.RetreatID)
	if err != nil {
		if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
			return nil, ErrRetreatNotFound
		}
		return nil, fmt.Errorf("%w: failed to get retreat: %w", ErrInternal, err)
	}
	if !rt.IsActive {
		return nil, ErrRetreatNotFound
	}
	if !uc.timeProvider.Now().Before(rt.StartTime) {
		return nil, ErrRetreatStarted
	}

	// 3. Дубль
	if _, err := uc.retreatRepo.FindActiveReservation(ctx, req.UserID, rt.ID); err == nil {
		return nil, ErrAlreadyReserved
	} else if !errors.Is(err, retreatRepo.ErrReservationNotFound) {
		return nil, fmt.Errorf("%w: failed to find reservation: %w", ErrInternal, err)
	}

	// 4. Пересечение с другими ретритами пользователя
	overlapping, err := uc.retreatRepo.ListUserActiveReservationsOverlapping(ctx, req.UserID, rt.StartTime, rt.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list user reservations: %w", ErrInternal, err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: retreat reservation id=%d", ErrOverlappingReservation, overlapping[0].ID)
	}

	// 5. Свободные места с учётом предложений из очереди
	hold, err := uc.retreatRepo.HasActiveHold(ctx, req.UserID, rt.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check hold: %w", ErrInternal, err)
	}
	if !hasFreeSeat(rt, hold) {
		uc.logger.Warn("ReserveRetreat: retreat id=%d full, %d/%d", rt.ID, rt.ReservedSeats, rt.Seats)
		return nil, ErrRetreatFull
	}

	// 6. Бронирование
	created, err := uc.retreatRepo.CreateReservation(ctx, &domain.RetreatReservation{
		UserID:      req.UserID,
		RetreatID:   rt.ID,
		OrderLineID: req.OrderLineID,
		IsActive:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
	}

	// 7. Пользователь больше не ждёт места
	if err := uc.retreatRepo.RemoveFromWaitQueue(ctx, req.UserID, rt.ID); err != nil &&
		!errors.Is(err, retreatRepo.ErrNotQueued) {
		return nil, fmt.Errorf("%w: failed to leave wait queue: %w", ErrInternal, err)
	}

	// 8. Томат за бронирование
	if _, err := uc.tomatoRepo.CreditTomato(ctx, &domain.Tomato{
		UserID: req.UserID,
		Number: 1,
		Source: domain.TomatoSourceRetreat,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to credit tomato: %w", ErrInternal, err)
	}

	return &Response{
		ID:          created.ID,
		UserID:      created.UserID,
		RetreatID:   rt.ID,
		OrderLineID: created.OrderLineID,
		StartTime:   rt.StartTime,
		EndTime:     rt.EndTime,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// AfterCommit сбрасывает кэш, пишет метрики и публикует событие
func (uc *UseCase) AfterCommit(ctx context.Context, resp *Response) {
	uc.cache.Invalidate(ctx, resp.RetreatID)
	uc.metrics.IncReservation("retreat", "created")
	uc.notifier.Publish(ctx, domain.Event{
		Type:   domain.EventReservationCreated,
		UserID: resp.UserID,
		Payload: map[string]interface{}{
			"retreatReservationId": resp.ID,
			"retreatId":            resp.RetreatID,
			"startTime":            resp.StartTime,
			"endTime":              resp.EndTime,
		},
	})

	uc.logger.Info("ReserveRetreat: reservation id=%d created for user id=%d", resp.ID, resp.UserID)
}
