package generate_timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
)

// UseCase use case для массовой генерации таймслотов периода
type UseCase struct {
	workplaceRepo WorkplaceRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(workplaceRepo WorkplaceRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		workplaceRepo: workplaceRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute генерирует таймслоты по расписанию рабочего дня
// Слоты, пересекающиеся с уже существующими, пропускаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateTimeslots: period=%d, %s-%s every %d min",
		req.PeriodID, req.OpenTime, req.CloseTime, req.SlotMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateTimeslots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{PeriodID: req.PeriodID, Created: make([]Timeslot, 0)}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp.Created = resp.Created[:0]
		resp.Skipped = 0

		// 2. Период и часовой пояс пространства
		period, err := uc.workplaceRepo.GetPeriod(txCtx, req.PeriodID)
		if err != nil {
			if errors.Is(err, workplaceRepo.ErrPeriodNotFound) {
				return ErrPeriodNotFound
			}
			return fmt.Errorf("%w: failed to get period: %w", ErrInternal, err)
		}
		workplace, err := uc.workplaceRepo.GetWorkplace(txCtx, period.WorkplaceID)
		if err != nil {
			return fmt.Errorf("%w: failed to get workplace: %w", ErrInternal, err)
		}
		loc := time.UTC
		if workplace.Timezone != "" {
			loc, err = time.LoadLocation(workplace.Timezone)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidTimezone, workplace.Timezone)
			}
		}

		// 3. Кандидаты
		intervals, ok, err := generateIntervals(period, req, loc, domain.MaxGeneratedTimeslots)
		if err != nil {
			return fmt.Errorf("%w: failed to generate intervals: %w", ErrInternal, err)
		}
		if !ok {
			return fmt.Errorf("%w: limit is %d", ErrTooManyTimeslots, domain.MaxGeneratedTimeslots)
		}
		resp.Generated = len(intervals)

		// 4. Создание без пересечений
		for _, iv := range intervals {
			overlapping, err := uc.workplaceRepo.ListOverlappingTimeslots(txCtx, period.WorkplaceID, iv.start, iv.end)
			if err != nil {
				return fmt.Errorf("%w: failed to list overlapping: %w", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				resp.Skipped++
				continue
			}

			created, err := uc.workplaceRepo.CreateTimeslot(txCtx, &domain.TimeSlot{
				PeriodID:    period.ID,
				WorkplaceID: period.WorkplaceID,
				StartTime:   iv.start,
				EndTime:     iv.end,
				Price:       period.Price,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create timeslot: %w", ErrInternal, err)
			}
			resp.Created = append(resp.Created, Timeslot{
				ID:        created.ID,
				StartTime: created.StartTime,
				EndTime:   created.EndTime,
				Price:     created.Price,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("GenerateTimeslots: period id=%d: %v", req.PeriodID, err)
		} else {
			uc.logger.Warn("GenerateTimeslots: period id=%d rejected: %v", req.PeriodID, err)
		}
		return nil, err
	}

	uc.logger.Info("GenerateTimeslots: period id=%d, %d created, %d skipped",
		req.PeriodID, len(resp.Created), resp.Skipped)
	return resp, nil
}
