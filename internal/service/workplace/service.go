package workplace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
)

// Service сервис пространств, периодов и таймслотов
type Service struct {
	repo         WorkplaceRepository
	userRepo     UserRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	repo WorkplaceRepository,
	userRepo UserRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		userRepo:     userRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateWorkplace создает пространство
func (s *Service) CreateWorkplace(ctx context.Context, req *models.CreateWorkplaceRequest) (*models.WorkplaceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Seats < domain.MinWorkplaceSeats || req.Seats > domain.MaxWorkplaceSeats {
		return nil, fmt.Errorf("%w: seats must be between %d and %d", ErrInvalidInput, domain.MinWorkplaceSeats, domain.MaxWorkplaceSeats)
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
	}

	created, err := s.repo.CreateWorkplace(ctx, &domain.Workplace{
		Name:     name,
		Details:  req.Details,
		Seats:    req.Seats,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Timezone: tz,
	})
	if err != nil {
		s.logger.Error("CreateWorkplace: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWorkplace - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateWorkplace: workplace id=%d created", created.ID)
	return models.FromDomainWorkplace(created), nil
}

// ListWorkplaces список пространств
func (s *Service) ListWorkplaces(ctx context.Context) ([]*models.WorkplaceResponse, error) {
	list, err := s.repo.ListWorkplaces(ctx)
	if err != nil {
		s.logger.Error("ListWorkplaces: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWorkplaces - repository error: %w", ErrInternal, err)
	}

	result := make([]*models.WorkplaceResponse, len(list))
	for i, w := range list {
		result[i] = models.FromDomainWorkplace(w)
	}
	return result, nil
}

// CreatePeriod создает период работы пространства
// Активный период не должен пересекаться с другими активными периодами того же пространства
func (s *Service) CreatePeriod(ctx context.Context, workplaceID int64, req *models.CreatePeriodRequest) (*models.PeriodResponse, error) {
	period, err := parsePeriod(workplaceID, req)
	if err != nil {
		return nil, err
	}

	var created *domain.Period
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetWorkplace(txCtx, workplaceID); err != nil {
			if errors.Is(err, workplaceRepo.ErrWorkplaceNotFound) {
				return ErrWorkplaceNotFound
			}
			return fmt.Errorf("%w: CreatePeriod - get workplace: %w", ErrInternal, err)
		}

		if period.IsActive {
			active, err := s.repo.ListActivePeriods(txCtx, workplaceID)
			if err != nil {
				return fmt.Errorf("%w: CreatePeriod - list periods: %w", ErrInternal, err)
			}
			for _, p := range active {
				if p.OverlapsPeriod(period.StartDate, period.EndDate) {
					s.logger.Warn("CreatePeriod: overlaps period id=%d in workplace id=%d", p.ID, workplaceID)
					return ErrPeriodOverlap
				}
			}
		}

		created, err = s.repo.CreatePeriod(txCtx, period)
		if err != nil {
			return fmt.Errorf("%w: CreatePeriod - create: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreatePeriod: period id=%d created in workplace id=%d", created.ID, workplaceID)
	return models.FromDomainPeriod(created), nil
}

// CreateTimeslot создает таймслот внутри периода
func (s *Service) CreateTimeslot(ctx context.Context, periodID int64, req *models.CreateTimeslotRequest) (*models.TimeslotResponse, error) {
	if err := validateTimeslotBounds(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	var created *domain.TimeSlot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		period, err := s.repo.GetPeriod(txCtx, periodID)
		if err != nil {
			if errors.Is(err, workplaceRepo.ErrPeriodNotFound) {
				return ErrPeriodNotFound
			}
			return fmt.Errorf("%w: CreateTimeslot - get period: %w", ErrInternal, err)
		}

		workplace, err := s.repo.GetWorkplace(txCtx, period.WorkplaceID)
		if err != nil {
			return fmt.Errorf("%w: CreateTimeslot - get workplace: %w", ErrInternal, err)
		}
		loc, err := workplace.Location()
		if err != nil {
			return fmt.Errorf("%w: CreateTimeslot - workplace timezone %q: %w", ErrInternal, workplace.Timezone, err)
		}

		if !period.Contains(req.StartTime, req.EndTime, loc) {
			return ErrTimeslotOutsidePeriod
		}

		overlapping, err := s.repo.ListOverlappingTimeslots(txCtx, period.WorkplaceID, req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: CreateTimeslot - list overlapping: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			s.logger.Warn("CreateTimeslot: overlaps timeslot id=%d", overlapping[0].ID)
			return ErrTimeslotOverlap
		}

		created, err = s.repo.CreateTimeslot(txCtx, &domain.TimeSlot{
			PeriodID:    period.ID,
			WorkplaceID: period.WorkplaceID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Price:       period.Price,
		})
		if err != nil {
			return fmt.Errorf("%w: CreateTimeslot - create: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateTimeslot: timeslot id=%d created in period id=%d", created.ID, periodID)
	return models.FromDomainTimeslot(created), nil
}

// ListTimeslots таймслоты пространства с заполненностью
func (s *Service) ListTimeslots(ctx context.Context, req *models.ListTimeslotsRequest) (*models.TimeslotListResponse, error) {
	from, to := req.From, req.To
	if from.IsZero() {
		from = s.timeProvider.Now()
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 7)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if _, err := s.repo.GetWorkplace(ctx, req.WorkplaceID); err != nil {
		if errors.Is(err, workplaceRepo.ErrWorkplaceNotFound) {
			return nil, ErrWorkplaceNotFound
		}
		return nil, fmt.Errorf("%w: ListTimeslots - get workplace: %w", ErrInternal, err)
	}

	list, err := s.repo.ListTimeslotsWithAvailability(ctx, req.WorkplaceID, from, to)
	if err != nil {
		s.logger.Error("ListTimeslots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeslots - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainAvailabilityList(list), nil
}

// DeleteTimeslot удаляет таймслот сотрудником
// Все активные бронирования отменяются с причиной TD и полным возвратом билетов
func (s *Service) DeleteTimeslot(ctx context.Context, timeslotID int64, req *models.DeleteTimeslotRequest) (*models.DeleteTimeslotResponse, error) {
	now := s.timeProvider.Now()

	var (
		ts        *domain.TimeSlot
		cancelled []*domain.Reservation
		refunded  int
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		ts, err = s.repo.GetTimeslot(txCtx, timeslotID)
		if err != nil {
			if errors.Is(err, workplaceRepo.ErrTimeslotNotFound) {
				return ErrTimeslotNotFound
			}
			return fmt.Errorf("%w: DeleteTimeslot - get timeslot: %w", ErrInternal, err)
		}

		reservations, err := s.repo.ListActiveReservationsByTimeslot(txCtx, timeslotID)
		if err != nil {
			return fmt.Errorf("%w: DeleteTimeslot - list reservations: %w", ErrInternal, err)
		}
		if len(reservations) > 0 && !req.Force {
			return ErrTimeslotHasReservations
		}

		cancelled = cancelled[:0]
		refunded = 0
		for _, res := range reservations {
			// возвращаем списанное при бронировании
			if err := s.repo.CancelReservation(txCtx, res.ID, domain.CancelationTimeslotDeleted, now, res.TicketsSpent); err != nil {
				return fmt.Errorf("%w: DeleteTimeslot - cancel reservation id=%d: %w", ErrInternal, res.ID, err)
			}
			if res.TicketsSpent > 0 {
				if _, err := s.userRepo.AddTickets(txCtx, res.UserID, res.TicketsSpent); err != nil {
					return fmt.Errorf("%w: DeleteTimeslot - refund user id=%d: %w", ErrInternal, res.UserID, err)
				}
			}
			cancelled = append(cancelled, res)
			refunded += res.TicketsSpent
		}

		if err := s.repo.DeleteTimeslot(txCtx, timeslotID); err != nil {
			return fmt.Errorf("%w: DeleteTimeslot - delete: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTimeslotNotFound) && !errors.Is(err, ErrTimeslotHasReservations) {
			s.logger.Error("DeleteTimeslot: timeslot id=%d: %v", timeslotID, err)
		}
		return nil, err
	}

	for _, res := range cancelled {
		s.metrics.IncReservation("timeslot", "cancelled")
		s.notifier.Publish(ctx, domain.Event{
			Type:   domain.EventTimeslotDeleted,
			UserID: res.UserID,
			Payload: map[string]interface{}{
				"reservationId":   res.ID,
				"timeslotId":      ts.ID,
				"startTime":       ts.StartTime,
				"ticketsRefunded": res.TicketsSpent,
			},
		})
	}

	s.logger.Info("DeleteTimeslot: timeslot id=%d deleted, %d reservations cancelled", timeslotID, len(cancelled))
	return &models.DeleteTimeslotResponse{
		CancelledReservations: len(cancelled),
		TicketsRefunded:       refunded,
	}, nil
}

// MarkPresence отмечает присутствие на таймслоте
func (s *Service) MarkPresence(ctx context.Context, reservationID int64, req *models.PresenceRequest) error {
	if err := s.repo.SetPresence(ctx, reservationID, req.IsPresent); err != nil {
		if errors.Is(err, workplaceRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("MarkPresence: reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: MarkPresence - repository error: %w", ErrInternal, err)
	}
	s.logger.Info("MarkPresence: reservation id=%d, present=%t", reservationID, req.IsPresent)
	return nil
}
