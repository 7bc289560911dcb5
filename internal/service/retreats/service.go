package retreats

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
	"github.com/m04kA/blitz-booking/internal/service/retreats/models"
)

const (
	// ReminderKindBefore напоминание за неделю до начала
	ReminderKindBefore = "reminder"
	// ReminderKindAfter письмо на следующий день после окончания
	ReminderKindAfter = "post_event"

	reminderDaysBefore = 7
	postEventDaysAfter = 1
)

// Service сервис ретритов и очереди ожидания
type Service struct {
	repo         RetreatRepository
	cronRepo     CronTaskRepository
	cache        Cache
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	baseURL      string
}

// NewService создает новый экземпляр сервиса
// baseURL адрес API, по которому cron-задачи вызывают рассылку напоминаний
func NewService(
	repo RetreatRepository,
	cronRepo CronTaskRepository,
	cache Cache,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
	baseURL string,
) *Service {
	return &Service{
		repo:         repo,
		cronRepo:     cronRepo,
		cache:        cache,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// CreateRetreat создает ретрит с датами
// Начало и конец ретрита вычисляются по датам
func (s *Service) CreateRetreat(ctx context.Context, req *models.CreateRetreatRequest) (*models.RetreatResponse, error) {
	rt, err := buildRetreat(req)
	if err != nil {
		return nil, err
	}

	var created *domain.Retreat
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.repo.CreateRetreat(txCtx, rt)
		if err != nil {
			return fmt.Errorf("%w: CreateRetreat - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CreateRetreat: %v", err)
		return nil, err
	}

	s.logger.Info("CreateRetreat: retreat id=%d created with %d dates", created.ID, len(created.Dates))
	return models.FromDomainRetreat(created), nil
}

// GetRetreat получает ретрит, сначала из кэша
func (s *Service) GetRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("GetRetreat: cache get retreat id=%d: %v", id, err)
	}
	if cached != nil {
		return models.FromDomainRetreat(cached), nil
	}

	rt, err := s.repo.GetRetreat(ctx, id)
	if err != nil {
		if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
			return nil, ErrRetreatNotFound
		}
		s.logger.Error("GetRetreat: retreat id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRetreat - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, rt); err != nil {
		s.logger.Warn("GetRetreat: cache set retreat id=%d: %v", id, err)
	}
	return models.FromDomainRetreat(rt), nil
}

// ListRetreats список ретритов, заканчивающихся после from
func (s *Service) ListRetreats(ctx context.Context, req *models.ListRetreatsRequest) ([]*models.RetreatResponse, error) {
	from := req.From
	if from.IsZero() {
		from = s.timeProvider.Now()
	}

	list, err := s.repo.ListRetreats(ctx, req.ActiveOnly, from)
	if err != nil {
		s.logger.Error("ListRetreats: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRetreats - repository error: %w", ErrInternal, err)
	}

	result := make([]*models.RetreatResponse, len(list))
	for i, rt := range list {
		result[i] = models.FromDomainRetreat(rt)
	}
	return result, nil
}

// ActivateRetreat публикует ретрит и планирует напоминания участникам
// Напоминания, время которых уже прошло, не создаются
func (s *Service) ActivateRetreat(ctx context.Context, id int64) (*models.RetreatResponse, error) {
	now := s.timeProvider.Now()

	var rt *domain.Retreat
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		rt, err = s.repo.GetRetreat(txCtx, id)
		if err != nil {
			if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
				return ErrRetreatNotFound
			}
			return fmt.Errorf("%w: ActivateRetreat - get retreat: %w", ErrInternal, err)
		}
		if rt.IsActive {
			return nil
		}

		if err := s.repo.SetActive(txCtx, id, true); err != nil {
			return fmt.Errorf("%w: ActivateRetreat - set active: %w", ErrInternal, err)
		}
		rt.IsActive = true

		reminders := []struct {
			kind string
			at   time.Time
		}{
			{ReminderKindBefore, rt.StartTime.AddDate(0, 0, -reminderDaysBefore)},
			{ReminderKindAfter, rt.EndTime.AddDate(0, 0, postEventDaysAfter)},
		}
		for _, rem := range reminders {
			if !rem.at.After(now) {
				continue
			}
			at := rem.at
			task := &domain.CronTask{
				Description:       fmt.Sprintf("retreat.%s retreat_id=%d", rem.kind, rt.ID),
				URL:               s.reminderURL(rt.ID, rem.kind),
				ExecutionInterval: domain.MinCronIntervalSeconds,
				Active:            true,
				RunOnce:           true,
				NotBefore:         &at,
			}
			if _, err := s.cronRepo.Create(txCtx, task); err != nil {
				return fmt.Errorf("%w: ActivateRetreat - create %s task: %w", ErrInternal, rem.kind, err)
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRetreatNotFound) {
			s.logger.Error("ActivateRetreat: retreat id=%d: %v", id, err)
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("ActivateRetreat: retreat id=%d activated", id)
	return models.FromDomainRetreat(rt), nil
}

// SendReminders рассылает напоминание всем участникам с активным бронированием
// Вызывается cron-задачами, созданными в ActivateRetreat
func (s *Service) SendReminders(ctx context.Context, id int64, kind string) (*models.RemindResponse, error) {
	var eventType domain.EventType
	switch kind {
	case ReminderKindBefore:
		eventType = domain.EventRetreatReminder
	case ReminderKindAfter:
		eventType = domain.EventRetreatPostEvent
	default:
		return nil, ErrInvalidReminderKind
	}

	rt, err := s.repo.GetRetreat(ctx, id)
	if err != nil {
		if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
			return nil, ErrRetreatNotFound
		}
		return nil, fmt.Errorf("%w: SendReminders - get retreat: %w", ErrInternal, err)
	}

	reservations, err := s.repo.ListActiveReservationsByRetreat(ctx, id)
	if err != nil {
		s.logger.Error("SendReminders: retreat id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SendReminders - list reservations: %w", ErrInternal, err)
	}

	for _, res := range reservations {
		s.notifier.Publish(ctx, domain.Event{
			Type:   eventType,
			UserID: res.UserID,
			Payload: map[string]interface{}{
				"retreatId":     rt.ID,
				"retreatName":   rt.Name,
				"place":         rt.Place,
				"startTime":     rt.StartTime,
				"endTime":       rt.EndTime,
				"reservationId": res.ID,
			},
		})
	}

	s.logger.Info("SendReminders: retreat id=%d, kind=%s, notified %d users", id, kind, len(reservations))
	return &models.RemindResponse{Notified: len(reservations)}, nil
}

// JoinWaitQueue ставит пользователя в очередь на заполненный ретрит
func (s *Service) JoinWaitQueue(ctx context.Context, userID, retreatID int64) (*models.WaitQueueResponse, error) {
	var entry *domain.WaitQueueEntry
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rt, err := s.repo.GetRetreat(txCtx, retreatID)
		if err != nil {
			if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
				return ErrRetreatNotFound
			}
			return fmt.Errorf("%w: JoinWaitQueue - get retreat: %w", ErrInternal, err)
		}
		if !rt.IsActive {
			return ErrRetreatNotFound
		}
		if !rt.IsFull() {
			return ErrRetreatNotFull
		}

		_, err = s.repo.FindActiveReservation(txCtx, userID, retreatID)
		switch {
		case err == nil:
			return ErrAlreadyReserved
		case !errors.Is(err, retreatRepo.ErrReservationNotFound):
			return fmt.Errorf("%w: JoinWaitQueue - find reservation: %w", ErrInternal, err)
		}

		entry, err = s.repo.AddToWaitQueue(txCtx, &domain.WaitQueueEntry{UserID: userID, RetreatID: retreatID})
		if err != nil {
			if errors.Is(err, retreatRepo.ErrAlreadyQueued) {
				return ErrAlreadyQueued
			}
			return fmt.Errorf("%w: JoinWaitQueue - add: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("JoinWaitQueue: user id=%d, retreat id=%d: %v", userID, retreatID, err)
		}
		return nil, err
	}

	s.logger.Info("JoinWaitQueue: user id=%d queued for retreat id=%d", userID, retreatID)
	return &models.WaitQueueResponse{
		RetreatID: entry.RetreatID,
		UserID:    entry.UserID,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// LeaveWaitQueue убирает пользователя из очереди
func (s *Service) LeaveWaitQueue(ctx context.Context, userID, retreatID int64) error {
	if err := s.repo.RemoveFromWaitQueue(ctx, userID, retreatID); err != nil {
		if errors.Is(err, retreatRepo.ErrNotQueued) {
			return ErrNotQueued
		}
		s.logger.Error("LeaveWaitQueue: user id=%d, retreat id=%d: %v", userID, retreatID, err)
		return fmt.Errorf("%w: LeaveWaitQueue - repository error: %w", ErrInternal, err)
	}
	s.logger.Info("LeaveWaitQueue: user id=%d left queue of retreat id=%d", userID, retreatID)
	return nil
}

// NotifyWaitQueue предлагает свободные места первым в очереди, ещё не получившим предложение
// Одно место на одного пользователя; пока предложение действует, место удерживается
func (s *Service) NotifyWaitQueue(ctx context.Context, retreatID int64) (*models.NotifyWaitQueueResponse, error) {
	var (
		rt       *domain.Retreat
		notified []int64
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		rt, err = s.repo.GetRetreat(txCtx, retreatID)
		if err != nil {
			if errors.Is(err, retreatRepo.ErrRetreatNotFound) {
				return ErrRetreatNotFound
			}
			return fmt.Errorf("%w: NotifyWaitQueue - get retreat: %w", ErrInternal, err)
		}

		notified = []int64{}
		free := rt.SeatsRemaining()
		if free == 0 {
			return nil
		}

		queue, err := s.repo.ListWaitQueue(txCtx, retreatID)
		if err != nil {
			return fmt.Errorf("%w: NotifyWaitQueue - list queue: %w", ErrInternal, err)
		}
		already, err := s.repo.ListNotifiedUserIDs(txCtx, retreatID)
		if err != nil {
			return fmt.Errorf("%w: NotifyWaitQueue - list notified: %w", ErrInternal, err)
		}

		for _, entry := range queue {
			if len(notified) == free {
				break
			}
			if already[entry.UserID] {
				continue
			}
			if _, err := s.repo.CreateNotification(txCtx, &domain.WaitQueueNotification{
				UserID:    entry.UserID,
				RetreatID: retreatID,
			}); err != nil {
				return fmt.Errorf("%w: NotifyWaitQueue - create notification: %w", ErrInternal, err)
			}
			notified = append(notified, entry.UserID)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRetreatNotFound) {
			s.logger.Error("NotifyWaitQueue: retreat id=%d: %v", retreatID, err)
		}
		return nil, err
	}

	if len(notified) > 0 {
		s.invalidate(ctx, retreatID)
	}
	for _, userID := range notified {
		s.notifier.Publish(ctx, domain.Event{
			Type:   domain.EventWaitQueueNotified,
			UserID: userID,
			Payload: map[string]interface{}{
				"retreatId":   rt.ID,
				"retreatName": rt.Name,
				"holdHours":   int(domain.WaitQueueHold.Hours()),
			},
		})
	}

	s.logger.Info("NotifyWaitQueue: retreat id=%d, notified %d users", retreatID, len(notified))
	return &models.NotifyWaitQueueResponse{NotifiedUserIDs: notified}, nil
}

// ListUserReservations бронирования ретритов пользователя, новые первыми
func (s *Service) ListUserReservations(ctx context.Context, userID int64) ([]*models.RetreatReservationResponse, error) {
	list, err := s.repo.ListUserReservations(ctx, userID)
	if err != nil {
		s.logger.Error("ListUserReservations: user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserReservations - repository error: %w", ErrInternal, err)
	}

	result := make([]*models.RetreatReservationResponse, len(list))
	for i, r := range list {
		result[i] = models.FromDomainReservation(r)
	}
	return result, nil
}

// Invalidate сбрасывает кэш ретрита после изменения занятости
func (s *Service) Invalidate(ctx context.Context, retreatID int64) {
	s.invalidate(ctx, retreatID)
}

func (s *Service) invalidate(ctx context.Context, retreatID int64) {
	if err := s.cache.Invalidate(ctx, retreatID); err != nil {
		s.logger.Warn("cache invalidate retreat id=%d: %v", retreatID, err)
	}
}

func (s *Service) reminderURL(retreatID int64, kind string) string {
	q := url.Values{}
	q.Set("kind", kind)
	return fmt.Sprintf("%s/internal/retreats/%d/remind?%s", s.baseURL, retreatID, q.Encode())
}
