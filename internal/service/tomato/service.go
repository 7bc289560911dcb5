package tomato

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/blitz-booking/internal/domain"
	tomatoRepo "github.com/m04kA/blitz-booking/internal/infra/storage/tomato"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	"github.com/m04kA/blitz-booking/internal/service/tomato/models"
)

// maxAttendanceKeyLength ограничение ключа сессии
const maxAttendanceKeyLength = 255

// Service сервис томатов, чата и посещаемости
type Service struct {
	repo      TomatoRepository
	userRepo  UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo TomatoRepository, userRepo UserRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreditTomato начисляет томаты пользователю
// Вызывается сотрудником вручную и другими модулями внутри их транзакций
func (s *Service) CreditTomato(ctx context.Context, req *models.CreditTomatoRequest) (*models.TomatoResponse, error) {
	source := domain.TomatoSource(req.Source)
	if source == "" {
		source = domain.TomatoSourceManual
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}
	if req.Number == 0 {
		return nil, fmt.Errorf("%w: number must not be zero", ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: CreditTomato - get user: %w", ErrInternal, err)
	}

	created, err := s.repo.CreditTomato(ctx, &domain.Tomato{
		UserID: req.UserID,
		Number: req.Number,
		Source: source,
	})
	if err != nil {
		s.logger.Error("CreditTomato: user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: CreditTomato - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreditTomato: %d tomatoes (%s) credited to user id=%d", req.Number, source, req.UserID)
	resp := models.FromDomainTomato(created)
	return &resp, nil
}

// GetUserTomatoes итог и история томатов пользователя
func (s *Service) GetUserTomatoes(ctx context.Context, userID int64) (*models.UserTomatoesResponse, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserTomatoes: user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserTomatoes - repository error: %w", ErrInternal, err)
	}

	resp := &models.UserTomatoesResponse{
		UserID:  userID,
		History: make([]models.TomatoResponse, len(list)),
	}
	for i, t := range list {
		resp.Total += t.Number
		resp.History[i] = models.FromDomainTomato(t)
	}
	return resp, nil
}

// PostMessage публикует сообщение от имени пользователя
func (s *Service) PostMessage(ctx context.Context, user *domain.User, req *models.PostMessageRequest) (*models.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || len(content) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: content is required and must be at most %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	created, err := s.repo.CreateMessage(ctx, &domain.Message{
		UserID:  user.ID,
		Author:  user.FullName(),
		Content: content,
	})
	if err != nil {
		s.logger.Error("PostMessage: user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: PostMessage - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainMessage(created), nil
}

// ListMessages последние видимые сообщения
// Сообщения, на которые пожаловались достаточно раз, не показываются
func (s *Service) ListMessages(ctx context.Context, limit int) ([]*models.MessageResponse, error) {
	switch {
	case limit <= 0:
		limit = domain.DefaultMessagesLimit
	case limit > domain.MaxMessagesLimit:
		limit = domain.MaxMessagesLimit
	}

	list, err := s.repo.ListVisibleMessages(ctx, limit)
	if err != nil {
		s.logger.Error("ListMessages: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListMessages - repository error: %w", ErrInternal, err)
	}

	result := make([]*models.MessageResponse, len(list))
	for i, m := range list {
		result[i] = models.FromDomainMessage(m)
	}
	return result, nil
}

// ReportMessage жалоба на сообщение; одна на пару (сообщение, пользователь)
func (s *Service) ReportMessage(ctx context.Context, userID, messageID int64, req *models.ReportMessageRequest) (*models.ReportResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxReportReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReportReasonLength)
	}

	var (
		report *domain.Report
		hidden bool
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetMessage(txCtx, messageID); err != nil {
			if errors.Is(err, tomatoRepo.ErrMessageNotFound) {
				return ErrMessageNotFound
			}
			return fmt.Errorf("%w: ReportMessage - get message: %w", ErrInternal, err)
		}

		var err error
		report, err = s.repo.CreateReport(txCtx, &domain.Report{
			MessageID: messageID,
			UserID:    userID,
			Reason:    reason,
		})
		if err != nil {
			if errors.Is(err, tomatoRepo.ErrAlreadyReported) {
				return ErrAlreadyReported
			}
			return fmt.Errorf("%w: ReportMessage - create report: %w", ErrInternal, err)
		}

		msg, err := s.repo.GetMessage(txCtx, messageID)
		if err != nil {
			return fmt.Errorf("%w: ReportMessage - reload message: %w", ErrInternal, err)
		}
		hidden = msg.IsHidden()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("ReportMessage: message id=%d: %v", messageID, err)
		}
		return nil, err
	}

	if hidden {
		s.logger.Info("ReportMessage: message id=%d is hidden after report by user id=%d", messageID, userID)
	}
	return &models.ReportResponse{ID: report.ID, MessageID: messageID, CreatedAt: report.CreatedAt}, nil
}

// RecordAttendance отмечает присутствие пользователя на сессии
// Повторная отметка ничего не меняет, томат начисляется только за первую
func (s *Service) RecordAttendance(ctx context.Context, userID int64, req *models.RecordAttendanceRequest) (*models.AttendanceResponse, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" || len(key) > maxAttendanceKeyLength {
		return nil, fmt.Errorf("%w: key is required and must be at most %d characters", ErrInvalidInput, maxAttendanceKeyLength)
	}

	var (
		created bool
		count   int
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateAttendance(txCtx, &domain.Attendance{UserID: userID, Key: key})
		if err != nil {
			return fmt.Errorf("%w: RecordAttendance - create: %w", ErrInternal, err)
		}

		if created {
			if _, err := s.repo.CreditTomato(txCtx, &domain.Tomato{
				UserID: userID,
				Number: 1,
				Source: domain.TomatoSourceAttendance,
			}); err != nil {
				return fmt.Errorf("%w: RecordAttendance - credit tomato: %w", ErrInternal, err)
			}
		}

		count, err = s.repo.CountAttendance(txCtx, key)
		if err != nil {
			return fmt.Errorf("%w: RecordAttendance - count: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("RecordAttendance: user id=%d, key=%s: %v", userID, key, err)
		return nil, err
	}

	return &models.AttendanceResponse{Key: key, Created: created, Count: count}, nil
}

// CountAttendance число отметок по ключу сессии, опрашивается клиентами
func (s *Service) CountAttendance(ctx context.Context, key string) (*models.AttendanceCountResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidInput)
	}

	count, err := s.repo.CountAttendance(ctx, key)
	if err != nil {
		s.logger.Error("CountAttendance: key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: CountAttendance - repository error: %w", ErrInternal, err)
	}
	return &models.AttendanceCountResponse{Key: key, Count: count}, nil
}
