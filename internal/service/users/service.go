package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/blitz-booking/internal/domain"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	"github.com/m04kA/blitz-booking/internal/service/users/models"
)

// Service сервис пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create регистрирует пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.FirstName) > domain.MaxNameLength || len(req.LastName) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Create: email %s already taken", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: user id=%d registered", created.ID)
	return models.FromDomainUser(created), nil
}

// Get получает пользователя по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.UserResponse, error) {
	u, err := s.GetDomain(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(u), nil
}

// GetDomain получает доменную модель пользователя (для middleware авторизации)
func (s *Service) GetDomain(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Get: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}
	return u, nil
}

// AdjustTickets ручная корректировка баланса билетов сотрудником
func (s *Service) AdjustTickets(ctx context.Context, id int64, req *models.AdjustTicketsRequest) (*models.UserResponse, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must not be zero", ErrInvalidInput)
	}

	if _, err := s.userRepo.AddTickets(ctx, id, req.Delta); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, userRepo.ErrInsufficientTickets) {
			return nil, ErrInsufficientTickets
		}
		s.logger.Error("AdjustTickets: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdjustTickets - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("AdjustTickets: user id=%d, delta=%d", id, req.Delta)
	return s.Get(ctx, id)
}
