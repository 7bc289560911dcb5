package users

import (
	"context"

	"github.com/m04kA/blitz-booking/internal/service/users/models"
)

// UserService интерфейс сервиса пользователей
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	Get(ctx context.Context, id int64) (*models.UserResponse, error)
	AdjustTickets(ctx context.Context, id int64, req *models.AdjustTicketsRequest) (*models.UserResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
