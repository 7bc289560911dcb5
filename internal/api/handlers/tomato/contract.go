package tomato

import (
	"context"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/service/tomato/models"
)

// TomatoService интерфейс сервиса томатов, чата и посещаемости
type TomatoService interface {
	CreditTomato(ctx context.Context, req *models.CreditTomatoRequest) (*models.TomatoResponse, error)
	GetUserTomatoes(ctx context.Context, userID int64) (*models.UserTomatoesResponse, error)
	PostMessage(ctx context.Context, user *domain.User, req *models.PostMessageRequest) (*models.MessageResponse, error)
	ListMessages(ctx context.Context, limit int) ([]*models.MessageResponse, error)
	ReportMessage(ctx context.Context, userID, messageID int64, req *models.ReportMessageRequest) (*models.ReportResponse, error)
	RecordAttendance(ctx context.Context, userID int64, req *models.RecordAttendanceRequest) (*models.AttendanceResponse, error)
	CountAttendance(ctx context.Context, key string) (*models.AttendanceCountResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
