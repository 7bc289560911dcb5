package tomato

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// TomatoRepository интерфейс репозитория томатов, чата и посещаемости
type TomatoRepository interface {
	CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Tomato, error)

	CreateMessage(ctx context.Context, m *domain.Message) (*domain.Message, error)
	GetMessage(ctx context.Context, id int64) (*domain.Message, error)
	ListVisibleMessages(ctx context.Context, limit int) ([]*domain.Message, error)
	CreateReport(ctx context.Context, rep *domain.Report) (*domain.Report, error)

	CreateAttendance(ctx context.Context, a *domain.Attendance) (bool, error)
	CountAttendance(ctx context.Context, key string) (int, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
