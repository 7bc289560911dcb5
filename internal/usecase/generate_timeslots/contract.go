package generate_timeslots

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// WorkplaceRepository интерфейс репозитория пространств
type WorkplaceRepository interface {
	GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error)
	GetPeriod(ctx context.Context, id int64) (*domain.Period, error)
	ListOverlappingTimeslots(ctx context.Context, workplaceID int64, start, end time.Time) ([]*domain.TimeSlot, error)
	CreateTimeslot(ctx context.Context, ts *domain.TimeSlot) (*domain.TimeSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
