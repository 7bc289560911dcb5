package cron

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// TaskRepository интерфейс репозитория cron-задач
type TaskRepository interface {
	Create(ctx context.Context, t *domain.CronTask) (*domain.CronTask, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.CronTask, error)
	Delete(ctx context.Context, id int64) error
	Claim(ctx context.Context, id int64, prev *time.Time, now time.Time) (bool, error)
	Deactivate(ctx context.Context, id int64) error
	CreateExecution(ctx context.Context, e *domain.CronExecution) (*domain.CronExecution, error)
	ListExecutions(ctx context.Context, taskID int64, limit int) ([]*domain.CronExecution, error)
}

// HTTPDoer выполняет HTTP-запросы задач (*http.Client)
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Metrics интерфейс метрик запусков
type Metrics interface {
	ObserveCronExecution(result string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
