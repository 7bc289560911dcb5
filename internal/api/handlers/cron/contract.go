package cron

import (
	"context"
	"time"

	"github.com/m04kA/blitz-booking/internal/service/cron/models"
)

// CronService интерфейс сервиса cron-задач
type CronService interface {
	CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.TaskResponse, error)
	ListTasks(ctx context.Context) ([]*models.TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) error
	ListExecutions(ctx context.Context, taskID int64, limit int) ([]models.ExecutionResponse, error)
	ExecuteDueTasks(ctx context.Context, now time.Time) (*models.ExecuteResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
