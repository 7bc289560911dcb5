package domain

import (
	"fmt"
	"time"
)

// CronTask периодический HTTP-вызов
// Расписание задаётся либо интервалом в секундах, либо cron-выражением
type CronTask struct {
	ID                int64
	Description       string
	URL               string
	ExecutionInterval int
	CronExpression    *string
	Active            bool
	// RunOnce задача деактивируется после первого успешного выполнения
	RunOnce       bool
	NotBefore     *time.Time
	LastExecution *time.Time
	CreatedAt     time.Time
}

// ScheduleSpec выражение расписания для robfig/cron
func (t *CronTask) ScheduleSpec() string {
	if t.CronExpression != nil && *t.CronExpression != "" {
		return *t.CronExpression
	}
	return fmt.Sprintf("@every %ds", t.ExecutionInterval)
}

// CronExecution результат одного запуска задачи
type CronExecution struct {
	ID           int64
	TaskID       int64
	ExecutedAt   time.Time
	Success      bool
	HTTPStatus   *int
	ErrorMessage *string
	Duration     time.Duration
}
