package models

import (
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Request модели

// CreateTaskRequest запрос на создание задачи
// Задаётся либо executionInterval в секундах, либо cronExpression
type CreateTaskRequest struct {
	Description       string  `json:"description"`
	URL               string  `json:"url"`
	ExecutionInterval int     `json:"executionInterval"`
	CronExpression    *string `json:"cronExpression,omitempty"`
	Active            *bool   `json:"active,omitempty"`
}

// Response модели

// TaskResponse задача
type TaskResponse struct {
	ID                int64      `json:"id"`
	Description       string     `json:"description"`
	URL               string     `json:"url"`
	ExecutionInterval int        `json:"executionInterval"`
	CronExpression    *string    `json:"cronExpression,omitempty"`
	Active            bool       `json:"active"`
	RunOnce           bool       `json:"runOnce"`
	NotBefore         *time.Time `json:"notBefore,omitempty"`
	LastExecution     *time.Time `json:"lastExecution,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ExecutionResponse результат запуска
type ExecutionResponse struct {
	ID         int64     `json:"id,omitempty"`
	TaskID     int64     `json:"taskId"`
	ExecutedAt time.Time `json:"executedAt"`
	Success    bool      `json:"success"`
	HTTPStatus *int      `json:"httpStatus,omitempty"`
	Error      *string   `json:"error,omitempty"`
	DurationMs int64     `json:"durationMs"`
}

// ExecuteResponse итог прохода по задачам
type ExecuteResponse struct {
	Executed  int                 `json:"executed"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []ExecutionResponse `json:"results"`
}

// Методы конвертации

// FromDomainTask конвертирует domain модель в DTO
func FromDomainTask(t *domain.CronTask) *TaskResponse {
	return &TaskResponse{
		ID:                t.ID,
		Description:       t.Description,
		URL:               t.URL,
		ExecutionInterval: t.ExecutionInterval,
		CronExpression:    t.CronExpression,
		Active:            t.Active,
		RunOnce:           t.RunOnce,
		NotBefore:         t.NotBefore,
		LastExecution:     t.LastExecution,
		CreatedAt:         t.CreatedAt,
	}
}

// FromDomainExecution конвертирует результат запуска в DTO
func FromDomainExecution(e *domain.CronExecution) ExecutionResponse {
	return ExecutionResponse{
		ID:         e.ID,
		TaskID:     e.TaskID,
		ExecutedAt: e.ExecutedAt,
		Success:    e.Success,
		HTTPStatus: e.HTTPStatus,
		Error:      e.ErrorMessage,
		DurationMs: e.Duration.Milliseconds(),
	}
}
