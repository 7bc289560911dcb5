package cron

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/blitz-booking/internal/domain"
	crontaskRepo "github.com/m04kA/blitz-booking/internal/infra/storage/crontask"
	"github.com/m04kA/blitz-booking/internal/service/cron/models"
)

const (
	defaultWorkers        = 4
	defaultExecutionLimit = 50
	maxErrorBodyBytes     = 512

	resultSuccess = "success"
	resultFailure = "failure"
)

// Service сервис cron-задач: хранение и запуск HTTP-вызовов по расписанию
type Service struct {
	repo    TaskRepository
	client  HTTPDoer
	metrics Metrics
	logger  Logger
	workers int

	internalBaseURL string
	internalToken   string
}

// NewService создает новый экземпляр сервиса
// workers ограничивает число одновременно выполняемых задач
func NewService(repo TaskRepository, client HTTPDoer, metrics Metrics, logger Logger, workers int) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Service{
		repo:    repo,
		client:  client,
		metrics: metrics,
		logger:  logger,
		workers: workers,
	}
}

// WithInternalToken задачи с URL под baseURL получают секрет в заголовке X-Cron-Token
// Внешним адресам секрет не отправляется
func (s *Service) WithInternalToken(baseURL, token string) *Service {
	s.internalBaseURL = strings.TrimRight(baseURL, "/")
	s.internalToken = token
	return s
}

// CreateTask создает задачу
func (s *Service) CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.TaskResponse, error) {
	task, err := buildTask(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error("CreateTask: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTask - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateTask: task id=%d created, schedule=%q", created.ID, created.ScheduleSpec())
	return models.FromDomainTask(created), nil
}

// ListTasks все задачи
func (s *Service) ListTasks(ctx context.Context) ([]*models.TaskResponse, error) {
	list, err := s.repo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListTasks: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTasks - repository error: %w", ErrInternal, err)
	}

	result := make([]*models.TaskResponse, len(list))
	for i, t := range list {
		result[i] = models.FromDomainTask(t)
	}
	return result, nil
}

// DeleteTask удаляет задачу вместе с историей запусков
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, crontaskRepo.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("DeleteTask: task id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteTask - repository error: %w", ErrInternal, err)
	}
	s.logger.Info("DeleteTask: task id=%d deleted", id)
	return nil
}

// ListExecutions последние запуски задачи
func (s *Service) ListExecutions(ctx context.Context, taskID int64, limit int) ([]models.ExecutionResponse, error) {
	if limit <= 0 || limit > defaultExecutionLimit {
		limit = defaultExecutionLimit
	}

	list, err := s.repo.ListExecutions(ctx, taskID, limit)
	if err != nil {
		s.logger.Error("ListExecutions: task id=%d: %v", taskID, err)
		return nil, fmt.Errorf("%w: ListExecutions - repository error: %w", ErrInternal, err)
	}

	result := make([]models.ExecutionResponse, len(list))
	for i, e := range list {
		result[i] = models.FromDomainExecution(e)
	}
	return result, nil
}

// ExecuteDueTasks запускает все активные задачи, время которых наступило к now
// Задача сначала захватывается в БД, поэтому параллельные вызовы не запускают её дважды
func (s *Service) ExecuteDueTasks(ctx context.Context, now time.Time) (*models.ExecuteResponse, error) {
	tasks, err := s.repo.List(ctx, true)
	if err != nil {
		s.logger.Error("ExecuteDueTasks: list tasks: %v", err)
		return nil, fmt.Errorf("%w: ExecuteDueTasks - list tasks: %w", ErrInternal, err)
	}

	var due []*domain.CronTask
	for _, t := range tasks {
		sched, err := parseSchedule(t)
		if err != nil {
			s.logger.Warn("ExecuteDueTasks: task id=%d skipped: %v", t.ID, err)
			continue
		}
		if !isDue(t, sched, now) {
			continue
		}

		claimed, err := s.repo.Claim(ctx, t.ID, t.LastExecution, now)
		if err != nil {
			s.logger.Error("ExecuteDueTasks: claim task id=%d: %v", t.ID, err)
			continue
		}
		if !claimed {
			continue
		}
		due = append(due, t)
	}

	results := make([]models.ExecutionResponse, len(due))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, t := range due {
		i, t := i, t
		g.Go(func() error {
			results[i] = s.execute(gCtx, t, now)
			return nil
		})
	}
	_ = g.Wait()

	resp := &models.ExecuteResponse{Executed: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	if resp.Executed > 0 {
		s.logger.Info("ExecuteDueTasks: executed %d tasks, %d failed", resp.Executed, resp.Failed)
	}
	return resp, nil
}

// execute выполняет один HTTP-вызов и сохраняет результат
func (s *Service) execute(ctx context.Context, t *domain.CronTask, now time.Time) models.ExecutionResponse {
	started := time.Now()
	status, callErr := s.call(ctx, t.URL)
	duration := time.Since(started)

	exec := &domain.CronExecution{
		TaskID:     t.ID,
		ExecutedAt: now,
		Success:    callErr == nil,
		Duration:   duration,
	}
	if status != 0 {
		exec.HTTPStatus = &status
	}
	if callErr != nil {
		msg := callErr.Error()
		exec.ErrorMessage = &msg
		s.logger.Warn("cron task id=%d failed: %v", t.ID, callErr)
	}

	result := resultSuccess
	if !exec.Success {
		result = resultFailure
	}
	s.metrics.ObserveCronExecution(result, duration)

	// запись результата не должна зависеть от отмены запроса-триггера
	storeCtx := context.WithoutCancel(ctx)
	saved, err := s.repo.CreateExecution(storeCtx, exec)
	if err != nil {
		s.logger.Error("cron task id=%d: store execution: %v", t.ID, err)
		saved = exec
	}

	if exec.Success && t.RunOnce {
		if err := s.repo.Deactivate(storeCtx, t.ID); err != nil {
			s.logger.Error("cron task id=%d: deactivate: %v", t.ID, err)
		}
	}
	return models.FromDomainExecution(saved)
}

// call выполняет GET; не-2xx ответ считается ошибкой
func (s *Service) call(ctx context.Context, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if s.isInternal(rawURL) {
		req.Header.Set(domain.CronTokenHeader, s.internalToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (s *Service) isInternal(rawURL string) bool {
	if s.internalToken == "" || s.internalBaseURL == "" {
		return false
	}
	return rawURL == s.internalBaseURL || strings.HasPrefix(rawURL, s.internalBaseURL+"/")
}

// buildTask проверяет запрос на создание задачи
func buildTask(req *models.CreateTaskRequest) (*domain.CronTask, error) {
	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url must be an absolute http(s) URL", ErrInvalidInput)
	}
	if len(req.Description) > domain.MaxDetailsLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDetailsLength)
	}

	task := &domain.CronTask{
		Description:       strings.TrimSpace(req.Description),
		URL:               u.String(),
		ExecutionInterval: req.ExecutionInterval,
		Active:            req.Active == nil || *req.Active,
	}

	if req.CronExpression != nil && strings.TrimSpace(*req.CronExpression) != "" {
		expr := strings.TrimSpace(*req.CronExpression)
		task.CronExpression = &expr
	} else if req.ExecutionInterval < domain.MinCronIntervalSeconds {
		return nil, fmt.Errorf("%w: executionInterval must be at least %d seconds", ErrInvalidInput, domain.MinCronIntervalSeconds)
	}

	if _, err := parseSchedule(task); err != nil {
		return nil, err
	}
	return task, nil
}
