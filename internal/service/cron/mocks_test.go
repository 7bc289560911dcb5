package cron

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/blitz-booking/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, t *domain.CronTask) (*domain.CronTask, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CronTask), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, activeOnly bool) ([]*domain.CronTask, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CronTask), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) Claim(ctx context.Context, id int64, prev *time.Time, now time.Time) (bool, error) {
	args := m.Called(ctx, id, prev, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// CreateExecution без заданного результата возвращает переданную запись
func (m *mockRepo) CreateExecution(ctx context.Context, e *domain.CronExecution) (*domain.CronExecution, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return e, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CronExecution), args.Error(1)
}

func (m *mockRepo) ListExecutions(ctx context.Context, taskID int64, limit int) ([]*domain.CronExecution, error) {
	args := m.Called(ctx, taskID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CronExecution), args.Error(1)
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (r *recordingMetrics) ObserveCronExecution(result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}
