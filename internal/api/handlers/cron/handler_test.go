package cron

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cronService "github.com/m04kA/blitz-booking/internal/service/cron"
	"github.com/m04kA/blitz-booking/internal/service/cron/models"
	"github.com/m04kA/blitz-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.TaskResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskResponse), args.Error(1)
}

func (m *mockService) ListTasks(ctx context.Context) ([]*models.TaskResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TaskResponse), args.Error(1)
}

func (m *mockService) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) ListExecutions(ctx context.Context, taskID int64, limit int) ([]models.ExecutionResponse, error) {
	args := m.Called(ctx, taskID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExecutionResponse), args.Error(1)
}

func (m *mockService) ExecuteDueTasks(ctx context.Context, now time.Time) (*models.ExecuteResponse, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExecuteResponse), args.Error(1)
}

func newRouter(svc *mockService, now time.Time) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	h.now = func() time.Time { return now }

	r := mux.NewRouter()
	r.HandleFunc("/cron/tasks", h.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/cron/tasks/{id}", h.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/cron/tasks/{id}/executions", h.ListExecutions).Methods(http.MethodGet)
	r.HandleFunc("/cron/execute", h.Execute).Methods(http.MethodPost)
	return r
}

func TestCreateTask_InvalidSchedule(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateTask", mock.Anything, mock.Anything).Return(nil, cronService.ErrInvalidSchedule)

	w := httptest.NewRecorder()
	newRouter(svc, time.Now()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cron/tasks",
		strings.NewReader(`{"description":"x","url":"http://localhost/x","executionInterval":10}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTask(t *testing.T) {
	svc := new(mockService)
	svc.On("DeleteTask", mock.Anything, int64(3)).Return(nil)
	svc.On("DeleteTask", mock.Anything, int64(4)).Return(cronService.ErrTaskNotFound)
	router := newRouter(svc, time.Now())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cron/tasks/3", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cron/tasks/4", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecute_UsesCurrentTime(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := new(mockService)
	svc.On("ExecuteDueTasks", mock.Anything, now).Return(&models.ExecuteResponse{Executed: 2, Succeeded: 2}, nil)

	w := httptest.NewRecorder()
	newRouter(svc, now).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cron/execute", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"executed":2`)
}

func TestListExecutions(t *testing.T) {
	svc := new(mockService)
	svc.On("ListExecutions", mock.Anything, int64(3), 10).Return([]models.ExecutionResponse{{TaskID: 3, Success: true}}, nil)

	w := httptest.NewRecorder()
	newRouter(svc, time.Now()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cron/tasks/3/executions?limit=10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
