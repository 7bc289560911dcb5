package cron

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/logger"
)

const schedulerWait = 2 * time.Second

// newTickingScheduler планировщик с коротким тиком; каждый тик сигналит в канал
func newTickingScheduler(t *testing.T) (*Scheduler, <-chan struct{}) {
	t.Helper()
	ticks := make(chan struct{}, 16)
	repo := new(mockRepo)
	repo.On("List", mock.Anything, true).
		Return([]*domain.CronTask{}, nil).
		Run(func(mock.Arguments) {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})

	svc := NewService(repo, http.DefaultClient, &recordingMetrics{}, logger.NewNop(), 1)
	return NewScheduler(svc, 10*time.Millisecond, logger.NewNop()), ticks
}

func waitDone(t *testing.T, fn func(), msg string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(schedulerWait):
		t.Fatal(msg)
	}
}

func TestScheduler_StartTicksAndStop(t *testing.T) {
	s, ticks := newTickingScheduler(t)

	s.Start(context.Background())

	select {
	case <-ticks:
	case <-time.After(schedulerWait):
		t.Fatal("scheduler did not tick")
	}

	waitDone(t, s.Stop, "Stop did not return")
}

func TestScheduler_ExitsOnContextCancel(t *testing.T) {
	s, ticks := newTickingScheduler(t)
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	select {
	case <-ticks:
	case <-time.After(schedulerWait):
		t.Fatal("scheduler did not tick")
	}

	cancel()
	waitDone(t, s.wg.Wait, "tick loop did not exit after context cancel")

	// Stop после отмены контекста тоже не блокируется
	waitDone(t, s.Stop, "Stop did not return")
}

func TestNewScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(nil, 0, logger.NewNop())
	require.Equal(t, time.Minute, s.tickInterval)
}
