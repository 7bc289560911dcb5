package cron

import (
	"context"
	"sync"
	"time"
)

// Scheduler внутренний тик-цикл, вызывающий ExecuteDueTasks
// Без него задачи запускаются внешним триггером (POST /cron/execute или `blitz cron tick`)
type Scheduler struct {
	service      *Service
	tickInterval time.Duration
	logger       Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewScheduler создает планировщик
func NewScheduler(service *Service, tickInterval time.Duration, logger Logger) *Scheduler {
	if tickInterval <= 0 {
		tickInterval = time.Minute
	}
	return &Scheduler{
		service:      service,
		tickInterval: tickInterval,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start запускает тик-цикл в отдельной горутине
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.tickLoop(ctx)
	s.logger.Info("cron scheduler started, tick interval %s", s.tickInterval)
}

// Stop останавливает цикл и ждёт завершения текущего тика
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) tickLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := s.service.ExecuteDueTasks(ctx, now); err != nil {
				s.logger.Error("cron tick failed: %v", err)
			}
		}
	}
}
