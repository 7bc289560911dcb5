package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/blitz-booking/internal/config"
	cronTaskRepo "github.com/m04kA/blitz-booking/internal/infra/storage/crontask"
	cronService "github.com/m04kA/blitz-booking/internal/service/cron"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/logger"
	"github.com/m04kA/blitz-booking/pkg/metrics"
)

// app общие зависимости всех подкоманд: конфиг, логгер, метрики и пул соединений
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	sqlDB   *sql.DB
	db      *dbmetrics.DB

	stopMetricsCh chan struct{}
}

func newApp(ctx context.Context, path string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", path)

	// Метрики (если включены); nil-коллектор безопасен для всех потребителей
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		log.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopCh := make(chan struct{})
	return &app{
		cfg:           cfg,
		log:           log,
		metrics:       metricsCollector,
		sqlDB:         sqlDB,
		db:            dbmetrics.WrapWithDefault(sqlDB, metricsCollector, stopCh),
		stopMetricsCh: stopCh,
	}, nil
}

// newCronService сервис планировщика; нужен и в serve, и в `cron tick`
func (a *app) newCronService() *cronService.Service {
	client := &http.Client{Timeout: time.Duration(a.cfg.Cron.RequestTimeout) * time.Second}
	return cronService.NewService(
		cronTaskRepo.NewRepository(a.db),
		client,
		a.metrics,
		a.log,
		a.cfg.Cron.Workers,
	).WithInternalToken(a.cfg.Cron.BaseURL, a.cfg.Cron.Token)
}

func (a *app) close() {
	close(a.stopMetricsCh)
	if err := a.sqlDB.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
	a.log.Close()
}
