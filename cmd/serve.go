package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	cronHandler "github.com/m04kA/blitz-booking/internal/api/handlers/cron"
	retreatsHandler "github.com/m04kA/blitz-booking/internal/api/handlers/retreats"
	storeHandler "github.com/m04kA/blitz-booking/internal/api/handlers/store"
	tomatoHandler "github.com/m04kA/blitz-booking/internal/api/handlers/tomato"
	usersHandler "github.com/m04kA/blitz-booking/internal/api/handlers/users"
	workplacesHandler "github.com/m04kA/blitz-booking/internal/api/handlers/workplaces"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	"github.com/m04kA/blitz-booking/internal/domain"
	retreatCache "github.com/m04kA/blitz-booking/internal/infra/cache/retreat"
	cronTaskRepo "github.com/m04kA/blitz-booking/internal/infra/storage/crontask"
	retreatRepo "github.com/m04kA/blitz-booking/internal/infra/storage/retreat"
	storeRepo "github.com/m04kA/blitz-booking/internal/infra/storage/store"
	tomatoRepo "github.com/m04kA/blitz-booking/internal/infra/storage/tomato"
	userRepo "github.com/m04kA/blitz-booking/internal/infra/storage/user"
	workplaceRepo "github.com/m04kA/blitz-booking/internal/infra/storage/workplace"
	"github.com/m04kA/blitz-booking/internal/integrations/notifier"
	"github.com/m04kA/blitz-booking/internal/integrations/paysafe"
	cronService "github.com/m04kA/blitz-booking/internal/service/cron"
	retreatsService "github.com/m04kA/blitz-booking/internal/service/retreats"
	storeService "github.com/m04kA/blitz-booking/internal/service/store"
	tomatoService "github.com/m04kA/blitz-booking/internal/service/tomato"
	usersService "github.com/m04kA/blitz-booking/internal/service/users"
	workplaceService "github.com/m04kA/blitz-booking/internal/service/workplace"
	cancelRetreatReservationUC "github.com/m04kA/blitz-booking/internal/usecase/cancel_retreat_reservation"
	cancelTimeslotReservationUC "github.com/m04kA/blitz-booking/internal/usecase/cancel_timeslot_reservation"
	createOrderUC "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	generateTimeslotsUC "github.com/m04kA/blitz-booking/internal/usecase/generate_timeslots"
	reserveRetreatUC "github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
	reserveTimeslotUC "github.com/m04kA/blitz-booking/internal/usecase/reserve_timeslot"
	validateCouponUC "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
	"github.com/m04kA/blitz-booking/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return serve(a)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// retreatCacheBackend кэш ретритов: Redis или заглушка
type retreatCacheBackend interface {
	retreatsService.Cache
	Close() error
}

// eventPublisher публикатор событий: Kafka или лог
type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
	Close() error
}

func serve(a *app) error {
	cfg, log := a.cfg, a.log
	log.Info("Starting blitz-booking...")

	// Кэш ретритов
	var cache retreatCacheBackend = retreatCache.NopCache{}
	if cfg.Redis.Enabled {
		redisCache, err := retreatCache.NewRedisCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTL)*time.Second,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = redisCache
		log.Info("Retreat cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}
	defer cache.Close()

	// Уведомления
	var events eventPublisher = notifier.NewLogNotifier(log)
	if cfg.Kafka.Enabled {
		events = notifier.NewKafkaNotifier(notifier.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
		log.Info("Kafka notifier enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer events.Close()

	// Платёжный шлюз
	payments := paysafe.NewClient(
		cfg.Paysafe.URL,
		cfg.Paysafe.AccountID,
		cfg.Paysafe.APIUser,
		cfg.Paysafe.APIKey,
		time.Duration(cfg.Paysafe.Timeout)*time.Second,
		log,
	)
	log.Info("Paysafe client initialized (url=%s, timeout=%ds)", cfg.Paysafe.URL, cfg.Paysafe.Timeout)

	// Репозитории
	userRepository := userRepo.NewRepository(a.db)
	workplaceRepository := workplaceRepo.NewRepository(a.db)
	retreatRepository := retreatRepo.NewRepository(a.db)
	storeRepository := storeRepo.NewRepository(a.db)
	tomatoRepository := tomatoRepo.NewRepository(a.db)
	cronTaskRepository := cronTaskRepo.NewRepository(a.db)

	txMgr := txmanager.NewTransactionManager(a.db)

	// Сервисы
	usersSvc := usersService.NewService(userRepository, log)
	workplaceSvc := workplaceService.NewService(workplaceRepository, userRepository, events, a.metrics, txMgr, log)
	retreatsSvc := retreatsService.NewService(retreatRepository, cronTaskRepository, cache, events, txMgr, log, cfg.Cron.BaseURL)
	storeSvc := storeService.NewService(storeRepository, payments, txMgr, log)
	tomatoSvc := tomatoService.NewService(tomatoRepository, userRepository, txMgr, log)
	cronSvc := a.newCronService()

	// Use cases
	generateTimeslots := generateTimeslotsUC.NewUseCase(workplaceRepository, txMgr, log)
	reserveTimeslot := reserveTimeslotUC.NewUseCase(
		workplaceRepository,
		userRepository,
		tomatoRepository,
		events,
		a.metrics,
		txMgr,
		log,
	)
	cancelTimeslotReservation := cancelTimeslotReservationUC.NewUseCase(
		workplaceRepository,
		userRepository,
		events,
		a.metrics,
		txMgr,
		log,
		cfg.Store.RefundHours,
	)
	reserveRetreat := reserveRetreatUC.NewUseCase(
		retreatRepository,
		tomatoRepository,
		retreatsSvc,
		events,
		a.metrics,
		txMgr,
		log,
	)
	cancelRetreatReservation := cancelRetreatReservationUC.NewUseCase(
		retreatRepository,
		storeRepository,
		storeSvc,
		retreatsSvc,
		events,
		a.metrics,
		txMgr,
		log,
	)
	validateCoupon := validateCouponUC.NewUseCase(storeRepository, log)
	createOrder := createOrderUC.NewUseCase(
		storeRepository,
		retreatRepository,
		userRepository,
		tomatoRepository,
		validateCoupon,
		reserveRetreat,
		payments,
		events,
		a.metrics,
		txMgr,
		log,
	)

	// Handlers
	users := usersHandler.NewHandler(usersSvc, log)
	workplaces := workplacesHandler.NewHandler(workplaceSvc, generateTimeslots, reserveTimeslot, cancelTimeslotReservation, log)
	retreats := retreatsHandler.NewHandler(retreatsSvc, reserveRetreat, cancelRetreatReservation, log)
	store := storeHandler.NewHandler(storeSvc, validateCoupon, createOrder, log)
	tomatoes := tomatoHandler.NewHandler(tomatoSvc, log)
	cron := cronHandler.NewHandler(cronSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	api.HandleFunc("/workplaces", workplaces.ListWorkplaces).Methods(http.MethodGet)
	api.HandleFunc("/workplaces/{id}/timeslots", workplaces.ListTimeslots).Methods(http.MethodGet)
	api.HandleFunc("/retreats", retreats.ListRetreats).Methods(http.MethodGet)
	api.HandleFunc("/retreats/{id}", retreats.GetRetreat).Methods(http.MethodGet)
	api.HandleFunc("/products", store.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/attendances/{key}/count", tomatoes.CountAttendance).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (вызываются cron-задачами, требуют X-Cron-Token)
	// ============================================================

	if cfg.Cron.Token == "" {
		log.Warn("cron.token is empty, internal routes will reject every request")
	}
	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalToken(cfg.Cron.Token))
	internal.HandleFunc("/retreats/{id}/remind", retreats.Remind).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth, middleware.LoadUser(usersSvc))

	// --- Пользователи ---
	protected.HandleFunc("/users/{userId}", users.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/tomatoes", tomatoes.GetUserTomatoes).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/retreat-reservations", retreats.ListUserReservations).Methods(http.MethodGet)

	// --- Рабочие места ---
	protected.HandleFunc("/timeslots/{id}/reservations", workplaces.Reserve).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}/cancel", workplaces.CancelReservation).Methods(http.MethodPatch)

	// --- Ретриты ---
	protected.HandleFunc("/retreat-reservations/{id}/cancel", retreats.CancelReservation).Methods(http.MethodPatch)
	protected.HandleFunc("/retreats/{id}/wait-queue", retreats.JoinWaitQueue).Methods(http.MethodPost)
	protected.HandleFunc("/retreats/{id}/wait-queue", retreats.LeaveWaitQueue).Methods(http.MethodDelete)

	// --- Магазин ---
	protected.HandleFunc("/coupons/validate", store.ValidateCoupon).Methods(http.MethodPost)
	protected.HandleFunc("/orders", store.CreateOrder).Methods(http.MethodPost)

	// --- Томаты, чат, посещаемость ---
	protected.HandleFunc("/messages", tomatoes.ListMessages).Methods(http.MethodGet)
	protected.HandleFunc("/messages", tomatoes.PostMessage).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}/reports", tomatoes.ReportMessage).Methods(http.MethodPost)
	protected.HandleFunc("/attendances", tomatoes.RecordAttendance).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (только сотрудники)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/users/{userId}/tickets", users.AdjustTickets).Methods(http.MethodPost)
	staff.HandleFunc("/tomatoes", tomatoes.CreditTomato).Methods(http.MethodPost)

	staff.HandleFunc("/workplaces", workplaces.CreateWorkplace).Methods(http.MethodPost)
	staff.HandleFunc("/workplaces/{id}/periods", workplaces.CreatePeriod).Methods(http.MethodPost)
	staff.HandleFunc("/periods/{id}/timeslots", workplaces.CreateTimeslot).Methods(http.MethodPost)
	staff.HandleFunc("/periods/{id}/timeslots/generate", workplaces.GenerateTimeslots).Methods(http.MethodPost)
	staff.HandleFunc("/timeslots/{id}", workplaces.DeleteTimeslot).Methods(http.MethodDelete)
	staff.HandleFunc("/reservations/{id}/presence", workplaces.MarkPresence).Methods(http.MethodPatch)

	staff.HandleFunc("/retreats", retreats.CreateRetreat).Methods(http.MethodPost)
	staff.HandleFunc("/retreats/{id}/activate", retreats.ActivateRetreat).Methods(http.MethodPost)
	staff.HandleFunc("/retreats/{id}/reservations", retreats.Reserve).Methods(http.MethodPost)
	staff.HandleFunc("/retreats/{id}/wait-queue/notify", retreats.NotifyWaitQueue).Methods(http.MethodPost)

	staff.HandleFunc("/memberships", store.CreateMembership).Methods(http.MethodPost)
	staff.HandleFunc("/packages", store.CreatePackage).Methods(http.MethodPost)
	staff.HandleFunc("/coupons", store.CreateCoupon).Methods(http.MethodPost)
	staff.HandleFunc("/order-lines/{id}/refunds", store.RefundOrderLine).Methods(http.MethodPost)

	staff.HandleFunc("/cron/tasks", cron.CreateTask).Methods(http.MethodPost)
	staff.HandleFunc("/cron/tasks", cron.ListTasks).Methods(http.MethodGet)
	staff.HandleFunc("/cron/tasks/{id}", cron.DeleteTask).Methods(http.MethodDelete)
	staff.HandleFunc("/cron/tasks/{id}/executions", cron.ListExecutions).Methods(http.MethodGet)
	staff.HandleFunc("/cron/execute", cron.Execute).Methods(http.MethodPost)

	// Внутренний планировщик
	var scheduler *cronService.Scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if cfg.Cron.SchedulerEnabled {
		scheduler = cronService.NewScheduler(cronSvc, time.Duration(cfg.Cron.TickInterval)*time.Second, log)
		scheduler.Start(schedulerCtx)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	log.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
