package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	bookSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/book_slot"
	bookWindowHandler "github.com/m04kA/interview-slots/internal/api/handlers/book_window"
	cancelSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/cancel_slot"
	completeSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/complete_slot"
	createSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/delete_slot"
	getAvailabilityHandler "github.com/m04kA/interview-slots/internal/api/handlers/get_availability"
	getSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/get_slot"
	getTimeGridHandler "github.com/m04kA/interview-slots/internal/api/handlers/get_time_grid"
	listSlotsHandler "github.com/m04kA/interview-slots/internal/api/handlers/list_slots"
	releaseSlotHandler "github.com/m04kA/interview-slots/internal/api/handlers/release_slot"
	"github.com/m04kA/interview-slots/internal/api/middleware"
	"github.com/m04kA/interview-slots/internal/config"
	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/infra/migrations"
	slotRepo "github.com/m04kA/interview-slots/internal/infra/storage/slot"
	"github.com/m04kA/interview-slots/internal/integrations/events"
	bookingService "github.com/m04kA/interview-slots/internal/service/booking"
	"github.com/m04kA/interview-slots/internal/service/matcher"
	slotsService "github.com/m04kA/interview-slots/internal/service/slots"
	bookWindowUC "github.com/m04kA/interview-slots/internal/usecase/book_window"
	getAvailabilityUC "github.com/m04kA/interview-slots/internal/usecase/get_availability"
	"github.com/m04kA/interview-slots/pkg/dbmetrics"
	"github.com/m04kA/interview-slots/pkg/logger"
	"github.com/m04kA/interview-slots/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

// slotStore общий контракт postgres и in-memory хранилищ
type slotStore interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Query(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	ConditionalUpdate(ctx context.Context, id, expectedVersion int64, update domain.SlotUpdate) (*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting interview-slots...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище слотов
	store, db, err := openStore(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// Публикация событий
	publisher, closePublisher, err := openPublisher(cfg.NATS, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Rate limiter на изменяющие маршруты
	var limiter middleware.Limiter
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable (addr=%s), rate limiter will pass requests: %v", cfg.Redis.Addr, err)
		}
		cancel()

		limiter = middleware.NewRedisLimiter(client)
		log.Info("Rate limiter enabled (addr=%s, limit=%d per %ds)",
			cfg.Redis.Addr, cfg.Redis.RateLimit, cfg.Redis.RateWindow)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		store,
		publisher,
		log,
		cfg.Business.Hours(),
		cfg.Business.Location(),
	)
	coordinator := bookingService.NewCoordinator(
		store,
		publisher,
		metricsCollector,
		log,
		cfg.Booking.MaxAttempts,
	)
	slotMatcher := matcher.New(store)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store, log)
	bookWindowUseCase := bookWindowUC.NewUseCase(slotMatcher, coordinator, log)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	getSlot := getSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	bookSlot := bookSlotHandler.NewHandler(coordinator, log)
	releaseSlot := releaseSlotHandler.NewHandler(coordinator, log)
	cancelSlot := cancelSlotHandler.NewHandler(coordinator, log)
	completeSlot := completeSlotHandler.NewHandler(coordinator, log)
	bookWindow := bookWindowHandler.NewHandler(bookWindowUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getTimeGrid := getTimeGridHandler.NewHandler(cfg.Business.Hours(), log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка окон дня
	api.HandleFunc("/time-grid", getTimeGrid.Handle).Methods(http.MethodGet)

	// Доступность окон компании на дату
	api.HandleFunc("/companies/{companyId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Слоты компании
	api.HandleFunc("/companies/{companyId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// Слот по ID
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.RateLimit(limiter, cfg.Redis.RateLimit, time.Duration(cfg.Redis.RateWindow)*time.Second))

	// --- Управление слотами ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/cancel", cancelSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/complete", completeSlot.Handle).Methods(http.MethodPost)

	// --- Бронирование ---
	protected.HandleFunc("/slots/{slotId}/book", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/book", bookWindow.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// openStore выбирает хранилище по storage.driver. Для postgres возвращает и *sql.DB,
// чтобы вызывающий закрыл пул.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (slotStore, *sql.DB, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory slot storage, data will be lost on restart")
		return slotRepo.NewMemoryRepository(), nil, nil
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Storage.AutoMigrate {
		if err := migrations.Up(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("Database migrations applied")
	}

	if metricsCollector != nil {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
		return slotRepo.NewRepository(wrappedDB), db, nil
	}
	return slotRepo.NewRepository(db), db, nil
}

// openPublisher подключается к NATS или возвращает NoopPublisher
func openPublisher(cfg config.NATSConfig, log *logger.Logger) (eventPublisher, func(), error) {
	if !cfg.Enabled {
		log.Info("Slot events disabled")
		return events.NoopPublisher{}, func() {}, nil
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.URL
	natsCfg.SubjectPrefix = cfg.SubjectPrefix

	publisher, err := events.NewNATSPublisher(natsCfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Slot events published to NATS (url=%s, prefix=%s)", cfg.URL, cfg.SubjectPrefix)
	return publisher, publisher.Close, nil
}
