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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingCancelHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/booking_cancel"
	bookingSuccessHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/booking_success"
	healthHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/health"
	homeHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/home"
	lookupBookingHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/lookup_booking"
	newBookingHandler "github.com/m04kA/NBNE-SignsBooking/internal/api/handlers/new_booking"
	"github.com/m04kA/NBNE-SignsBooking/internal/api/middleware"
	"github.com/m04kA/NBNE-SignsBooking/internal/config"
	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/internal/infra/storage/handoff"
	"github.com/m04kA/NBNE-SignsBooking/internal/integrations/bookingapi"
	createBookingUC "github.com/m04kA/NBNE-SignsBooking/internal/usecase/create_booking"
	lookupBookingUC "github.com/m04kA/NBNE-SignsBooking/internal/usecase/lookup_booking"
	reconcilePaymentUC "github.com/m04kA/NBNE-SignsBooking/internal/usecase/reconcile_payment"
	"github.com/m04kA/NBNE-SignsBooking/pkg/logger"
	"github.com/m04kA/NBNE-SignsBooking/pkg/metrics"
)

// handoffStore общий интерфейс всех бэкендов hand-off
type handoffStore interface {
	Put(ctx context.Context, sessionID, key, value string) error
	Get(ctx context.Context, sessionID, key string) (string, error)
	Clear(ctx context.Context, sessionID, key string) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting NBNE Signs booking site...")

	// Фоновые задачи останавливаются вместе с сервером
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		apiMetrics       bookingapi.MetricsRecorder
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		apiMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Выбираем хранилище hand-off
	var (
		store  handoffStore
		pinger healthHandler.Pinger
	)
	ttl := cfg.Session.SessionTTL()

	switch cfg.Handoff.Backend {
	case config.HandoffBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		redisStore := handoff.NewRedisStore(client, ttl)
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		store, pinger = redisStore, redisStore
		log.Info("Handoff store: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	case config.HandoffBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		pgStore := handoff.NewPostgresStore(db, ttl)
		if err := pgStore.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		store, pinger = pgStore, pgStore
		log.Info("Handoff store: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		go handoff.RunJanitor(bgCtx, pgStore, cfg.Handoff.PurgeEvery(), log)

	default:
		store = handoff.NewMemoryStore(ttl)
		log.Info("Handoff store: memory")
	}

	// Инициализируем клиент booking API
	bookingClient := bookingapi.NewClient(
		cfg.BookingAPI.URL,
		time.Duration(cfg.BookingAPI.Timeout)*time.Second,
		apiMetrics,
		log,
	)
	log.Info("Booking API client initialized (url=%s, timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingClient, store, log)
	reconcilePaymentUseCase := reconcilePaymentUC.NewUseCase(
		bookingClient,
		store,
		reconcilePaymentUC.TimerWaiter{},
		reconcilePaymentUC.Options{
			Delay:          cfg.Reconcile.Delay(),
			Attempts:       cfg.Reconcile.Attempts,
			ConfirmPayment: cfg.Reconcile.ConfirmPayment,
		},
		log,
	)
	lookupBookingUseCase := lookupBookingUC.NewUseCase(bookingClient, log)

	// Инициализируем handlers
	home := homeHandler.NewHandler(log)
	newBooking := newBookingHandler.NewHandler(createBookingUseCase, cfg.Server.PublicOrigin, log)
	bookingSuccess := bookingSuccessHandler.NewHandler(reconcilePaymentUseCase, log)
	bookingCancel := bookingCancelHandler.NewHandler(log)
	lookupBooking := lookupBookingHandler.NewHandler(lookupBookingUseCase, log)
	health := healthHandler.NewHandler(cfg.Handoff.Backend, pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PAGES (с cookie сессии)
	// ============================================================

	pages := r.PathPrefix("").Subrouter()
	pages.Use(middleware.Session(middleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	}))

	pages.HandleFunc(domain.PathHome, home.Handle).Methods(http.MethodGet)
	pages.HandleFunc(domain.PathNewBooking, newBooking.HandleForm).Methods(http.MethodGet)

	var submit http.Handler = http.HandlerFunc(newBooking.HandleSubmit)
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedPrefixes()
		if err != nil {
			log.Fatal("Invalid rate limit config: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute, trustedProxies, log)
		submit = limiter.Middleware(submit)
		log.Info("Rate limit on booking submit: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	pages.Handle(domain.PathNewBooking, submit).Methods(http.MethodPost)

	pages.HandleFunc(domain.PathSuccess, bookingSuccess.Handle).Methods(http.MethodGet)
	pages.HandleFunc(domain.PathCancel, bookingCancel.Handle).Methods(http.MethodGet)
	pages.HandleFunc(domain.PathLookup, lookupBooking.Handle).Methods(http.MethodGet)

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
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
