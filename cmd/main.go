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
	"github.com/redis/go-redis/v9"

	addDraftServiceHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/add_draft_service"
	cancelAppointmentHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/cancel_appointment"
	clearDraftServicesHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/clear_draft_services"
	getBusinessServicesHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/get_business_services"
	getBusinessStaffHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/get_business_staff"
	getDraftHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/get_draft"
	getUserAppointmentsHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/get_user_appointments"
	removeDraftServiceHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/remove_draft_service"
	resetDraftHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/reset_draft"
	submitBookingHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/submit_booking"
	updateDraftBusinessHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_draft_business"
	updateDraftNotesHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_draft_notes"
	updateDraftScheduleHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_draft_schedule"
	updateDraftStaffHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_draft_staff"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/config"
	draftStorage "github.com/m04kA/SMC-BookingFlow/internal/infra/storage/draft"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	catalogService "github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
	"github.com/m04kA/SMC-BookingFlow/internal/service/sessions"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
	"github.com/m04kA/SMC-BookingFlow/pkg/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BookingFlow...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище снапшотов черновиков
	var store draftStorage.Store
	switch cfg.DraftStore.Driver {
	case config.DraftStorePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Draft store: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		store = draftStorage.NewRepository(db)

	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		log.Info("Draft store: redis (addr=%s, db=%d, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.DB, cfg.DraftStore.TTL)

		store = draftStorage.NewRedisStore(redisClient, time.Duration(cfg.DraftStore.TTL)*time.Second)
	}

	// Запись снапшотов уходит в фон, чтобы мутации черновика не ждали хранилище
	writer := draftStorage.NewAsyncWriter(
		store,
		cfg.DraftStore.QueueSize,
		time.Duration(cfg.DraftStore.WriteTimeout)*time.Second,
		metricsCollector,
		log.With("component", "draft-writer"),
	)

	// Инициализируем интеграционного клиента
	backend := backendClient.NewClient(
		cfg.Backend.URL,
		cfg.Backend.APIKey,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log.With("component", "backend-client"),
	)
	log.Info("Backend client initialized (url=%s, timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(backend, log)
	registry := sessions.NewRegistry(
		cfg.DraftStore.KeyPrefix,
		time.Duration(cfg.DraftStore.RestoreTimeout)*time.Second,
		time.Duration(cfg.Sessions.IdleTimeout)*time.Second,
		writer,
		backend,
		metricsCollector,
		log,
	)

	// Простаивающие сессии выгружаются, черновики остаются в хранилище
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, time.Duration(cfg.Sessions.SweepInterval)*time.Second)

	// Инициализируем handlers
	getBusinessStaff := getBusinessStaffHandler.NewHandler(catalogSvc, log)
	getBusinessServices := getBusinessServicesHandler.NewHandler(catalogSvc, log)
	getDraft := getDraftHandler.NewHandler(registry, log)
	updateDraftBusiness := updateDraftBusinessHandler.NewHandler(registry, catalogSvc, log)
	updateDraftStaff := updateDraftStaffHandler.NewHandler(registry, catalogSvc, log)
	addDraftService := addDraftServiceHandler.NewHandler(registry, catalogSvc, log)
	removeDraftService := removeDraftServiceHandler.NewHandler(registry, log)
	clearDraftServices := clearDraftServicesHandler.NewHandler(registry, log)
	updateDraftSchedule := updateDraftScheduleHandler.NewHandler(registry, log)
	updateDraftNotes := updateDraftNotesHandler.NewHandler(registry, log)
	resetDraft := resetDraftHandler.NewHandler(registry, log)
	submitBooking := submitBookingHandler.NewHandler(registry, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(registry, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(registry, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (каталог, без аутентификации)
	// ============================================================

	api.HandleFunc("/businesses/{businessId}/staff", getBusinessStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/services", getBusinessServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Черновик бронирования ---
	protected.HandleFunc("/draft", getDraft.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/draft", resetDraft.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/draft/business", updateDraftBusiness.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/draft/staff", updateDraftStaff.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/draft/services", addDraftService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/draft/services", clearDraftServices.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/draft/services/{serviceId}", removeDraftService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/draft/schedule", updateDraftSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/draft/notes", updateDraftNotes.Handle).Methods(http.MethodPut)

	// --- Отправка ---
	protected.HandleFunc("/draft/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopSweep()

	// Дописываем оставшиеся снапшоты до закрытия соединений с хранилищем
	writer.Close()
	log.Info("Draft writer drained, active sessions: %d", registry.Len())

	log.Info("Server stopped gracefully")
}
