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

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBranchAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_branch_appointments"
	getBranchSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_branch_settings"
	getStylistSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_stylist_slots"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment_status"
	updateBranchSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_branch_settings"
	validateBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/validation"
	settingsCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/branch"
	staffServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	branchesService "github.com/m04kA/SMC-SalonBooking/internal/service/branches"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getStylistSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_stylist_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/stylists"
	validateBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
	// .env опционален, переменные SALON_* переопределяют config.toml
	_ = godotenv.Load()

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

	log.Info("Starting SMC-SalonBooking...")

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		branchRepository      *branchRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		branchRepository = branchRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		branchRepository = branchRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш настроек филиалов
	var cache branchesService.SettingsCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Кеш не обязателен, сервис продолжит работу через БД
			log.Warn("Redis is unreachable at %s: %v", cfg.Redis.Addr, err)
		}
		cache = settingsCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Settings cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Справочник мастеров
	var staffDirectory stylists.StaffDirectory
	if cfg.StaffService.URL != "" {
		staffDirectory = staffServiceClient.NewClient(
			cfg.StaffService.URL,
			time.Duration(cfg.StaffService.Timeout)*time.Second,
			log,
		)
		log.Info("StaffService client initialized (url=%s, timeout=%ds)", cfg.StaffService.URL, cfg.StaffService.Timeout)
	}
	nameResolver := stylists.NewResolver(staffDirectory, log)

	// Движок доступности
	policy := conflict.DefaultPolicy()
	if cfg.Engine.PendingIsActive {
		policy = conflict.PendingActivePolicy()
	}
	detector := conflict.NewDetector(policy)
	calculator := availability.NewCalculator(detector)
	validator := validation.NewValidator(detector)

	// Сервисы
	branchSvc := branchesService.NewService(branchRepository, cache, log).
		WithDefaultSlotDuration(cfg.Engine.DefaultSlotDurationMinutes)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, policy, publisher, txMgr, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(appointmentRepository, branchSvc, calculator, log)
	getStylistSlotsUseCase := getStylistSlotsUC.NewUseCase(appointmentRepository, branchSvc, calculator, log)
	validateBookingUseCase := validateBookingUC.NewUseCase(
		appointmentRepository,
		branchSvc,
		validator,
		nameResolver,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		branchSvc,
		validator,
		nameResolver,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		branchSvc,
		validator,
		nameResolver,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getStylistSlots := getStylistSlotsHandler.NewHandler(getStylistSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	getBranchSettings := getBranchSettingsHandler.NewHandler(branchSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getBranchAppointments := getBranchAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateBranchSettings := updateBranchSettingsHandler.NewHandler(branchSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты филиала на дату
	api.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Свободные слоты мастера на дату
	api.HandleFunc("/stylists/{stylistId}/available-slots", getStylistSlots.Handle).Methods(http.MethodGet)

	// Предварительная проверка записи без сохранения
	api.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	// Часы работы и длительность слота
	api.HandleFunc("/branches/{branchId}/settings", getBranchSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Управление филиалом ---
	protected.HandleFunc("/branches/{branchId}/appointments", getBranchAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/settings", updateBranchSettings.Handle).Methods(http.MethodPut)

	// CORS, восстановление после panic и серверные спаны
	handler := ghandlers.CORS(
		ghandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Content-Type", middleware.UserIDHeader}),
	)(r)
	handler = ghandlers.RecoveryHandler(ghandlers.PrintRecoveryStack(true))(handler)
	handler = tracing.Middleware(handler, "salon-booking")

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
