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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkSlotHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/check_slot"
	createAppointmentHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/delete_appointment"
	getStaffAppointmentsHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/get_staff_appointments"
	getStaffCalendarHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/get_staff_calendar"
	updateAppointmentHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SFD-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SFD-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SFD-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SFD-SchedulingService/internal/infra/storage/appointment"
	staffServiceClient "github.com/m04kA/SFD-SchedulingService/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/SFD-SchedulingService/internal/service/appointments"
	checkSlotUC "github.com/m04kA/SFD-SchedulingService/internal/usecase/check_slot"
	createAppointmentUC "github.com/m04kA/SFD-SchedulingService/internal/usecase/create_appointment"
	getStaffCalendarUC "github.com/m04kA/SFD-SchedulingService/internal/usecase/get_staff_calendar"
	updateAppointmentUC "github.com/m04kA/SFD-SchedulingService/internal/usecase/update_appointment"
	"github.com/m04kA/SFD-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SFD-SchedulingService/pkg/inflight"
	"github.com/m04kA/SFD-SchedulingService/pkg/logger"
	"github.com/m04kA/SFD-SchedulingService/pkg/metrics"
	"github.com/m04kA/SFD-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SFD-SchedulingService/pkg/txmanager"
)

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

	log.Info("Starting SFD-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кэш расписаний в Redis (если включен)
	var scheduleCache staffServiceClient.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer rdb.Close()
		scheduleCache = staffServiceClient.NewRedisCache(rdb)
		log.Info("Redis schedule cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ScheduleTTLSecs)
	}

	// Инициализируем клиент StaffService
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		scheduleCache,
		time.Duration(cfg.Redis.ScheduleTTLSecs)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var appointmentRepository *appointmentRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Защита от одновременных мутаций по одному ключу
	mutationGuard := inflight.NewGuard()

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		&appointmentsService.RealTimeProvider{},
		mutationGuard,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		staffClient,
		txMgr,
		mutationGuard,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		staffClient,
		txMgr,
		mutationGuard,
		log,
	)

	getStaffCalendarUseCase := getStaffCalendarUC.NewUseCase(
		appointmentRepository,
		staffClient,
		log,
	)

	checkSlotUseCase := checkSlotUC.NewUseCase(
		appointmentRepository,
		staffClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getStaffCalendar := getStaffCalendarHandler.NewHandler(getStaffCalendarUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check (публичный)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT сессии)
	// ============================================================

	// Маршруты монтируются без версионного префикса: клиенты ходят
	// по путям /staff/... как они задокументированы
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.NewAuth([]byte(cfg.Auth.JWTSecret)))

	// --- Записи клиентов ---
	// Создание записи
	protected.HandleFunc("/staff/appointments/add", createAppointment.Handle).Methods(http.MethodPost)

	// Удаление записи
	protected.HandleFunc("/staff/appointments/delete", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Список записей сотрудника
	protected.HandleFunc("/staff/appointments/{staffId}", getStaffAppointments.Handle).Methods(http.MethodGet)

	// Перенос / изменение записи
	protected.HandleFunc("/staff/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)

	// Смена статуса записи (завершение, отмена)
	protected.HandleFunc("/staff/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Календарь и доступность ---
	// Недельный календарь сотрудника
	protected.HandleFunc("/staff/calendar/{staffId}", getStaffCalendar.Handle).Methods(http.MethodGet)

	// Предварительная проверка слота
	protected.HandleFunc("/staff/availability/{staffId}", checkSlot.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
