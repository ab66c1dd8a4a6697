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

	blockSlotHandler "github.com/agendei/agenda-service/internal/api/handlers/block_slot"
	createAppointmentHandler "github.com/agendei/agenda-service/internal/api/handlers/create_appointment"
	exportAgendaHandler "github.com/agendei/agenda-service/internal/api/handlers/export_agenda"
	getDayViewHandler "github.com/agendei/agenda-service/internal/api/handlers/get_day_view"
	getMonthViewHandler "github.com/agendei/agenda-service/internal/api/handlers/get_month_view"
	getScheduleHandler "github.com/agendei/agenda-service/internal/api/handlers/get_schedule"
	getWeekViewHandler "github.com/agendei/agenda-service/internal/api/handlers/get_week_view"
	loginHandler "github.com/agendei/agenda-service/internal/api/handlers/login"
	releaseSlotHandler "github.com/agendei/agenda-service/internal/api/handlers/release_slot"
	resolveSlotHandler "github.com/agendei/agenda-service/internal/api/handlers/resolve_slot"
	updateScheduleHandler "github.com/agendei/agenda-service/internal/api/handlers/update_schedule"
	updateStatusHandler "github.com/agendei/agenda-service/internal/api/handlers/update_status"
	"github.com/agendei/agenda-service/internal/api/middleware"
	"github.com/agendei/agenda-service/internal/config"
	"github.com/agendei/agenda-service/internal/infra/feed"
	appointmentRepo "github.com/agendei/agenda-service/internal/infra/storage/appointment"
	establishmentRepo "github.com/agendei/agenda-service/internal/infra/storage/establishment"
	profileClient "github.com/agendei/agenda-service/internal/integrations/profileservice"
	agendaService "github.com/agendei/agenda-service/internal/service/agenda"
	scheduleService "github.com/agendei/agenda-service/internal/service/schedule"
	sessionService "github.com/agendei/agenda-service/internal/service/session"
	blockSlotUC "github.com/agendei/agenda-service/internal/usecase/block_slot"
	createAppointmentUC "github.com/agendei/agenda-service/internal/usecase/create_appointment"
	releaseSlotUC "github.com/agendei/agenda-service/internal/usecase/release_slot"
	updateStatusUC "github.com/agendei/agenda-service/internal/usecase/update_status"
	"github.com/agendei/agenda-service/pkg/logger"
	"github.com/agendei/agenda-service/pkg/metrics"
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

	log.Info("Starting agenda-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis для фида изменений
	rdb, err := feed.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	changeFeed := feed.New(rdb, log, metricsCollector)

	// Инициализируем интеграционного клиента ProfileService
	profiles := profileClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("ProfileService client initialized (url=%s, timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db, metricsCollector)
	establishmentRepository := establishmentRepo.NewRepository(db, metricsCollector)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(establishmentRepository, log)
	agendaViews := agendaService.NewViews(appointmentRepository, scheduleSvc, log)
	sessionMgr := sessionService.NewManager(profiles, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		establishmentRepository,
		scheduleSvc,
		changeFeed,
		log,
	)
	blockSlotUseCase := blockSlotUC.NewUseCase(appointmentRepository, changeFeed, log)
	releaseSlotUseCase := releaseSlotUC.NewUseCase(appointmentRepository, changeFeed, log)
	updateStatusUseCase := updateStatusUC.NewUseCase(appointmentRepository, changeFeed, log)

	// Инициализируем handlers
	login := loginHandler.NewHandler(sessionMgr, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(blockSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(releaseSlotUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	getDayView := getDayViewHandler.NewHandler(agendaViews, log)
	getWeekView := getWeekViewHandler.NewHandler(agendaViews, log)
	getMonthView := getMonthViewHandler.NewHandler(agendaViews, log)
	resolveSlot := resolveSlotHandler.NewHandler(agendaViews, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	exportAgenda := exportAgendaHandler.NewHandler(appointmentRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Представления агенды
	api.HandleFunc("/establishments/{establishmentId}/agenda/day", getDayView.Handle).Methods(http.MethodGet)
	api.HandleFunc("/establishments/{establishmentId}/agenda/week", getWeekView.Handle).Methods(http.MethodGet)
	api.HandleFunc("/establishments/{establishmentId}/agenda/month", getMonthView.Handle).Methods(http.MethodGet)

	// Преобразование клика в слот
	api.HandleFunc("/establishments/{establishmentId}/agenda/resolve", resolveSlot.Handle).Methods(http.MethodGet)

	// Конфигурация расписания заведения
	api.HandleFunc("/establishments/{establishmentId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Экспорт агенды в iCalendar
	api.HandleFunc("/establishments/{establishmentId}/agenda/export.ics", exportAgenda.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Сессия (разрешение личности)
	protected.HandleFunc("/session", login.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Создание записи клиента
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Блокировка интервала владельцем
	protected.HandleFunc("/appointments/block", blockSlot.Handle).Methods(http.MethodPost)

	// Снятие блокировки
	protected.HandleFunc("/appointments/block/{holdId}", releaseSlot.Handle).Methods(http.MethodDelete)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Управление заведением ---
	// Обновление конфигурации расписания
	protected.HandleFunc("/establishments/{establishmentId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped gracefully")
}
