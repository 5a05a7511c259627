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

	cancelBookingHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/cancel_booking"
	checkoutHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/checkout"
	finalizeCheckoutHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/finalize_checkout"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_business_bookings"
	getBusinessCatalogHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_business_catalog"
	healthHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/health"
	holdSlotHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/hold_slot"
	releaseHoldHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/release_hold"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/config"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/customer"
	draftRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/draft"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/googlemaps"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/payment"
	bookingsService "github.com/m04kA/SMC-DetailingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-DetailingService/internal/service/catalog"
	"github.com/m04kA/SMC-DetailingService/internal/service/holds"
	"github.com/m04kA/SMC-DetailingService/internal/service/notifications"
	"github.com/m04kA/SMC-DetailingService/internal/service/slots"
	"github.com/m04kA/SMC-DetailingService/internal/service/travel"
	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
	getAvailableSlotsUC "github.com/m04kA/SMC-DetailingService/internal/usecase/get_available_slots"
	holdSlotUC "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
	"github.com/m04kA/SMC-DetailingService/pkg/metrics"
	"github.com/m04kA/SMC-DetailingService/pkg/retry"
	"github.com/m04kA/SMC-DetailingService/pkg/txmanager"
)

const travelRetryDelay = 250 * time.Millisecond

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

	log.Info("Starting SMC-DetailingService...")
	log.Info("Configuration loaded from config.toml")

	// Фоновые задачи (сбор метрик пула, очистка удержаний) живут до остановки сервера
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все методы Metrics проверяют получателя
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	draftRepository := draftRepo.NewRepository(wrappedDB)
	txMgr := txmanager.New(wrappedDB)

	// Оценка времени в пути (опционально)
	var (
		slotTravel     slots.TravelEstimator
		checkoutTravel checkoutUC.TravelEstimator
	)
	if cfg.Travel.Enabled {
		mapsClient := googlemaps.NewClient(cfg.Travel.BaseURL, cfg.Travel.APIKey, cfg.Travel.Timeout(), log)
		estimator, err := travel.NewEstimator(mapsClient, travel.Config{
			Timeout:       cfg.Travel.Timeout(),
			CacheSize:     cfg.Travel.CacheSize,
			BucketMinutes: cfg.Travel.BucketMinutes,
			RetryAttempts: cfg.Travel.RetryAttempts,
			RetryDelay:    travelRetryDelay,
		}, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to initialize travel estimator: %v", err)
		}
		slotTravel = estimator
		checkoutTravel = estimator
		log.Info("Travel-aware scheduling enabled (cache=%d, bucket=%dm)", cfg.Travel.CacheSize, cfg.Travel.BucketMinutes)
	}

	// Календарь (опционально)
	var (
		slotsCalendar    getAvailableSlotsUC.CalendarClient
		checkoutCalendar checkoutUC.CalendarClient
	)
	if cfg.Calendar.Enabled {
		calendarClient, err := gcalendar.NewClient(appCtx, cfg.Calendar.CredentialsFile, retry.Policy{
			MaxAttempts: cfg.Calendar.RetryAttempts,
			Delay:       cfg.Calendar.RetryDelay(),
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize calendar client: %v", err)
		}
		slotsCalendar = calendarClient
		checkoutCalendar = calendarClient
		log.Info("Calendar sync enabled (retries=%d)", cfg.Calendar.RetryAttempts)
	}

	// Почта (опционально)
	var notifier checkoutUC.Notifier
	if cfg.Mail.Enabled {
		mailClient := mailer.NewClient(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password,
			cfg.Mail.SSL, cfg.Mail.From, cfg.Mail.FromName, log)
		notifier = notifications.NewService(mailClient, log)
		log.Info("Confirmation emails enabled (host=%s, from=%s)", cfg.Mail.Host, cfg.Mail.From)
	}

	paymentClient := payment.NewClient(cfg.Payment.SecretKey, cfg.Payment.Currency, nil, log)

	// Инициализируем сервисы
	rules := domain.ScheduleRules{
		StepMinutes:   cfg.Scheduling.StepMinutes,
		BufferMinutes: cfg.Scheduling.BufferMinutes,
	}
	slotEngine := slots.NewEngine(rules, slotTravel, log)

	holdRegistry := holds.NewRegistry(cfg.Scheduling.HoldTTL(), metricsCollector, log)
	go holdRegistry.Run(appCtx, cfg.Scheduling.SweepInterval())

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessRepository,
		customerRepository,
		txMgr,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(businessRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		bookingSvc,
		slotsCalendar,
		slotEngine,
		holdRegistry,
		metricsCollector,
		cfg.Travel.Enabled,
		log,
	)

	holdSlotUseCase := holdSlotUC.NewUseCase(businessRepository, holdRegistry, log)

	checkoutUseCase := checkoutUC.NewUseCase(checkoutUC.Deps{
		Businesses: businessRepository,
		Drafts:     draftRepository,
		Customers:  customerRepository,
		Ledger:     bookingSvc,
		TxManager:  txMgr,
		Payment:    paymentClient,
		Holds:      holdRegistry,
		Calendar:   checkoutCalendar,
		Travel:     checkoutTravel,
		Notifier:   notifier,
	}, checkoutUC.Config{
		PublicURL: cfg.Server.PublicURL,
		CancelURL: cfg.Payment.CancelURL,
		Buffer:    rules.EffectiveBuffer(),
	}, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBusinessCatalog := getBusinessCatalogHandler.NewHandler(catalogSvc, log)
	holdSlot := holdSlotHandler.NewHandler(holdSlotUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(holdSlotUseCase, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	finalizeCheckout := finalizeCheckoutHandler.NewHandler(checkoutUseCase, log)
	health := healthHandler.NewHandler(db, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Каталог услуг и часы работы
	api.HandleFunc("/businesses/{businessId}/catalog", getBusinessCatalog.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Удержание слота на время оформления
	api.HandleFunc("/businesses/{businessId}/holds", holdSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/businesses/{businessId}/holds/release", releaseHold.Handle).Methods(http.MethodPost)

	// Оформление и подтверждение после оплаты
	api.HandleFunc("/businesses/{businessId}/checkout", checkout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/checkout/{sessionId}/finalize", finalizeCheckout.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление бизнесом (для владельца) ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем очистку удержаний и сбор метрик connection pool
	stopApp()
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
}
