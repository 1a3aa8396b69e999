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

	createCheckoutHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/create_checkout"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/get_available_slots"
	getConfirmationHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/get_confirmation"
	getPaymentSuccessHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/get_payment_success"
	getSalonServicesHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/get_salon_services"
	handleReturnHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/handle_return"
	restartConfirmationHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/restart_confirmation"
	retryPaymentHandler "github.com/m04kA/SMC-SalonCheckout/internal/api/handlers/retry_payment"
	"github.com/m04kA/SMC-SalonCheckout/internal/api/middleware"
	"github.com/m04kA/SMC-SalonCheckout/internal/config"
	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	confirmationRepo "github.com/m04kA/SMC-SalonCheckout/internal/infra/storage/confirmation"
	handoffRepo "github.com/m04kA/SMC-SalonCheckout/internal/infra/storage/handoff"
	bookingServiceClient "github.com/m04kA/SMC-SalonCheckout/internal/integrations/bookingservice"
	offeringServiceClient "github.com/m04kA/SMC-SalonCheckout/internal/integrations/offeringservice"
	paymentServiceClient "github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
	paymentsService "github.com/m04kA/SMC-SalonCheckout/internal/service/payments"
	reconcilerService "github.com/m04kA/SMC-SalonCheckout/internal/service/reconciler"
	createCheckoutUC "github.com/m04kA/SMC-SalonCheckout/internal/usecase/create_checkout"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonCheckout/internal/usecase/get_available_slots"
	handleReturnUC "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
	retryPaymentUC "github.com/m04kA/SMC-SalonCheckout/internal/usecase/retry_payment"
	"github.com/m04kA/SMC-SalonCheckout/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
	"github.com/m04kA/SMC-SalonCheckout/pkg/metrics"
)

// handoffStore общий интерфейс Postgres и Redis хранилищ записей оплаты
type handoffStore interface {
	Save(ctx context.Context, record *domain.HandoffRecord) error
	Consume(ctx context.Context, kind domain.HandoffKind, bookingID int64, now time.Time) (*domain.HandoffRecord, error)
	Delete(ctx context.Context, kind domain.HandoffKind, bookingID int64) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// eventPublisher Kafka producer или заглушка
type eventPublisher interface {
	Publish(ctx context.Context, event *events.CheckoutEvent) error
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

	log.Info("Starting SMC-SalonCheckout...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы ничего не делают
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

	var dbExec dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		dbExec = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Хранилище записей оплаты
	var (
		handoffRepository handoffStore
		redisClient       *redis.Client
	)
	switch cfg.Handoff.Backend {
	case config.HandoffBackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		handoffRepository = handoffRepo.NewRedisRepository(redisClient)
		log.Info("Handoff records stored in redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	default:
		handoffRepository = handoffRepo.NewRepository(dbExec)
		log.Info("Handoff records stored in postgres")
	}

	confirmationRepository := confirmationRepo.NewRepository(dbExec)

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	var producer *events.Producer
	if cfg.Kafka.Enabled() {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		publisher = producer
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Info("Kafka brokers not configured, events are not published")
	}

	// Инициализируем интеграционных клиентов
	bookingClient := bookingServiceClient.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	offeringClient := offeringServiceClient.NewClient(
		cfg.OfferingService.URL,
		time.Duration(cfg.OfferingService.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Integration clients initialized (BookingService=%s, PaymentService=%s, OfferingService=%s)",
		cfg.BookingService.URL, cfg.PaymentService.URL, cfg.OfferingService.URL)

	// Инициализируем сервисы
	paymentSvc := paymentsService.NewService(
		paymentClient,
		handoffRepository,
		publisher,
		metricsCollector,
		time.Duration(cfg.Handoff.TTLMinutes)*time.Minute,
		log,
	)
	reconcilerSvc := reconcilerService.NewService(
		bookingClient,
		confirmationRepository,
		publisher,
		metricsCollector,
		reconcilerService.Options{
			MaxAttempts: cfg.Reconciler.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Reconciler.BaseDelayMs) * time.Millisecond,
			RunTimeout:  time.Duration(cfg.Reconciler.RunTimeout) * time.Second,
		},
		log,
	)

	// Инициализируем use cases
	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		offeringClient,
		bookingClient,
		paymentSvc,
		publisher,
		log,
	)
	handleReturnUseCase := handleReturnUC.NewUseCase(
		paymentClient,
		handoffRepository,
		reconcilerSvc,
		publisher,
		metricsCollector,
		log,
	)
	retryPaymentUseCase := retryPaymentUC.NewUseCase(
		bookingClient,
		offeringClient,
		paymentSvc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingClient, log)

	// Инициализируем handlers
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	handleReturn := handleReturnHandler.NewHandler(handleReturnUseCase, log)
	getPaymentSuccess := getPaymentSuccessHandler.NewHandler(handleReturnUseCase, log)
	retryPayment := retryPaymentHandler.NewHandler(retryPaymentUseCase, log)
	getConfirmation := getConfirmationHandler.NewHandler(reconcilerSvc, log)
	restartConfirmation := restartConfirmationHandler.NewHandler(reconcilerSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSalonServices := getSalonServicesHandler.NewHandler(offeringClient, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Bearer)

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог и свободные слоты салона
	api.HandleFunc("/salons/{salonId}/services", getSalonServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Возврат клиента с платежного шлюза
	api.HandleFunc("/payments/return", handleReturn.Handle).Methods(http.MethodGet)
	api.HandleFunc("/payment-success/{bookingId}", handleReturn.HandleSuccessRoute).Methods(http.MethodGet)

	// Одноразовое получение итогов оплаты
	api.HandleFunc("/bookings/{bookingId}/payment-success", getPaymentSuccess.Handle).Methods(http.MethodGet)

	// Состояние подтверждения бронирования и ручной перезапуск
	api.HandleFunc("/bookings/{bookingId}/confirmation", getConfirmation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirmation", restartConfirmation.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирование с оплатой
	protected.HandleFunc("/checkout", createCheckout.Handle).Methods(http.MethodPost)

	// Повторная оплата существующего бронирования
	protected.HandleFunc("/bookings/{bookingId}/payment/retry", retryPayment.Handle).Methods(http.MethodPost)

	// Очистка просроченных записей оплаты
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go runHandoffJanitor(janitorCtx, handoffRepository, time.Duration(cfg.Handoff.PurgeIntervalSeconds)*time.Second, log)

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

	stopJanitor()

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

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// runHandoffJanitor периодически удаляет просроченные записи оплаты
func runHandoffJanitor(ctx context.Context, repo handoffStore, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purged, err := repo.PurgeExpired(ctx, now)
			if err != nil {
				log.Error("Failed to purge expired handoff records: %v", err)
				continue
			}
			if purged > 0 {
				log.Info("Purged %d expired handoff records", purged)
			}
		}
	}
}
