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

	availableSlotsHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/available_slots"
	cancelBookingHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/create_booking"
	editTokenHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/edit_token"
	editWaitTimeHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/edit_wait_time"
	getBookingHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/get_booking"
	listVendorBookingsHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/list_vendor_bookings"
	listVendorsHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/list_vendors"
	loginVendorHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/login_vendor"
	notifyPositionHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/notify_position"
	processPaymentHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/process_payment"
	queueStatusHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/queue_status"
	registerVendorHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/register_vendor"
	rescheduleBookingHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/reschedule_booking"
	searchAppointmentsHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/search_appointments"
	toggleOpenHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/toggle_open"
	updateBookingStatusHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/update_booking_status"
	verifyPaymentHandler "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers/verify_payment"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/middleware"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/config"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/cache"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	paymentRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/payment"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	bookingsService "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings"
	paymentsService "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/payments"
	vendorsService "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/vendors"
	availableSlotsUC "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/available_slots"
	cancelBookingUC "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/cancel_booking"
	createBookingUC "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/create_booking"
	queueStatusUC "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/queue_status"
	searchAppointmentsUC "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/search_appointments"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/dbmetrics"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/logger"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/metrics"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/simpletxmanager"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/txmanager"
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

	log.Info("Starting appointment booking service...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		vendorRepository  *vendorRepo.Repository
		paymentRepository *paymentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		vendorRepository = vendorRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		vendorRepository = vendorRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш справочника открытых вендоров
	var vendorCache cache.VendorCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisVendorCache(cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		vendorCache = redisCache
		log.Info("Vendor directory cache enabled (redis addr=%s)", cfg.Redis.Addr)
	} else {
		vendorCache = cache.NewNopVendorCache()
	}
	defer vendorCache.Close()

	// Публикация событий бронирований в очередь уведомлений
	var publisher notify.Publisher
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := notify.NewAMQPPublisher(cfg.RabbitMQ, cfg.Metrics.ServiceName, log, metricsCollector)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Notification publisher enabled (queue=%s)", cfg.RabbitMQ.Queue)
	} else {
		publisher = notify.NewNopPublisher()
	}
	defer publisher.Close()

	// Инициализируем сервисы
	vendorSvc := vendorsService.NewService(
		vendorRepository,
		vendorCache,
		log,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		vendorRepository,
		publisher,
		txMgr,
		log,
		cfg.Booking.ReassignTokenOnReschedule,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		vendorRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		publisher,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		publisher,
		txMgr,
		log,
		time.Duration(cfg.Booking.LateCancelWindowHours)*time.Hour,
		cfg.Booking.LateCancelFeePercent,
	)
	queueStatusUseCase := queueStatusUC.NewUseCase(bookingRepository, txMgr, log)
	searchAppointmentsUseCase := searchAppointmentsUC.NewUseCase(bookingRepository, txMgr, log)
	availableSlotsUseCase := availableSlotsUC.NewUseCase(bookingRepository, vendorRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	queueStatus := queueStatusHandler.NewHandler(queueStatusUseCase, log)
	searchAppointments := searchAppointmentsHandler.NewHandler(searchAppointmentsUseCase, log)
	availableSlots := availableSlotsHandler.NewHandler(availableSlotsUseCase, log)
	registerVendor := registerVendorHandler.NewHandler(vendorSvc, log)
	loginVendor := loginVendorHandler.NewHandler(vendorSvc, log)
	listVendors := listVendorsHandler.NewHandler(vendorSvc, log)
	toggleOpen := toggleOpenHandler.NewHandler(vendorSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listVendorBookings := listVendorBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	editToken := editTokenHandler.NewHandler(bookingSvc, log)
	editWaitTime := editWaitTimeHandler.NewHandler(bookingSvc, log)
	notifyPosition := notifyPositionHandler.NewHandler(bookingSvc, log)
	processPayment := processPaymentHandler.NewHandler(paymentSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(paymentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с rate limit по IP)
	// ============================================================

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	public := api.PathPrefix("").Subrouter()
	public.Use(rateLimiter.Middleware)

	// Регистрация и вход вендора
	public.HandleFunc("/vendors/register", registerVendor.Handle).Methods(http.MethodPost)
	public.HandleFunc("/vendors/login", loginVendor.Handle).Methods(http.MethodPost)

	// Справочник открытых вендоров и свободные слоты
	public.HandleFunc("/vendors", listVendors.Handle).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{id}/slots", availableSlots.Handle).Methods(http.MethodGet)

	// Клиентский поток бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/bookings/status", queueStatus.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/search", searchAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен вендора)
	// ============================================================

	protected := api.PathPrefix("/vendor").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Панель вендора ---
	protected.HandleFunc("/toggle-open", toggleOpen.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listVendorBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/token", editToken.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/wait-time", editWaitTime.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/notify", notifyPosition.Handle).Methods(http.MethodPost)

	// --- Подписка ---
	protected.HandleFunc("/payments", processPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{token}", verifyPayment.Handle).Methods(http.MethodGet)

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
