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
	"github.com/shopspring/decimal"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	commissionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/commission"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	notificationsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/notifications"
	paymentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/payments"
	reviewsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reviews"
	salonsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/salons"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/cache/reminders"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/notification"
	paymentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payment"
	reviewRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/review"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salonservice"
	userServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBooking/internal/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	commissionService "github.com/m04kA/SMC-SalonBooking/internal/service/commission"
	notificationsService "github.com/m04kA/SMC-SalonBooking/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-SalonBooking/internal/service/payments"
	reviewsService "github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
	salonsService "github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	commissionDueUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/commission_due_reminders"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	expirePendingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/expire_pending"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	sendRemindersUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const jobTimeout = 2 * time.Minute

func main() {
	// Денежные суммы в JSON отдаём числами
	decimal.MarshalJSONWithoutQuotes = true

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

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	log.Info("Salon timezone: %s", loc)

	// Метрики (nil при выключенных, все методы nil-safe)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	salonRepository := salonRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Redis: отметки отправленных напоминаний
	redisClient := reminders.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis is unavailable at %s, reminders will be skipped until it recovers: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	reminderStore := reminders.NewStore(redisClient, time.Duration(cfg.Redis.ReminderTTL)*time.Hour)

	// Kafka: события для SMS-воркера. Без брокеров уведомления остаются только во входящих.
	var publisher notifier.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
		defer producer.Close()
		publisher = producer
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
	} else {
		log.Warn("Kafka brokers are not configured, SMS delivery is disabled")
	}

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	notify := notifier.New(notificationRepository, publisher, metricsCollector, log)

	// Сервисы
	commissionSvc := commissionService.NewService(salonRepository, bookingRepository, paymentRepository, loc, log)
	bookingSvc := bookingsService.NewService(bookingRepository, salonRepository, userClient, notify, log)
	salonSvc := salonsService.NewService(salonRepository, serviceRepository, commissionSvc, notify, log)
	reviewSvc := reviewsService.NewService(reviewRepository, salonRepository, userClient, notify, txMgr, log)
	paymentSvc := paymentsService.NewService(paymentRepository, notify, loc, log)
	notificationSvc := notificationsService.NewService(notificationRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		salonRepository,
		serviceRepository,
		commissionSvc,
		userClient,
		notify,
		metricsCollector,
		txMgr,
		loc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		salonRepository,
		commissionSvc,
		loc,
		log,
	)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		bookingRepository,
		salonRepository,
		reminderStore,
		userClient,
		notify,
		loc,
		cfg.Booking.ReminderLeadMinutes,
		log,
	)
	commissionDueUseCase := commissionDueUC.NewUseCase(commissionSvc, reminderStore, notify, loc, log)
	stalePolicy := domain.StalePendingPolicy(cfg.Booking.StalePendingPolicy)
	expirePendingUseCase := expirePendingUC.NewUseCase(bookingRepository, salonRepository, notify, loc, stalePolicy, log)

	// Планировщик фоновых задач
	sched := scheduler.New(loc, jobTimeout, metricsCollector, log)
	if cfg.Scheduler.Enabled {
		mustRegister(log, sched, "booking_reminders", cfg.Scheduler.RemindersSpec, func(ctx context.Context) error {
			_, err := sendRemindersUseCase.Execute(ctx)
			return err
		})
		mustRegister(log, sched, "commission_due", cfg.Scheduler.CommissionDueSpec, func(ctx context.Context) error {
			_, err := commissionDueUseCase.Execute(ctx)
			return err
		})
		if stalePolicy == domain.StalePendingReject {
			mustRegister(log, sched, "stale_pending", cfg.Scheduler.StalePendingSpec, func(ctx context.Context) error {
				_, err := expirePendingUseCase.Execute(ctx)
				return err
			})
		}
		sched.Start()
	}

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	salons := salonsHandler.NewHandler(salonSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	payments := paymentsHandler.NewHandler(paymentSvc, log)
	commission := commissionHandler.NewHandler(commissionSvc, log)
	notifications := notificationsHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT или X-User-ID / X-User-Role)
	// ============================================================
	// Регистрируются первыми: /salons/mine не должен совпасть с /salons/{salonId}

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Required)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Салоны (владелец) ---
	protected.HandleFunc("/salons/mine", salons.Mine).Methods(http.MethodGet)
	protected.HandleFunc("/salons", salons.Create).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}", salons.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/services", salons.AddService).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", salons.UpdateService).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", salons.DeleteService).Methods(http.MethodDelete)
	protected.HandleFunc("/salons/{salonId}/reviews", reviews.Create).Methods(http.MethodPost)

	// --- Комиссия и платежи ---
	protected.HandleFunc("/owners/{ownerId}/commission", commission.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments", payments.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/payments", payments.List).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read", notifications.MarkAllRead).Methods(http.MethodPost)

	// --- Администрирование ---
	protected.HandleFunc("/admin/salons", salons.ListAll).Methods(http.MethodGet)
	protected.HandleFunc("/admin/salons/{salonId}/status", salons.SetStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/salons/{salonId}/priority", salons.SetPriority).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/salons/{salonId}", salons.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/payments/{paymentId}/confirm", payments.Confirm).Methods(http.MethodPost)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/salons", salons.List).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}", salons.Get).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/services", salons.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}/reviews", reviews.List).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	sched.Stop(shutdownCtx)
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

func mustRegister(log *logger.Logger, sched *scheduler.Scheduler, name, spec string, job scheduler.JobFunc) {
	if err := sched.Register(name, spec, job); err != nil {
		log.Fatal("Failed to register job %s: %v", name, err)
	}
}
