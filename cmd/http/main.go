package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"
	"telehealth-service/internal/app/delivery/http/routers"
	"telehealth-service/internal/app/drivers/database"
	"telehealth-service/internal/app/drivers/logger"
	"telehealth-service/internal/app/drivers/messaging"
	"telehealth-service/internal/app/drivers/storage"
	"telehealth-service/internal/app/services/core/admin"
	"telehealth-service/internal/app/services/core/appointments"
	"telehealth-service/internal/app/services/core/auth"
	"telehealth-service/internal/app/services/core/conversations"
	"telehealth-service/internal/app/services/core/documents"
	"telehealth-service/internal/app/services/core/notifications"
	"telehealth-service/internal/app/services/core/payments"
	"telehealth-service/internal/app/services/core/prescriptions"
	"telehealth-service/internal/app/services/core/users"
	"telehealth-service/internal/app/services/shared/emailqueue"
	"telehealth-service/internal/app/services/shared/locker"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/app/services/shared/payment_gateway"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/app/services/shared/redis"
	"telehealth-service/internal/app/services/shared/session"
	storageService "telehealth-service/internal/app/services/shared/storage"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     database.NewPostgresDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Logger:         logger,
		Registry:       registry,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started",
			zap.String("address", internalConfig.App.Port),
			zap.String("version", Version),
			zap.String("tag", Tag),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	db := bootstrap.PostgresDB
	internalConfig := bootstrap.InternalConfig

	appMetrics := metrics.NewMetrics(bootstrap.Registry)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	sessionService := session.NewSessionService(log, redisRepository, internalConfig.JWT)
	authorizationPolicy, err := policy.NewCasbinPolicy(log)
	if err != nil {
		return err
	}
	paymentGateway := payment_gateway.NewPaystackService(internalConfig, log, appMetrics)
	documentStorage := storageService.NewMinioStorage(bootstrap.Minio, log, internalConfig.Storage)

	emailQueue, err := emailqueue.NewEmailQueue(
		bootstrap.RabbitMQ,
		log,
		internalConfig.Notification.Queue,
		internalConfig.Notification.DeadLetterQueue,
		internalConfig.Worker.BatchSize,
	)
	if err != nil {
		return err
	}

	// Notifications
	dispatcher := notifications.NewDispatcher(emailQueue, appMetrics, internalConfig.Notification.DispatchTimeout, log)
	bootstrap.DrainNotifications = func(ctx context.Context) {
		dispatcher.Wait(ctx)
		emailQueue.Close()
	}
	notificationRepository := notifications.NewNotificationPostgresRepository(db, log)
	inboxWriter := notifications.NewInboxWriter(notificationRepository, log)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, authorizationPolicy, log)

	// Repositories
	userRepository := users.NewUserPostgresRepository(db, log)
	patientRepository := users.NewPatientPostgresRepository(db, log)
	doctorRepository := users.NewDoctorPostgresRepository(db, log)
	adminRepository := users.NewAdminPostgresRepository(db, log)
	hospitalRepository := users.NewHospitalPostgresRepository(db, log)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(db, log)
	conversationRepository := conversations.NewConversationPostgresRepository(db, log)
	paymentRepository := payments.NewPaymentPostgresRepository(db, log)
	prescriptionRepository := prescriptions.NewPrescriptionPostgresRepository(db, log)
	medicalRecordRepository := documents.NewMedicalRecordPostgresRepository(db, log)
	doctorDocumentRepository := documents.NewDoctorDocumentPostgresRepository(db, log)
	adminStatsRepository := admin.NewAdminStatsPostgresRepository(db, log)

	// Usecases
	authUsecase := auth.NewAuthUsecase(userRepository, patientRepository, doctorRepository, adminRepository, sessionService, dispatcher, internalConfig, log)
	userUsecase := users.NewUserUsecase(userRepository, patientRepository, doctorRepository, hospitalRepository, authorizationPolicy, log)
	conversationUsecase := conversations.NewConversationUsecase(conversationRepository, appointmentRepository, authorizationPolicy, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		patientRepository,
		doctorRepository,
		conversationUsecase,
		dispatcher,
		inboxWriter,
		lockService,
		authorizationPolicy,
		internalConfig,
		log,
	)
	reminderUsecase := appointments.NewReminderUsecase(appointmentRepository, dispatcher, internalConfig.Worker.ReminderBatchSize, log)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		appointmentRepository,
		patientRepository,
		userRepository,
		paymentGateway,
		inboxWriter,
		lockService,
		authorizationPolicy,
		internalConfig,
		log,
	)
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(prescriptionRepository, patientRepository, doctorRepository, appointmentRepository, inboxWriter, authorizationPolicy, log)
	documentUsecase := documents.NewDocumentUsecase(
		medicalRecordRepository,
		doctorDocumentRepository,
		patientRepository,
		doctorRepository,
		appointmentRepository,
		documentStorage,
		inboxWriter,
		authorizationPolicy,
		internalConfig,
		log,
	)
	adminUsecase := admin.NewAdminUsecase(adminStatsRepository, doctorRepository, inboxWriter, authorizationPolicy, log)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, sessionService, internalConfig, appMetrics)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		promhttp.HandlerFor(bootstrap.Registry, promhttp.HandlerOpts{}),
		&routers.Controllers{
			Auth:         controllers.NewAuthController(log, authUsecase),
			User:         controllers.NewUserController(log, userUsecase),
			Appointment:  controllers.NewAppointmentController(log, appointmentUsecase),
			Payment:      controllers.NewPaymentController(log, paymentUsecase),
			Webhook:      controllers.NewWebhookController(log, paymentUsecase),
			Prescription: controllers.NewPrescriptionController(log, prescriptionUsecase),
			Document:     controllers.NewDocumentController(log, internalConfig, documentUsecase),
			Conversation: controllers.NewConversationController(log, conversationUsecase),
			Notification: controllers.NewNotificationController(log, notificationUsecase),
			Admin:        controllers.NewAdminController(log, adminUsecase, documentUsecase),
			Job:          controllers.NewJobController(log, reminderUsecase),
		},
	)
	return nil
}
