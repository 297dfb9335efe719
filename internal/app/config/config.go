package config

import (
	"telehealth-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:         utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:         utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:     utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:     utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:       utils.GetEnvString("POSTGRES_DB_NAME", "telehealth"),
			SSLMode:      utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:    utils.GetEnvString("RABBITMQ_VHOST", "/"),

			HeartbeatInSeconds: utils.GetEnvInt("RABBITMQ_HEARTBEAT_IN_SECONDS", 10),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			Region:   utils.GetEnvString("MINIO_REGION", "us-east-1"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
		},
		SendGrid: SendGrid{
			APIKey: utils.GetEnvString("SENDGRID_API_KEY", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			FrontendBaseUrl:            utils.GetEnvString("APP_FRONTEND_BASE_URL", "http://localhost:3000"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Africa/Accra"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CorsAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			RequestTimeout:             utils.GetEnvDuration("APP_REQUEST_TIMEOUT", 10*time.Second),
			JobAPIKey:                  utils.GetEnvString("APP_JOB_API_KEY", ""),
		},
		JWT: AppJWT{
			Secret:            utils.GetEnvString("JWT_SECRET", "change-me"),
			Issuer:            utils.GetEnvString("JWT_ISSUER", "telehealth-service"),
			SessionExpiry:     utils.GetEnvDuration("JWT_SESSION_EXPIRY", time.Hour),
			VerifyEmailExpiry: utils.GetEnvDuration("JWT_VERIFY_EMAIL_EXPIRY", 24*time.Hour),
		},
		PaymentGateway: AppPaymentGateway{
			Name:           utils.GetEnvString("PAYMENT_GATEWAY_NAME", "paystack"),
			BaseUrl:        utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://api.paystack.co"),
			SecretKey:      utils.GetEnvString("PAYMENT_GATEWAY_SECRET_KEY", ""),
			CallbackUrl:    utils.GetEnvString("PAYMENT_GATEWAY_CALLBACK_URL", ""),
			RequestTimeout: utils.GetEnvDuration("PAYMENT_GATEWAY_REQUEST_TIMEOUT", 15*time.Second),
		},
		Mailer: AppMailer{
			Provider:    utils.GetEnvString("MAILER_PROVIDER", "smtp"),
			EmailSender: utils.GetEnvString("MAILER_EMAIL_SENDER", "no-reply@telehealth.local"),
			SenderName:  utils.GetEnvString("MAILER_SENDER_NAME", "Telehealth"),
		},
		Storage: AppStorage{
			BucketName:           utils.GetEnvString("STORAGE_BUCKET_NAME", "telehealth-documents"),
			PublicBaseUrl:        utils.GetEnvString("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/storage/v1"),
			SignedUrlExpiry:      utils.GetEnvDuration("STORAGE_SIGNED_URL_EXPIRY", 15*time.Minute),
			MaxUploadSizeInBytes: utils.GetEnvInt64("STORAGE_MAX_UPLOAD_SIZE_IN_BYTES", 10<<20),
		},
		Notification: AppNotification{
			Queue:           utils.GetEnvString("NOTIFICATION_QUEUE", "telehealth.notifications.email"),
			DeadLetterQueue: utils.GetEnvString("NOTIFICATION_DEAD_LETTER_QUEUE", "telehealth.notifications.email.dlq"),
			DispatchTimeout: utils.GetEnvDuration("NOTIFICATION_DISPATCH_TIMEOUT", 15*time.Second),
		},
		Worker: AppWorker{
			BatchSize:          utils.GetEnvInt("WORKER_BATCH_SIZE", 20),
			MaxRetries:         utils.GetEnvInt("WORKER_MAX_RETRIES", 5),
			PollInterval:       utils.GetEnvDuration("WORKER_POLL_INTERVAL", 5*time.Second),
			RateLimitPerSecond: utils.GetEnvInt("WORKER_RATE_LIMIT_PER_SECOND", 5),
			ReminderCronSpec:   utils.GetEnvString("WORKER_REMINDER_CRON_SPEC", "*/15 * * * *"),
			ReminderBatchSize:  utils.GetEnvInt("WORKER_REMINDER_BATCH_SIZE", 200),
			LeaderLockTTL:      utils.GetEnvDuration("WORKER_LEADER_LOCK_TTL", 5*time.Minute),
		},
		Meeting: AppMeeting{
			BaseUrl: utils.GetEnvString("MEETING_BASE_URL", "https://meet.jit.si"),
		},
	}
}
