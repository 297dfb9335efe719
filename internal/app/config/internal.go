package config

import "time"

type InternalConfig struct {
	App            App
	JWT            AppJWT
	PaymentGateway AppPaymentGateway
	Mailer         AppMailer
	Storage        AppStorage
	Notification   AppNotification
	Worker         AppWorker
	Meeting        AppMeeting
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	BaseUrl                    string
	FrontendBaseUrl            string
	Timezone                   string
	EndpointPrefix             string
	CorsAllowedOrigins         string
	MaxRequests                int
	MaxTimeRequestsPerSeconds  int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInMegabyte int
	RequestTimeout             time.Duration
	// JobAPIKey guards the internal job trigger endpoints.
	JobAPIKey string
}

type AppJWT struct {
	Secret            string
	Issuer            string
	SessionExpiry     time.Duration
	VerifyEmailExpiry time.Duration
}

type AppPaymentGateway struct {
	Name           string
	BaseUrl        string
	SecretKey      string
	CallbackUrl    string
	RequestTimeout time.Duration
}

type AppMailer struct {
	// Provider is either "smtp" or "sendgrid".
	Provider    string
	EmailSender string
	SenderName  string
}

type AppStorage struct {
	BucketName           string
	PublicBaseUrl        string
	SignedUrlExpiry      time.Duration
	MaxUploadSizeInBytes int64
}

type AppNotification struct {
	Queue           string
	DeadLetterQueue string
	DispatchTimeout time.Duration
}

type AppWorker struct {
	BatchSize          int
	MaxRetries         int
	PollInterval       time.Duration
	RateLimitPerSecond int
	ReminderCronSpec   string
	ReminderBatchSize  int
	LeaderLockTTL      time.Duration
}

type AppMeeting struct {
	BaseUrl string
}
