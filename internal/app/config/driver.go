package config

type (
	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
		RabbitMQ   RabbitMQ
		Minio      Minio
		SMTP       SMTP
		SendGrid   SendGrid
	}
	PostgresDB struct {
		Host         string
		Port         string
		Username     string
		Password     string
		DBName       string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port               string
		Host               string
		Username           string
		Password           string
		VHost              string
		HeartbeatInSeconds int
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		Region   string
		UseSSL   bool
	}
	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}
	SendGrid struct {
		APIKey string
	}
)
