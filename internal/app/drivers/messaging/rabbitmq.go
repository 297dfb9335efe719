package messaging

import (
	"log"
	"net"
	"net/url"
	"telehealth-service/internal/app/config"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const connectionName = "telehealth-service"

// NewRabbitMQ dials the broker that carries the email job queue. The
// connection name shows up in the management UI next to each consumer.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	cfg := driverConfig.RabbitMQ

	brokerURL := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   cfg.VHost,
	}

	heartbeat := time.Duration(cfg.HeartbeatInSeconds) * time.Second
	if heartbeat <= 0 {
		heartbeat = 10 * time.Second
	}

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(connectionName)

	conn, err := amqp091.DialConfig(brokerURL.String(), amqp091.Config{
		Heartbeat:  heartbeat,
		Locale:     "en_US",
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ at %s: %s", brokerURL.Host, err.Error())
	}
	log.Printf("Successfully connected to rabbitMQ at %s (vhost %q)", brokerURL.Host, cfg.VHost)
	return conn
}
