package config

import (
	"context"
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	PostgresDB     *sql.DB
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Logger         *zap.Logger
	Registry       *prometheus.Registry
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// DrainNotifications waits for in-flight notification dispatches.
	DrainNotifications func(ctx context.Context)
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.DrainNotifications != nil {
		b.DrainNotifications(ctx)
		log.Println("Successfully drained notification dispatcher")
	}

	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.PostgresDB != nil {
		if err := b.PostgresDB.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Postgres")
	}

	// stdout sync returns EINVAL on some platforms
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
