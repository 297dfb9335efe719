package emailqueue

import (
	"context"
	"errors"
	"sync"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errNotConfirmed = errors.New("message not confirmed")

// channel is the part of *amqp.Channel the queue uses once declared.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Close() error
}

// emailQueue keeps email jobs in a durable RabbitMQ queue with a dead letter
// sibling. Publishes wait for the broker confirm.
type emailQueue struct {
	ch              channel
	log             *zap.Logger
	queueName       string
	deadLetterQueue string
	confirms        chan amqp.Confirmation
	mu              sync.Mutex
}

func NewEmailQueue(conn *amqp.Connection, log *zap.Logger, queueName, deadLetterQueue string, prefetch int) (contracts.EmailJobQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{queueName, deadLetterQueue} {
		_, err = ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			_ = ch.Close()
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, err
	}

	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	return newEmailQueue(ch, confirms, log, queueName, deadLetterQueue), nil
}

func newEmailQueue(ch channel, confirms chan amqp.Confirmation, log *zap.Logger, queueName, deadLetterQueue string) *emailQueue {
	return &emailQueue{
		ch:              ch,
		log:             log,
		queueName:       queueName,
		deadLetterQueue: deadLetterQueue,
		confirms:        confirms,
	}
}

func (q *emailQueue) Publish(ctx context.Context, job *models.EmailJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Info("emailQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, q.queueName),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return q.publishRaw(ctx, q.queueName, body)
}

// FetchN pulls up to n jobs with basic.get. Undecodable payloads are moved
// to the dead letter queue so they do not loop.
func (q *emailQueue) FetchN(ctx context.Context, n int) ([]models.QueuedEmailJob, error) {
	if n <= 0 {
		n = 1
	}
	items := make([]models.QueuedEmailJob, 0, n)

	for i := 0; i < n; i++ {
		delivery, ok, err := q.ch.Get(q.queueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var job models.EmailJob
		if err := json.Unmarshal(delivery.Body, &job); err != nil {
			q.log.Warn("emailQueue.FetchN moving undecodable message to dead letter queue",
				zap.String(constvars.LoggingQueueKey, q.deadLetterQueue),
				zap.Error(err),
			)
			if err := q.publishRaw(ctx, q.deadLetterQueue, delivery.Body); err != nil {
				return nil, err
			}
			_ = delivery.Ack(false)
			continue
		}
		items = append(items, models.QueuedEmailJob{DeliveryTag: delivery.DeliveryTag, Job: job})
	}

	return items, nil
}

func (q *emailQueue) Ack(deliveryTag uint64) error {
	return q.ch.Ack(deliveryTag, false)
}

// Reenqueue publishes the updated job to the tail of the queue and then
// acks the original delivery.
func (q *emailQueue) Reenqueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := q.publishRaw(ctx, q.queueName, body); err != nil {
		return err
	}
	return q.Ack(deliveryTag)
}

func (q *emailQueue) EnqueueToDeadQueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	q.log.Warn("emailQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, q.deadLetterQueue),
		zap.Int("failed_count", job.FailedCount),
	)

	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := q.publishRaw(ctx, q.deadLetterQueue, body); err != nil {
		return err
	}
	return q.Ack(deliveryTag)
}

func (q *emailQueue) Close() error {
	return q.ch.Close()
}

func (q *emailQueue) publishRaw(ctx context.Context, queue string, body []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := q.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-q.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed, queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
