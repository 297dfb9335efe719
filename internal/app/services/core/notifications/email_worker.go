package notifications

import (
	"context"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	EmailOutcomeSent    = "sent"
	EmailOutcomeRetried = "retried"
	EmailOutcomeDead    = "dead_lettered"
)

// EmailWorker drains the notification queue with at-least-once delivery.
type EmailWorker struct {
	Queue   contracts.EmailJobQueue
	Sender  contracts.EmailSender
	Metrics *metrics.Metrics
	Log     *zap.Logger

	limiter      *rate.Limiter
	batchSize    int
	maxRetries   int
	pollInterval time.Duration
}

func NewEmailWorker(queue contracts.EmailJobQueue, sender contracts.EmailSender, m *metrics.Metrics, cfg config.AppWorker, logger *zap.Logger) *EmailWorker {
	perSecond := cfg.RateLimitPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &EmailWorker{
		Queue:        queue,
		Sender:       sender,
		Metrics:      m,
		Log:          logger,
		limiter:      rate.NewLimiter(rate.Limit(perSecond), perSecond),
		batchSize:    batchSize,
		maxRetries:   cfg.MaxRetries,
		pollInterval: pollInterval,
	}
}

// Run polls until ctx is canceled. A full batch is followed immediately by
// another fetch; a short one waits for the poll interval.
func (w *EmailWorker) Run(ctx context.Context) error {
	w.Log.Info("EmailWorker started",
		zap.Int("batch_size", w.batchSize),
		zap.Int("max_retries", w.maxRetries),
	)
	for {
		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			w.Log.Error("EmailWorker batch failed", zap.Error(err))
		}
		if ctx.Err() != nil {
			w.Log.Info("EmailWorker stopped")
			return nil
		}
		if processed == w.batchSize {
			continue
		}
		select {
		case <-ctx.Done():
			w.Log.Info("EmailWorker stopped")
			return nil
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *EmailWorker) ProcessBatch(ctx context.Context) (int, error) {
	items, err := w.Queue.FetchN(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}
	for i, item := range items {
		if err := w.limiter.Wait(ctx); err != nil {
			// unprocessed deliveries return to the queue when the channel closes
			return i, err
		}
		w.processItem(ctx, item)
	}
	return len(items), nil
}

func (w *EmailWorker) processItem(ctx context.Context, item models.QueuedEmailJob) {
	job := item.Job
	err := w.Sender.Send(ctx, &job.Message)
	if err == nil {
		if ackErr := w.Queue.Ack(item.DeliveryTag); ackErr != nil {
			w.Log.Warn("EmailWorker ack failed after send",
				zap.String("job_id", job.ID),
				zap.Error(ackErr),
			)
		}
		w.Metrics.ObserveEmailJob(EmailOutcomeSent)
		w.Log.Info("EmailWorker sent email",
			zap.String(constvars.LoggingRequestIDKey, job.RequestID),
			zap.String("job_id", job.ID),
			zap.String(constvars.LoggingNotificationType, job.Type),
		)
		return
	}

	job.FailedCount++
	w.Log.Warn("EmailWorker send failed",
		zap.String(constvars.LoggingRequestIDKey, job.RequestID),
		zap.String("job_id", job.ID),
		zap.Int("failed_count", job.FailedCount),
		zap.Error(err),
	)

	if job.FailedCount >= w.maxRetries {
		if dlqErr := w.Queue.EnqueueToDeadQueue(ctx, item.DeliveryTag, &job); dlqErr != nil {
			w.Log.Error("EmailWorker dead-letter failed", zap.String("job_id", job.ID), zap.Error(dlqErr))
			return
		}
		w.Metrics.ObserveEmailJob(EmailOutcomeDead)
		return
	}

	if requeueErr := w.Queue.Reenqueue(ctx, item.DeliveryTag, &job); requeueErr != nil {
		w.Log.Error("EmailWorker reenqueue failed", zap.String("job_id", job.ID), zap.Error(requeueErr))
		return
	}
	w.Metrics.ObserveEmailJob(EmailOutcomeRetried)
}
