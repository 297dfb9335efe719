package notifications

import (
	"context"
	"fmt"
	"sync"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultDispatchTimeout = 15 * time.Second

// Dispatcher renders notification emails and publishes one queue job per
// recipient from a background goroutine. Submit never blocks on the broker
// and never reports an error to its caller.
type Dispatcher struct {
	Publisher contracts.EmailJobPublisher
	Metrics   *metrics.Metrics
	Log       *zap.Logger
	timeout   time.Duration

	wg       sync.WaitGroup
	mu       sync.Mutex
	failures map[string]int
}

func NewDispatcher(publisher contracts.EmailJobPublisher, m *metrics.Metrics, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{
		Publisher: publisher,
		Metrics:   m,
		Log:       logger,
		timeout:   timeout,
		failures:  make(map[string]int),
	}
}

func (d *Dispatcher) Submit(ctx context.Context, notification *models.AppointmentNotification) {
	messages, err := renderAppointmentEmails(notification)
	if err != nil {
		d.recordFailure(ctx, notification.Type, err)
		return
	}
	d.dispatch(ctx, notification.Type, messages)
}

func (d *Dispatcher) SubmitVerification(ctx context.Context, notification *models.VerificationNotification) {
	d.dispatch(ctx, constvars.NotificationTypeEmailVerification, []models.EmailMessage{renderVerificationEmail(notification)})
}

// Wait blocks until every submitted dispatch has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		d.Log.Warn("Dispatcher.Wait gave up on in-flight notifications", zap.Error(ctx.Err()))
	}
}

// Failures returns how many deliveries of notificationType failed so far.
func (d *Dispatcher) Failures(notificationType string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failures[notificationType]
}

func (d *Dispatcher) dispatch(parent context.Context, notificationType string, messages []models.EmailMessage) {
	requestID := utils.GetRequestID(parent)
	detached := context.WithValue(context.WithoutCancel(parent), constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		for _, message := range messages {
			if message.To == "" {
				d.recordFailure(ctx, notificationType, fmt.Errorf("recipient %q has no email address", message.ToName))
				continue
			}
			job := &models.EmailJob{
				ID:        uuid.NewString(),
				Type:      notificationType,
				RequestID: requestID,
				Message:   message,
			}
			if err := d.Publisher.Publish(ctx, job); err != nil {
				d.recordFailure(ctx, notificationType, err)
				continue
			}
			d.Log.Debug("Dispatcher queued email",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingNotificationType, notificationType),
				zap.String("job_id", job.ID),
			)
		}
	}()
}

func (d *Dispatcher) recordFailure(ctx context.Context, notificationType string, err error) {
	d.mu.Lock()
	d.failures[notificationType]++
	d.mu.Unlock()
	d.Metrics.IncNotificationFailure(notificationType)

	d.Log.Error("Dispatcher failed to deliver notification",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingNotificationType, notificationType),
		zap.Error(err),
	)
}
