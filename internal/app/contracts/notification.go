package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
)

// NotificationDispatcher hands notifications to a background task. Callers
// never observe delivery errors.
type NotificationDispatcher interface {
	Submit(ctx context.Context, notification *models.AppointmentNotification)
	SubmitVerification(ctx context.Context, notification *models.VerificationNotification)
}

type NotificationUsecase interface {
	List(ctx context.Context, session *models.Session, pagination requests.Pagination) (*responses.Page[models.Notification], error)
	MarkRead(ctx context.Context, session *models.Session, notificationID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, int, error)
	FindOwner(ctx context.Context, notificationID string) (string, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

// InboxWriter records an inbox row; failures are logged, not returned.
type InboxWriter interface {
	Notify(ctx context.Context, userID, title, message, notificationType string)
}

type EmailJobPublisher interface {
	Publish(ctx context.Context, job *models.EmailJob) error
}

type EmailJobQueue interface {
	EmailJobPublisher
	FetchN(ctx context.Context, n int) ([]models.QueuedEmailJob, error)
	Ack(deliveryTag uint64) error
	Reenqueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error
	EnqueueToDeadQueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error
	Close() error
}

type EmailSender interface {
	Send(ctx context.Context, message *models.EmailMessage) error
}
