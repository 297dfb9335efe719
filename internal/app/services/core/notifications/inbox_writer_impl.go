package notifications

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type inboxWriter struct {
	NotificationRepository contracts.NotificationRepository
	Log                    *zap.Logger
}

func NewInboxWriter(notificationRepository contracts.NotificationRepository, logger *zap.Logger) contracts.InboxWriter {
	return &inboxWriter{
		NotificationRepository: notificationRepository,
		Log:                    logger,
	}
}

func (w *inboxWriter) Notify(ctx context.Context, userID, title, message, notificationType string) {
	if userID == "" {
		return
	}
	err := w.NotificationRepository.Create(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	})
	if err != nil {
		w.Log.Error("inboxWriter.Notify failed to store notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.String(constvars.LoggingNotificationType, notificationType),
			zap.Error(err),
		)
	}
}
