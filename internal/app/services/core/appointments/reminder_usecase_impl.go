package appointments

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type reminderUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	NotificationDispatcher contracts.NotificationDispatcher
	Log                    *zap.Logger
	batchSize              int
	now                    func() time.Time
}

func NewReminderUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationDispatcher contracts.NotificationDispatcher,
	batchSize int,
	logger *zap.Logger,
) contracts.ReminderUsecase {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &reminderUsecase{
		AppointmentRepository:  appointmentRepository,
		NotificationDispatcher: notificationDispatcher,
		Log:                    logger,
		batchSize:              batchSize,
		now:                    time.Now,
	}
}

// SendUpcomingReminders notifies both parties of approved appointments that
// start within the reminder lead time. Each appointment is claimed before
// its email is queued, so overlapping runs remind at most once.
func (uc *reminderUsecase) SendUpcomingReminders(ctx context.Context) (*responses.ReminderJob, error) {
	requestID := utils.GetRequestID(ctx)
	now := uc.now().UTC()
	windowEnd := now.Add(constvars.AppointmentReminderLeadTimeInHours * time.Hour)

	uc.Log.Info("reminderUsecase.SendUpcomingReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("window_start", now),
		zap.Time("window_end", windowEnd),
	)

	due, err := uc.AppointmentRepository.FindDueForReminder(ctx, now, windowEnd, uc.batchSize)
	if err != nil {
		return nil, err
	}

	result := &responses.ReminderJob{Scanned: len(due)}
	for _, detail := range due {
		marked, err := uc.AppointmentRepository.MarkReminderSent(ctx, detail.ID, now)
		if err != nil {
			uc.Log.Error("reminderUsecase.SendUpcomingReminders failed to mark reminder",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, detail.ID),
				zap.Error(err),
			)
			continue
		}
		if !marked {
			continue
		}

		uc.NotificationDispatcher.Submit(ctx, &models.AppointmentNotification{
			Appointment:  detail.Appointment,
			PatientName:  detail.PatientName,
			PatientEmail: detail.PatientEmail,
			DoctorName:   detail.DoctorName,
			DoctorEmail:  detail.DoctorEmail,
			Type:         constvars.NotificationTypeReminder,
		})
		result.Sent++
	}

	uc.Log.Info("reminderUsecase.SendUpcomingReminders finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("scanned", result.Scanned),
		zap.Int("sent", result.Sent),
	)
	return result, nil
}
