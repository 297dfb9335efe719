package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*models.Appointment, error)
	Update(ctx context.Context, session *models.Session, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error)
	Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	Get(ctx context.Context, session *models.Session, appointmentID string) (*models.AppointmentDetail, error)
	List(ctx context.Context, session *models.Session, query requests.AppointmentQuery) (*responses.Page[models.AppointmentDetail], error)
	Meeting(ctx context.Context, session *models.Session, appointmentID string) (*responses.Meeting, error)
}

type ReminderUsecase interface {
	SendUpcomingReminders(ctx context.Context) (*responses.ReminderJob, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindDetailByID(ctx context.Context, appointmentID string) (*models.AppointmentDetail, error)
	// UpdateIfStatus reports false when the stored status no longer equals expectedStatus.
	UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error)
	SetMeetingIfAbsent(ctx context.Context, appointmentID, meetingID, meetingURL string) (bool, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error)
	FindDueForReminder(ctx context.Context, from, to time.Time, limit int) ([]models.AppointmentDetail, error)
	MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) (bool, error)
	ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error)
	LatestCompletedEndTime(ctx context.Context, patientID, doctorID string) (*time.Time, error)
}
