package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []models.EmailJob
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, job *models.EmailJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, *job)
	return nil
}

func bookingNotification() *models.AppointmentNotification {
	return &models.AppointmentNotification{
		Appointment: models.Appointment{
			ID:     "appt-1",
			Date:   time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC),
			Time:   "10:30",
			Type:   "VIDEO_CALL",
			Status: "PENDING",
		},
		PatientName:  "Ama Mensah",
		PatientEmail: "ama@example.com",
		DoctorName:   "Kwame Asante",
		DoctorEmail:  "kwame@example.com",
		Type:         "BOOKING",
	}
}

func TestDispatcher_SubmitPublishesOneJobPerRecipient(t *testing.T) {
	publisher := &recordingPublisher{}
	d := NewDispatcher(publisher, nil, time.Second, zap.NewNop())

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	d.Submit(ctx, bookingNotification())
	d.Wait(context.Background())

	require.Len(t, publisher.jobs, 2)
	recipients := []string{publisher.jobs[0].Message.To, publisher.jobs[1].Message.To}
	assert.ElementsMatch(t, []string{"ama@example.com", "kwame@example.com"}, recipients)
	for _, job := range publisher.jobs {
		assert.Equal(t, "BOOKING", job.Type)
		assert.Equal(t, "req-1", job.RequestID)
		assert.Equal(t, constvars.EmailSubjectBooking, job.Message.Subject)
		assert.Contains(t, job.Message.Body, "2026-03-11 at 10:30 (VIDEO_CALL)")
	}
	assert.Zero(t, d.Failures("BOOKING"))
}

func TestDispatcher_SurvivesCanceledCaller(t *testing.T) {
	publisher := &recordingPublisher{}
	d := NewDispatcher(publisher, nil, time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Submit(ctx, bookingNotification())
	d.Wait(context.Background())

	assert.Len(t, publisher.jobs, 2)
}

func TestDispatcher_FailuresAreCountedNotReturned(t *testing.T) {
	reg := prometheus.NewRegistry()
	publisher := &recordingPublisher{err: errors.New("amqp: channel closed")}
	d := NewDispatcher(publisher, metrics.NewMetrics(reg), time.Second, zap.NewNop())

	d.Submit(context.Background(), bookingNotification())
	d.Wait(context.Background())

	assert.Equal(t, 2, d.Failures("BOOKING"))
	expected := `
# HELP telehealth_notification_failures_total Notification dispatches that failed to reach the mailer
# TYPE telehealth_notification_failures_total counter
telehealth_notification_failures_total{type="BOOKING"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "telehealth_notification_failures_total"))
}

func TestDispatcher_UnrenderableNotification(t *testing.T) {
	publisher := &recordingPublisher{}
	d := NewDispatcher(publisher, nil, time.Second, zap.NewNop())

	unknown := bookingNotification()
	unknown.Type = "FAX"
	d.Submit(context.Background(), unknown)

	meeting := bookingNotification()
	meeting.Type = "VIDEO_MEETING"
	d.Submit(context.Background(), meeting)
	d.Wait(context.Background())

	assert.Empty(t, publisher.jobs)
	assert.Equal(t, 1, d.Failures("FAX"))
	assert.Equal(t, 1, d.Failures("VIDEO_MEETING"))
}

func TestDispatcher_SubmitVerification(t *testing.T) {
	publisher := &recordingPublisher{}
	d := NewDispatcher(publisher, nil, time.Second, zap.NewNop())

	d.SubmitVerification(context.Background(), &models.VerificationNotification{
		UserID:   "u-1",
		FullName: "Ama Mensah",
		Email:    "ama@example.com",
		Link:     "http://localhost:8080/api/v1/auth/verify-email?token=abc",
	})
	d.Wait(context.Background())

	require.Len(t, publisher.jobs, 1)
	job := publisher.jobs[0]
	assert.Equal(t, "EMAIL_VERIFICATION", job.Type)
	assert.Equal(t, "ama@example.com", job.Message.To)
	assert.True(t, strings.HasPrefix(job.Message.Body, "Hello Ama Mensah,"))
	assert.Contains(t, job.Message.Body, "token=abc")
}

func TestRenderAppointmentEmails(t *testing.T) {
	meetingURL := "https://meet.example.com/m-1"
	n := bookingNotification()
	n.Appointment.MeetingURL = &meetingURL
	n.Appointment.Status = "APPROVED"
	n.Appointment.Time = ""

	tests := []struct {
		notificationType string
		subject          string
		bodyContains     string
	}{
		{"REMINDER", constvars.EmailSubjectReminder, "scheduled for 2026-03-11 at a time to be confirmed"},
		{"RESCHEDULE", constvars.EmailSubjectReschedule, "Current status: APPROVED"},
		{"VIDEO_MEETING", constvars.EmailSubjectVideoMeeting, meetingURL},
		{"STATUS_UPDATE", "[TELEHEALTH] Appointment APPROVED", "is now APPROVED"},
	}
	for _, tt := range tests {
		t.Run(tt.notificationType, func(t *testing.T) {
			n.Type = tt.notificationType
			messages, err := renderAppointmentEmails(n)
			require.NoError(t, err)
			require.Len(t, messages, 2)
			assert.Equal(t, tt.subject, messages[0].Subject)
			assert.Contains(t, messages[0].Body, tt.bodyContains)
		})
	}
}
