package appointments

import (
	"context"
	"telehealth-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedReminderAppointments(repo *memoryAppointmentRepository) {
	sentAt := fixedNow.Add(-time.Hour)
	for _, d := range []models.AppointmentDetail{
		{Appointment: models.Appointment{ID: "due", Status: "APPROVED", Date: fixedNow.Add(2 * time.Hour)}},
		{Appointment: models.Appointment{ID: "later", Status: "APPROVED", Date: fixedNow.Add(30 * time.Hour)}},
		{Appointment: models.Appointment{ID: "already", Status: "APPROVED", Date: fixedNow.Add(time.Hour), ReminderSentAt: &sentAt}},
		{Appointment: models.Appointment{ID: "pending", Status: "PENDING", Date: fixedNow.Add(3 * time.Hour)}},
	} {
		repo.put(d)
	}
}

func TestReminderUsecase_SendUpcomingReminders(t *testing.T) {
	repo := newMemoryAppointmentRepository()
	seedReminderAppointments(repo)
	dispatcher := &recordingDispatcher{}

	uc := NewReminderUsecase(repo, dispatcher, 50, zap.NewNop()).(*reminderUsecase)
	uc.now = func() time.Time { return fixedNow }

	result, err := uc.SendUpcomingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, []string{"REMINDER"}, dispatcher.types())
	assert.NotNil(t, repo.get("due").ReminderSentAt)

	t.Run("Second Run Sends Nothing", func(t *testing.T) {
		result, err := uc.SendUpcomingReminders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, result.Sent)
		assert.Len(t, dispatcher.types(), 1)
	})
}

func TestReminderUsecase_MarkFailureSkipsSend(t *testing.T) {
	repo := newMemoryAppointmentRepository()
	seedReminderAppointments(repo)
	repo.reminderErr = errRedisDown
	dispatcher := &recordingDispatcher{}

	uc := NewReminderUsecase(repo, dispatcher, 0, zap.NewNop()).(*reminderUsecase)
	uc.now = func() time.Time { return fixedNow }

	result, err := uc.SendUpcomingReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 0, result.Sent)
	assert.Empty(t, dispatcher.types())
}
