package appointments

import (
	"context"
	"errors"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingReminder struct {
	calls int
	err   error
}

func (c *countingReminder) SendUpcomingReminders(ctx context.Context) (*responses.ReminderJob, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &responses.ReminderJob{Scanned: 2, Sent: 2}, nil
}

func TestReminderWorker_RunOnce(t *testing.T) {
	cfg := config.AppWorker{LeaderLockTTL: time.Minute, ReminderCronSpec: "*/15 * * * *"}

	t.Run("leader runs the sweep and releases the lock", func(t *testing.T) {
		locker := &fakeLocker{}
		reminder := &countingReminder{}
		w := NewReminderWorker(zap.NewNop(), cfg, locker, reminder)

		assert.True(t, w.RunOnce(context.Background()))
		assert.Equal(t, 1, reminder.calls)
		assert.Equal(t, 1, locker.unlocked)
	})

	t.Run("skips when another instance holds the lock", func(t *testing.T) {
		locker := &fakeLocker{held: true}
		reminder := &countingReminder{}
		w := NewReminderWorker(zap.NewNop(), cfg, locker, reminder)

		assert.False(t, w.RunOnce(context.Background()))
		assert.Equal(t, 0, reminder.calls)
		assert.Equal(t, 0, locker.unlocked)
	})

	t.Run("skips when the lock store fails", func(t *testing.T) {
		locker := &fakeLocker{err: errRedisDown}
		reminder := &countingReminder{}
		w := NewReminderWorker(zap.NewNop(), cfg, locker, reminder)

		assert.False(t, w.RunOnce(context.Background()))
		assert.Equal(t, 0, reminder.calls)
	})

	t.Run("sweep failure still releases the lock", func(t *testing.T) {
		locker := &fakeLocker{}
		reminder := &countingReminder{err: errors.New("db down")}
		w := NewReminderWorker(zap.NewNop(), cfg, locker, reminder)

		assert.True(t, w.RunOnce(context.Background()))
		assert.Equal(t, 1, locker.unlocked)
	})
}

func TestReminderWorker_StartFallsBackOnInvalidSpec(t *testing.T) {
	w := NewReminderWorker(zap.NewNop(), config.AppWorker{ReminderCronSpec: "not a cron spec"}, &fakeLocker{}, &countingReminder{})
	w.Start(context.Background())
	defer w.Stop()

	if assert.NotNil(t, w.cron) {
		assert.Len(t, w.cron.Entries(), 1)
	}
}
