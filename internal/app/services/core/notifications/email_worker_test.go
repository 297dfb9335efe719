package notifications

import (
	"context"
	"errors"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmailQueue struct {
	pending      []models.QueuedEmailJob
	acked        []uint64
	requeued     []models.EmailJob
	deadLettered []models.EmailJob
}

func (q *fakeEmailQueue) Publish(ctx context.Context, job *models.EmailJob) error { return nil }

func (q *fakeEmailQueue) FetchN(ctx context.Context, n int) ([]models.QueuedEmailJob, error) {
	if n > len(q.pending) {
		n = len(q.pending)
	}
	items := q.pending[:n]
	q.pending = q.pending[n:]
	return items, nil
}

func (q *fakeEmailQueue) Ack(deliveryTag uint64) error {
	q.acked = append(q.acked, deliveryTag)
	return nil
}

func (q *fakeEmailQueue) Reenqueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error {
	q.requeued = append(q.requeued, *job)
	return nil
}

func (q *fakeEmailQueue) EnqueueToDeadQueue(ctx context.Context, deliveryTag uint64, job *models.EmailJob) error {
	q.deadLettered = append(q.deadLettered, *job)
	return nil
}

func (q *fakeEmailQueue) Close() error { return nil }

type fakeSender struct {
	failFor map[string]bool
	sent    []string
}

func (s *fakeSender) Send(ctx context.Context, message *models.EmailMessage) error {
	if s.failFor[message.To] {
		return errors.New("smtp: 451 try again later")
	}
	s.sent = append(s.sent, message.To)
	return nil
}

func queued(tag uint64, to string, failedCount int) models.QueuedEmailJob {
	return models.QueuedEmailJob{
		DeliveryTag: tag,
		Job: models.EmailJob{
			ID:          "job-" + to,
			Type:        "BOOKING",
			Message:     models.EmailMessage{To: to, Subject: "s", Body: "b"},
			FailedCount: failedCount,
		},
	}
}

func TestEmailWorker_ProcessBatch(t *testing.T) {
	queue := &fakeEmailQueue{pending: []models.QueuedEmailJob{
		queued(1, "ok@example.com", 0),
		queued(2, "flaky@example.com", 1),
		queued(3, "broken@example.com", 2),
	}}
	sender := &fakeSender{failFor: map[string]bool{"flaky@example.com": true, "broken@example.com": true}}
	worker := NewEmailWorker(queue, sender, nil, config.AppWorker{
		BatchSize:          10,
		MaxRetries:         3,
		RateLimitPerSecond: 100,
	}, zap.NewNop())

	processed, err := worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	assert.Equal(t, []string{"ok@example.com"}, sender.sent)
	assert.Equal(t, []uint64{1}, queue.acked)

	require.Len(t, queue.requeued, 1)
	assert.Equal(t, "flaky@example.com", queue.requeued[0].Message.To)
	assert.Equal(t, 2, queue.requeued[0].FailedCount)

	require.Len(t, queue.deadLettered, 1)
	assert.Equal(t, "broken@example.com", queue.deadLettered[0].Message.To)
	assert.Equal(t, 3, queue.deadLettered[0].FailedCount)
}

func TestEmailWorker_RunStopsOnCancel(t *testing.T) {
	queue := &fakeEmailQueue{pending: []models.QueuedEmailJob{queued(1, "ok@example.com", 0)}}
	sender := &fakeSender{}
	worker := NewEmailWorker(queue, sender, nil, config.AppWorker{
		BatchSize:          5,
		MaxRetries:         3,
		RateLimitPerSecond: 100,
		PollInterval:       10 * time.Millisecond,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, worker.Run(ctx))
	assert.Equal(t, []string{"ok@example.com"}, sender.sent)
}
