package appointments

import (
	"context"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	fallbackReminderCronSpec = "@every 15m"
	defaultLeaderLockTTL     = 5 * time.Minute
)

// ReminderWorker runs the reminder sweep on a cron schedule. Only the
// instance holding the leader lock sweeps on a given tick.
type ReminderWorker struct {
	log      *zap.Logger
	cfg      config.AppWorker
	locker   contracts.LockerService
	reminder contracts.ReminderUsecase
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewReminderWorker(log *zap.Logger, cfg config.AppWorker, lockerService contracts.LockerService, reminderUsecase contracts.ReminderUsecase) *ReminderWorker {
	return &ReminderWorker{log: log, cfg: cfg, locker: lockerService, reminder: reminderUsecase}
}

// Start schedules the sweep and returns immediately.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(w.cfg.ReminderCronSpec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("ReminderWorker.Start invalid cron spec, falling back",
			zap.String("cron_spec", w.cfg.ReminderCronSpec),
			zap.String("fallback", fallbackReminderCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackReminderCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight sweeps and waits for the running job to return.
func (w *ReminderWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs one sweep if the leader lock can be taken. It reports
// whether this instance ran the sweep.
func (w *ReminderWorker) RunOnce(ctx context.Context) bool {
	ttl := w.cfg.LeaderLockTTL
	if ttl <= 0 {
		ttl = defaultLeaderLockTTL
	}

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderLeaderLock, ttl)
	if err != nil {
		w.log.Warn("ReminderWorker.RunOnce leader lock attempt failed", zap.Error(err))
		return false
	}
	if !acquired {
		w.log.Info("ReminderWorker.RunOnce leader lock held by another instance")
		return false
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReminderLeaderLock, token); err != nil {
			w.log.Warn("ReminderWorker.RunOnce failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyReminderLeaderLock, token, ttl); err != nil {
					w.log.Warn("ReminderWorker.RunOnce failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	result, err := w.reminder.SendUpcomingReminders(ctx)
	if err != nil {
		w.log.Error("ReminderWorker.RunOnce reminder sweep failed", zap.Error(err))
		return true
	}

	w.log.Info("ReminderWorker.RunOnce succeeded",
		zap.Int("scanned", result.Scanned),
		zap.Int(constvars.LoggingCountKey, result.Sent),
	)
	return true
}
