package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/drivers/database"
	"telehealth-service/internal/app/drivers/logger"
	"telehealth-service/internal/app/drivers/messaging"
	"telehealth-service/internal/app/services/core/appointments"
	"telehealth-service/internal/app/services/core/notifications"
	"telehealth-service/internal/app/services/shared/emailqueue"
	"telehealth-service/internal/app/services/shared/locker"
	"telehealth-service/internal/app/services/shared/mailer"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/app/services/shared/redis"
	"telehealth-service/internal/pkg/constvars"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worker",
		Short: "Background workers for the telehealth service",
	}
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address (disabled when empty)")

	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(remindersCmd())
	rootCmd.AddCommand(scheduleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// workerApp holds the resources shared by every subcommand.
type workerApp struct {
	bootstrap *config.Bootstrap
	metrics   *metrics.Metrics
	queue     contracts.EmailJobQueue
}

func newWorkerApp(cmd *cobra.Command, withDatabase bool) (*workerApp, error) {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	registry := prometheus.NewRegistry()

	bootstrap := &config.Bootstrap{
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		Registry:       registry,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if withDatabase {
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig)
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}

	queue, err := emailqueue.NewEmailQueue(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		internalConfig.Notification.Queue,
		internalConfig.Notification.DeadLetterQueue,
		internalConfig.Worker.BatchSize,
	)
	if err != nil {
		return nil, fmt.Errorf("open email queue: %w", err)
	}

	app := &workerApp{bootstrap: bootstrap, metrics: metrics.NewMetrics(registry), queue: queue}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		go app.serveMetrics(addr)
	}
	return app, nil
}

func (a *workerApp) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.bootstrap.Registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.bootstrap.Logger.Error("worker metrics server stopped", zap.Error(err))
	}
}

func (a *workerApp) close(dispatcher *notifications.Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.bootstrap.InternalConfig.App.ShutdownTimeoutInSeconds)*time.Second)
	defer cancel()

	a.bootstrap.DrainNotifications = func(ctx context.Context) {
		if dispatcher != nil {
			dispatcher.Wait(ctx)
		}
		a.queue.Close()
	}
	if err := a.bootstrap.Shutdown(ctx); err != nil {
		log.Printf("Error releasing resources: %v", err)
	}
}

func (a *workerApp) reminderUsecase() (contracts.ReminderUsecase, *notifications.Dispatcher) {
	b := a.bootstrap
	dispatcher := notifications.NewDispatcher(a.queue, a.metrics, b.InternalConfig.Notification.DispatchTimeout, b.Logger)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(b.PostgresDB, b.Logger)
	return appointments.NewReminderUsecase(appointmentRepository, dispatcher, b.InternalConfig.Worker.ReminderBatchSize, b.Logger), dispatcher
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Consume the email queue and deliver notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newWorkerApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close(nil)

			b := app.bootstrap
			sender := mailer.NewEmailSender(b.DriverConfig, b.InternalConfig, b.Logger)
			worker := notifications.NewEmailWorker(app.queue, sender, app.metrics, b.InternalConfig.Worker, b.Logger)

			ctx, stop := signalContext()
			defer stop()

			b.Logger.Info("consuming email queue", zap.String(constvars.LoggingQueueKey, b.InternalConfig.Notification.Queue))
			return worker.Run(ctx)
		},
	}
}

func remindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Send reminders for upcoming appointments once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newWorkerApp(cmd, true)
			if err != nil {
				return err
			}
			reminderUsecase, dispatcher := app.reminderUsecase()
			defer app.close(dispatcher)

			ctx, stop := signalContext()
			defer stop()

			result, err := reminderUsecase.SendUpcomingReminders(ctx)
			if err != nil {
				return err
			}
			app.bootstrap.Logger.Info("reminder sweep finished",
				zap.Int("scanned", result.Scanned),
				zap.Int("sent", result.Sent),
			)
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the reminder sweep on its cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newWorkerApp(cmd, true)
			if err != nil {
				return err
			}
			reminderUsecase, dispatcher := app.reminderUsecase()
			defer app.close(dispatcher)

			b := app.bootstrap
			lockService := locker.NewLockService(redis.NewRedisRepository(b.Redis), b.Logger)
			worker := appointments.NewReminderWorker(b.Logger, b.InternalConfig.Worker, lockService, reminderUsecase)

			ctx, stop := signalContext()
			defer stop()

			worker.Start(ctx)
			b.Logger.Info("reminder scheduler started", zap.String("cron_spec", b.InternalConfig.Worker.ReminderCronSpec))
			<-ctx.Done()
			worker.Stop()
			b.Logger.Info("reminder scheduler stopped")
			return nil
		},
	}
}
