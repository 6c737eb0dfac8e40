package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/kos-management/internal/config"
	"github.com/segyhp/kos-management/internal/messaging"
	"github.com/segyhp/kos-management/internal/queue"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/internal/service"
	"github.com/segyhp/kos-management/pkg/logger"
)

const jobTimeout = 10 * time.Minute

type jobs struct {
	payments      *service.PaymentService
	notifications *service.NotificationService
	expenses      *service.ExpenseService
	reminders     *service.TenantReminderService
	retentionDays int
	log           *slog.Logger
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting kos scheduler...", "timezone", cfg.Scheduler.Timezone)

	ctx := context.Background()
	loc := cfg.Location()

	db, err := repository.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := queue.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("Failed to initialize redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dispatcher := service.NewNotificationDispatcher(userRepo, notificationRepo)

	j := &jobs{
		payments: service.NewPaymentService(paymentRepo,
			repository.NewTenantRepository(db),
			repository.NewRoomRepository(db),
			loc,
		),
		notifications: service.NewNotificationService(notificationRepo, loc),
		expenses: service.NewExpenseService(
			repository.NewExpenseRepository(db),
			dispatcher,
			queue.NewRedisQueue(redisClient, cfg.Queue.Name),
			cfg.Notification.ExpenseReminderDays,
			loc,
		),
		reminders: service.NewTenantReminderService(paymentRepo, userRepo,
			messaging.NewFonnteClient(cfg.WhatsApp),
			cfg.Notification.TenantReminderDays,
			loc,
		),
		retentionDays: cfg.Notification.RetentionDays,
		log:           log,
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	if err := setupCronJobs(c, cfg.Scheduler, j); err != nil {
		log.Error("Failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	c.Start()
	log.Info("Scheduler started successfully", "jobs", len(c.Entries()))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg config.SchedulerConfig, j *jobs) error {
	schedule := []struct {
		name string
		spec string
		run  func(ctx context.Context)
	}{
		{"overdue_sweep", cfg.OverdueSweepSpec, j.sweepOverdue},
		{"notification_retention", cfg.RetentionSpec, j.cleanupNotifications},
		{"expense_reminder", cfg.ExpenseReminderSpec, j.enqueueExpenseReminders},
		{"tenant_reminder", cfg.TenantReminderSpec, j.sendTenantReminders},
	}

	for _, entry := range schedule {
		run := entry.run
		name := entry.name
		if _, err := c.AddFunc(entry.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			started := time.Now()
			j.log.Info("Running scheduled job", "job", name)
			run(ctx)
			j.log.Info("Scheduled job finished", "job", name, "duration", time.Since(started))
		}); err != nil {
			return err
		}
	}

	return nil
}

func (j *jobs) sweepOverdue(ctx context.Context) {
	result, err := j.payments.SweepOverdue(ctx)
	if err != nil {
		j.log.Error("Overdue payment sweep failed", "error", err)
		return
	}

	expenses, err := j.expenses.MarkOverdue(ctx)
	if err != nil {
		j.log.Error("Overdue expense sweep failed", "error", err)
		return
	}

	j.log.Info("Overdue sweep done",
		"legacy_rewritten", result.LegacyRewritten,
		"payments_overdue", result.MarkedOverdue,
		"expenses_overdue", expenses,
	)
}

func (j *jobs) cleanupNotifications(ctx context.Context) {
	deleted, err := j.notifications.DeleteOlderThan(ctx, j.retentionDays)
	if err != nil {
		j.log.Error("Notification cleanup failed", "error", err)
		return
	}
	j.log.Info("Old notifications deleted", "count", deleted, "days", j.retentionDays)
}

func (j *jobs) enqueueExpenseReminders(ctx context.Context) {
	queued, err := j.expenses.EnqueueDueReminders(ctx)
	if err != nil {
		j.log.Error("Expense reminder enqueue failed", "error", err, "queued", queued)
		return
	}
	if queued > 0 {
		j.log.Info("Expense reminders queued", "count", queued)
	}
}

func (j *jobs) sendTenantReminders(ctx context.Context) {
	summary, err := j.reminders.SendReminders(ctx)
	if err != nil {
		j.log.Error("Tenant reminders failed", "error", err)
		return
	}
	j.log.Info("Tenant reminders done",
		"tenants", summary.Tenants,
		"sent", summary.Sent,
		"failed", summary.Failed,
		"outstanding", summary.Outstanding.String(),
	)
}
