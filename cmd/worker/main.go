package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/segyhp/kos-management/internal/config"
	"github.com/segyhp/kos-management/internal/queue"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/internal/service"
	"github.com/segyhp/kos-management/internal/worker"
	"github.com/segyhp/kos-management/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	jobs := queue.NewRedisQueue(redisClient, cfg.Queue.Name)

	// jobs left in processing by a crashed worker go back to pending
	recovered, err := jobs.Recover(ctx)
	if err != nil {
		log.Error("Failed to recover in-flight jobs", "error", err)
		os.Exit(1)
	}
	if recovered > 0 {
		log.Info("Recovered in-flight jobs", "count", recovered)
	}

	dispatcher := service.NewNotificationDispatcher(
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
	)
	expenseService := service.NewExpenseService(
		repository.NewExpenseRepository(db),
		dispatcher,
		jobs,
		cfg.Notification.ExpenseReminderDays,
		cfg.Location(),
	)

	w := worker.New(jobs, cfg.Queue.MaxAttempts, cfg.Queue.PollTimeout, log)
	w.Register(service.JobExpenseReminder, expenseService.HandleReminderJob)

	if err := w.Run(ctx); err != nil {
		log.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
}
