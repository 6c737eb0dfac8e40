package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/kos-management/internal/auth"
	"github.com/segyhp/kos-management/internal/config"
	"github.com/segyhp/kos-management/internal/handler"
	"github.com/segyhp/kos-management/internal/queue"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/internal/service"
	"github.com/segyhp/kos-management/pkg/logger"
)

const devJWTSecret = "kos-development-secret"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	loc := cfg.Location()

	ctx := context.Background()

	// Initialize database
	db, err := repository.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := queue.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("Failed to initialize redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET is empty, using the development secret")
		secret = devJWTSecret
	}
	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenTTL)

	// Initialize repositories
	paymentRepo := repository.NewPaymentRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	userRepo := repository.NewUserRepository(db)

	jobs := queue.NewRedisQueue(redisClient, cfg.Queue.Name)

	// Initialize services
	dispatcher := service.NewNotificationDispatcher(userRepo, notificationRepo)
	paymentService := service.NewPaymentService(paymentRepo, tenantRepo, roomRepo, loc,
		dispatcher,
		service.NewAuditListener(log),
	)
	notificationService := service.NewNotificationService(notificationRepo, loc)
	roomService := service.NewRoomService(roomRepo, tenantRepo, loc)
	authService := service.NewAuthService(userRepo, tokens)
	expenseService := service.NewExpenseService(expenseRepo, dispatcher, jobs, cfg.Notification.ExpenseReminderDays, loc)

	router := handler.NewRouter(handler.Handlers{
		Payments:      handler.NewPaymentHandler(paymentService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Rooms:         handler.NewRoomHandler(roomService),
		Auth:          handler.NewAuthHandler(authService),
		Expenses:      handler.NewExpenseHandler(expenseService),
		Health:        handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout),
	}, tokens)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server exited")
}
