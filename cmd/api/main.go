package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadintel_backend/internal/delivery/email"
	"leadintel_backend/internal/delivery/whatsapp"
	"leadintel_backend/internal/dispatch"
	"leadintel_backend/internal/events"
	apphttp "leadintel_backend/internal/http"
	"leadintel_backend/internal/http/router"
	"leadintel_backend/internal/intake"
	"leadintel_backend/platform/config"
	"leadintel_backend/platform/db"
	"leadintel_backend/platform/logger"
	"leadintel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	events.RegisterAuditLog(eventBus, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	intakeModule := intake.NewModule(pool, val, log, eventBus, cfg)

	// Rebuild scheduler state from the audit trail after a restart.
	if err := intakeModule.Service().Rehydrate(ctx, 1000); err != nil {
		log.Error("failed to rehydrate scheduler state", "error", err)
	}

	// ========================================================================
	// Dispatch Layer (optional, requires Redis)
	// ========================================================================

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.GetRedisURL() != "" {
		client, err := dispatch.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize dispatch client", "error", err)
			panic("failed to initialize dispatch client: " + err.Error())
		}
		defer func() { _ = client.Close() }()

		var sender email.Sender = email.NoopSender{}
		if cfg.GetEmailEnabled() {
			sender = email.NewSMTPSender(cfg)
		}
		waClient := whatsapp.NewClient(cfg, log)

		worker, err := dispatch.NewWorker(cfg, intakeModule.Service(), sender, waClient, log)
		if err != nil {
			log.Error("failed to initialize dispatch worker", "error", err)
			panic("failed to initialize dispatch worker: " + err.Error())
		}

		poller := dispatch.NewPoller(cfg, intakeModule.Service(), client, eventBus, log)
		group.Go(func() error {
			poller.Run(groupCtx)
			return nil
		})
		group.Go(func() error {
			worker.Run(groupCtx)
			return nil
		})
		log.Info("dispatch layer started", "queue", cfg.AsynqQueueName, "poll_interval", cfg.PollInterval.String())
	} else {
		log.Warn("REDIS_URL not configured; follow-up dispatch disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			intakeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
		_ = group.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
