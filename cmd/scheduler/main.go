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
	"leadintel_backend/internal/intake"
	"leadintel_backend/platform/config"
	"leadintel_backend/platform/db"
	"leadintel_backend/platform/logger"
	"leadintel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The scheduler binary runs the dispatch poller and worker without the
// HTTP surface. It rebuilds its scheduler state from the audit trail, so
// it only sees leads the api process has persisted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	events.RegisterAuditLog(eventBus, log)
	val := validator.New()

	intakeModule := intake.NewModule(pool, val, log, eventBus, cfg)

	if err := intakeModule.Service().Rehydrate(ctx, 1000); err != nil {
		log.Error("failed to rehydrate scheduler state", "error", err)
		panic("failed to rehydrate scheduler state: " + err.Error())
	}

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

	poller := dispatch.NewPoller(cfg, intakeModule.Service(), client, eventBus, log)
	go poller.Run(ctx)

	worker, err := dispatch.NewWorker(cfg, intakeModule.Service(), sender, waClient, log)
	if err != nil {
		log.Error("failed to initialize dispatch worker", "error", err)
		panic("failed to initialize dispatch worker: " + err.Error())
	}

	worker.Run(ctx)
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
