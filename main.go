package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"streetbazaar/internal/config"
	"streetbazaar/internal/database"
	"streetbazaar/internal/repositories"
	"streetbazaar/internal/seed"
	"streetbazaar/internal/server"
	"streetbazaar/internal/services"
	"streetbazaar/pkg/rabbitmq"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// --- Storage ---
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("store ready", "driver", cfg.DatabaseDriver)

	if cfg.SeedSampleData {
		ctx := context.Background()
		if err := seed.SampleData(ctx, store, services.NewPasswordHasher(cfg.BcryptCost), logger); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	// --- Order events ---
	deps := server.Dependencies{Config: cfg, Store: store, Logger: logger}
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Error("failed to close RabbitMQ client", "error", err)
			}
		}()

		if err := mqClient.ConsumeOrderEvents(rabbitmq.AuditHandler(logger)); err != nil {
			return fmt.Errorf("failed to start RabbitMQ consumer: %w", err)
		}
		deps.Publisher = mqClient
	} else {
		logger.Info("RABBITMQ_URL not set, order events disabled")
	}

	app := server.New(deps)

	// --- Serve until SIGINT/SIGTERM ---
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errGrp, groupCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(func() error {
		logger.Info("starting server", "addr", cfg.AppPort, "api_prefix", cfg.APIPrefix)
		if err := app.Listen(cfg.AppPort); err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down server", "timeout", cfg.ShutdownTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		return nil
	})

	if err := errGrp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}

// openStore returns the repositories for the configured driver. db is nil for
// the in-memory store.
func openStore(cfg *config.Config) (*repositories.Store, *gorm.DB, error) {
	if cfg.DatabaseDriver == "memory" {
		return repositories.NewMemoryStore(), nil, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return repositories.NewGORMStore(db), db, nil
}
