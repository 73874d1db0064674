package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"nexcrm/internal/amqp"
	"nexcrm/internal/config"
	"nexcrm/internal/logging"
	"nexcrm/internal/services"
	"nexcrm/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logging.Setup()
	logger := slog.Default()

	logger.Info("Starting occurrence-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteRepo.Close()

	// Created payments are announced over AMQP so the export worker picks
	// them up immediately.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing in SQLite-only mode", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized")
		}
	} else {
		logger.Info("AMQP disabled - payments export via periodic scan only")
	}

	var publisher services.PaymentPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}
	paymentService := services.NewPaymentService(sqliteRepo, publisher)
	processor := services.NewOccurrenceProcessor(sqliteRepo, paymentService)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Occurrence processor configured",
		"interval", cfg.OccurrenceInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	logger.Info("Running initial occurrence processing...")
	if count, err := processor.ProcessDueMeetings(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", "error", err)
	} else {
		logger.Info("Initial processing complete", "payments_created", count)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(cfg.OccurrenceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				count, err := processor.ProcessDueMeetings(ctx, now)
				if err != nil {
					logger.Error("Periodic processing failed", "error", err)
					continue
				}
				logger.Info("Periodic processing complete",
					"payments_created", count,
					"next_check", now.Add(cfg.OccurrenceInterval).Format("15:04:05"))
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Occurrence-worker shutdown complete")
}
