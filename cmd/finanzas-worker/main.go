package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finanzas/internal/amqp"
	"finanzas/internal/backend"
	"finanzas/internal/config"
	"finanzas/internal/ledger"
	"finanzas/internal/telegram"
	"finanzas/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finanzas-worker")

	cfg := config.Load()
	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	res, err := backend.Create(context.Background(), backend.Config{
		Type:                     backend.Type(cfg.DataBackend),
		SQLiteDBPath:             cfg.SQLiteDBPath,
		GoogleSpreadsheetID:      cfg.GoogleSpreadsheetID,
		GoogleServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: cfg.GoogleServiceAccountFile,
		StoreTimeout:             cfg.StoreTimeout,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	sender := telegram.NewClient(cfg.TelegramAPIBase, cfg.TelegramToken)
	alerter := worker.NewAlerter(
		ledger.NewAggregator(res.Store),
		ledger.NewRegistry(res.Store),
		sender,
		cfg.AlertChatID,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeMovements(gctx, func(msg *amqp.MovementMessage) error {
			return alerter.HandleMovement(gctx, msg)
		})
	})

	// Periodic backstop for messages lost while the worker was down.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.AlertInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				now := time.Now()
				if err := alerter.CheckAll(gctx, now.Year(), int(now.Month())); err != nil {
					logger.Error("Periodic budget check failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
