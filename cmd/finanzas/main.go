package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finanzas/internal/amqp"
	"finanzas/internal/backend"
	"finanzas/internal/bot"
	"finanzas/internal/config"
	"finanzas/internal/ledger"
	"finanzas/internal/telegram"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
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

	// Movement events are optional; without AMQP the bot runs standalone.
	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	recorder := ledger.NewRecorder(res.Store, events, cfg.DefaultUser)
	router := bot.NewRouter(
		recorder,
		ledger.NewAggregator(res.Store),
		ledger.NewRegistry(res.Store),
		ledger.NewScheduler(recorder),
		cfg.DefaultUser,
	)

	sender := telegram.NewClient(cfg.TelegramAPIBase, cfg.TelegramToken)

	// The token in the path keeps the endpoint private; Telegram is the only
	// party that knows the full URL.
	webhookPath := "/webhook/" + cfg.TelegramToken
	srv := telegram.NewServer(":"+cfg.Port, webhookPath, router, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finanzas bot", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
