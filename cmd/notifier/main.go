// Command notifier consumes fintrack domain events from AMQP and logs the
// ones a user would want to hear about.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/notifier"
	"github.com/mmynk/fintrack/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL is required")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	slog.Info("Notifier started", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := client.Consume(ctx, notifier.New(nil).Handle); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Consumer failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Notifier stopped")
}
