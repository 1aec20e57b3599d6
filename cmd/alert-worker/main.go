// The alert-worker consumes budget alert events published by the API server
// and delivers them out of band (currently structured log output, the hook
// point for mail or chat integrations).
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/log"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var delivered atomic.Int64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
			logger.Info("Budget alert delivered",
				log.FieldAccount, msg.Account,
				log.FieldBudgetID, msg.BudgetID,
				log.FieldCategory, msg.Category,
				log.FieldAlertState, msg.State,
				"progress", msg.Progress,
				"spent_cents", msg.SpentCents,
				"limit_cents", msg.LimitCents)
			delivered.Add(1)
			return nil
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				logger.Info("Alert worker heartbeat", "delivered_total", delivered.Load())
			}
		}
	})

	logger.Info("Alert worker started", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Alert worker stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Alert worker stopped gracefully")
}
