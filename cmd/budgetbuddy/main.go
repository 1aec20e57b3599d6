package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgetbuddy/internal/alerts"
	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/backend"
	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/config"
	apphttp "budgetbuddy/internal/http"
	"budgetbuddy/internal/insight"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err.Error())
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err.Error())
			}
		}
	}()
	logger.Info("Data backend initialized", "backend", cfg.DataBackend)

	sessions := session.NewManager()

	cacheManager := cache.NewManager()
	cacheManager.Register(sessions)
	cacheManager.StartCleanup(5 * time.Minute)
	defer cacheManager.Stop()

	// AMQP is optional: without a broker URL alerts stay in-session only.
	var notifier *alerts.Notifier
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer amqpClient.Close()
		notifier = alerts.NewNotifier(amqpClient)
		logger.Info("AMQP alert publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		notifier = alerts.NewNotifier(nil)
		logger.Info("AMQP disabled, budget alerts stay in-session")
	}

	// Insights are optional too: no API key means the endpoint reports 503.
	var insights *insight.Service
	if cfg.GeminiAPIKey != "" {
		gemini, err := insight.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer gemini.Close()
		insights = insight.NewService(gemini)
		logger.Info("AI insight generation enabled")
	} else {
		logger.Info("GEMINI_API_KEY not set, insight generation disabled")
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Store:          result.Store,
		Sessions:       sessions,
		Insights:       insights,
		InsightTimeout: cfg.GeminiTimeout,
		Notifier:       notifier,
		Logger:         logger.WithComponent(log.ComponentHTTP),
		RateLimit:      cfg.RateLimitPerMinute,
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting budgetbuddy server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
