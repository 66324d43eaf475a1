package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/refi-calc/refi-calc/internal/logging"
	"github.com/refi-calc/refi-calc/internal/server"
	"github.com/refi-calc/refi-calc/pkg/constants"
	"go.uber.org/zap"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load .env first so env-var overrides can come from a file.
	_ = godotenv.Load()

	configLocation := flag.String("config", "", "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	configPath := *configLocation
	if configPath == "" {
		configPath = os.Getenv("REFI_SERVER_CONFIG")
	}
	if configPath == "" {
		configPath = constants.DefaultServerConfigFile
	}

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", configPath, err)
		return
	}

	logger, err := logging.InitializeLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	interval, err := cfg.RateLimitInterval()
	if err != nil {
		logger.Fatal("invalid rate limit configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	rateLimiter := server.NewRateLimiter(cfg.RateLimit.Requests, interval)
	defer rateLimiter.Stop()

	handler := server.RateLimitMiddleware(rateLimiter,
		server.NewHandler(logger, cfg.BodySizeBytes(), version))

	httpServer := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	case sig := <-quit:
		logger.Info("shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
