package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"soroview/internal/config"
	"soroview/internal/proxy"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.LoadProxy()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Configure logger
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Configuration loaded",
		"listen_addr", cfg.ListenAddr,
		"upstream", cfg.UpstreamGraphQLURL,
		"log_level", cfg.LogLevel,
	)

	// 3. Create the relay server
	relay := proxy.NewRelay(cfg.UpstreamGraphQLURL)
	server := proxy.NewServer(cfg.ListenAddr, relay)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start relay server: %v", err)
	}

	// 4. Wait for interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Warn("Interrupt received, shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down relay server", "error", err)
	}

	slog.Info("Relay stopped")
}
