package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"soroview/internal/config"
	"soroview/internal/gateway"
	"soroview/internal/tui"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.LoadViewer()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: soroview <contract-id>")
		os.Exit(1)
	}
	contractID := os.Args[1]

	// 2. Configure logger. The terminal belongs to the UI, so logs go
	// to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

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

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Configuration loaded",
		"graphql_url", cfg.GraphQLURL,
		"timezone", cfg.Timezone,
		"log_level", cfg.LogLevel,
	)

	// 3. Resolve the rendering timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid SOROVIEW_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// The registry may hold non-strkey identifiers, so a malformed
	// contract ID is only worth a warning.
	if err := gateway.ValidateContractID(contractID); err != nil {
		slog.Warn("Contract ID is not a valid strkey", "error", err)
	}

	// 4. Create the gateway client and run the UI
	client := gateway.NewClient(cfg.GraphQLURL, cfg.AuthToken)
	model := tui.NewModel(contractID, client, cfg.Timezone, loc)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}
