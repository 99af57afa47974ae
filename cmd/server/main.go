package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"event-inbox/internal/calendar"
	"event-inbox/internal/config"
	"event-inbox/internal/database"
	"event-inbox/internal/email"
	"event-inbox/internal/extractor"
	"event-inbox/internal/handlers"
	"event-inbox/internal/server"
	"event-inbox/internal/workers"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	logger.Info("Database initialized", "path", cfg.DBPath)

	// The review API works without mailbox credentials; launching does not.
	var runner handlers.LaunchRunner
	if err := cfg.ValidateScanCredentials(); err != nil {
		logger.Warn("Scan credentials missing, launch endpoint disabled", "reason", err)
	} else {
		processor, err := buildProcessor(cfg, db, logger)
		if err != nil {
			log.Fatalf("Failed to build scan pipeline: %v", err)
		}
		runner = processor
	}

	var pusher handlers.CalendarPusher
	if cfg.CalendarAccessToken == "" {
		logger.Warn("Calendar credentials missing, sync endpoint disabled")
	} else {
		client, err := calendar.NewClient(context.Background(), cfg.CalendarAccessToken, cfg.CalendarID, cfg.GmailUserEmail, logger)
		if err != nil {
			log.Fatalf("Failed to build calendar client: %v", err)
		}
		pusher = client
	}

	router := server.NewRouter(db, runner, pusher, logger)
	srv := server.New(cfg.ServerHost+":"+cfg.ServerPort, router, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildProcessor(cfg *config.Config, db *database.DB, logger *slog.Logger) (*workers.LaunchProcessor, error) {
	fetcher, err := email.NewGmailFetcher(context.Background(), email.Credentials{
		AccessToken: cfg.GmailAccessToken,
		UserEmail:   cfg.GmailUserEmail,
	}, logger)
	if err != nil {
		return nil, err
	}

	llm, err := extractor.NewGroqClient(extractor.Config{
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
		Timeout:     cfg.LLMTimeout,
		RetryCount:  cfg.LLMRetryCount,
	}, logger)
	if err != nil {
		return nil, err
	}

	return workers.NewLaunchProcessor(fetcher, llm, db, workers.LaunchConfig{
		MaxEmails:         cfg.ScanMaxEmails,
		LookbackDays:      cfg.ScanLookbackDays,
		Concurrency:       cfg.ScanConcurrency,
		ProcessingTimeout: cfg.ScanProcessingTimeout,
	}, logger), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
