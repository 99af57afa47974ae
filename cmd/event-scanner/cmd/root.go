// Copyright 2024 Event Inbox
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"event-inbox/internal/config"
	"event-inbox/internal/database"
	"event-inbox/internal/email"
	"event-inbox/internal/extractor"
	"event-inbox/internal/workers"
)

const (
	// Version information
	Version   = "1.0.0"
	BuildDate = "development"
)

var (
	configFile string
	once       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "event-scanner",
	Short: "Background scanner that turns inbox email into suggested events",
	Long: `Event Scanner Service v1.0.0

DESCRIPTION:
    Periodically reads a Gmail inbox, extracts event announcements with a
    language model, and stores them as pending suggested events for review.

CONFIGURATION:
    Configuration comes from EVENT_INBOX_* environment variables or an
    event-inbox.yaml config file:

    Gmail Configuration:
        EVENT_INBOX_GMAIL_ACCESS_TOKEN  - OAuth2 access token (required)
        EVENT_INBOX_GMAIL_USER_EMAIL    - Mailbox to scan (default: me)

    LLM Configuration:
        EVENT_INBOX_LLM_API_KEY         - API key (required)
        EVENT_INBOX_LLM_BASE_URL        - OpenAI-compatible endpoint (default: Groq)
        EVENT_INBOX_LLM_MODEL           - Model name (default: llama-3.1-8b-instant)

    Scan Configuration:
        EVENT_INBOX_SCAN_MAX_EMAILS     - Emails per scan (default: 50)
        EVENT_INBOX_SCAN_LOOKBACK_DAYS  - How far back to scan (default: 7)
        EVENT_INBOX_SCAN_CONCURRENCY    - Parallel extractions (default: 10)
        EVENT_INBOX_SCAN_CHECK_INTERVAL - Time between scans (default: 30m)

EXAMPLES:
    # Run the background scan loop
    export EVENT_INBOX_GMAIL_ACCESS_TOKEN="..."
    export EVENT_INBOX_LLM_API_KEY="..."
    event-scanner

    # Run a single scan and exit
    event-scanner --once`,
	Version: Version,
	RunE:    runScanner,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	fang.Execute(context.Background(), rootCmd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&once, "once", false, "run a single scan and exit")
}

// runScanner is the main execution function for the scanner service
func runScanner(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if configFile != "" {
		v.Set("config", configFile)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateScanCredentials(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("Starting event scanner service",
		"version", Version,
		"build_date", BuildDate,
		"check_interval", cfg.ScanCheckInterval,
		"once", once)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	fetcher, err := email.NewGmailFetcher(cmd.Context(), email.Credentials{
		AccessToken: cfg.GmailAccessToken,
		UserEmail:   cfg.GmailUserEmail,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create mailbox client: %w", err)
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
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	processor := workers.NewLaunchProcessor(fetcher, llm, db, workers.LaunchConfig{
		MaxEmails:         cfg.ScanMaxEmails,
		LookbackDays:      cfg.ScanLookbackDays,
		Concurrency:       cfg.ScanConcurrency,
		ProcessingTimeout: cfg.ScanProcessingTimeout,
	}, logger)

	if once {
		summary, err := processor.Run(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("Scan complete",
			"emails_fetched", summary.EmailsFetched,
			"events_inserted", summary.EventsInserted,
			"failures", summary.Failures)
		return nil
	}

	scanner := workers.NewScanner(processor, workers.ScannerConfig{
		CheckInterval: cfg.ScanCheckInterval,
	}, logger)
	scanner.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Received signal, shutting down", "signal", sig.String())
	scanner.Stop()
	return nil
}
