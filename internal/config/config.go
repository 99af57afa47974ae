package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBPath string

	// Logging
	LogLevel string

	// Gmail access
	GmailAccessToken string
	GmailUserEmail   string

	// LLM configuration
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration
	LLMRetryCount  int

	// Calendar access
	CalendarAccessToken string
	CalendarID          string

	// Scan configuration
	ScanMaxEmails         int64
	ScanLookbackDays      int
	ScanConcurrency       int
	ScanCheckInterval     time.Duration
	ScanProcessingTimeout time.Duration
}

// Load loads configuration using Viper: defaults, then an optional config
// file, then EVENT_INBOX_* environment variables.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)
	setupEnvBinding(v)

	if err := loadConfigFile(v); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	config := &Config{
		ServerHost: v.GetString("server.host"),
		ServerPort: v.GetString("server.port"),

		DBPath: v.GetString("database.path"),

		LogLevel: v.GetString("logging.level"),

		GmailAccessToken: v.GetString("gmail.access_token"),
		GmailUserEmail:   v.GetString("gmail.user_email"),

		LLMAPIKey:      v.GetString("llm.api_key"),
		LLMBaseURL:     v.GetString("llm.base_url"),
		LLMModel:       v.GetString("llm.model"),
		LLMMaxTokens:   v.GetInt("llm.max_tokens"),
		LLMTemperature: v.GetFloat64("llm.temperature"),
		LLMTimeout:     v.GetDuration("llm.timeout"),
		LLMRetryCount:  v.GetInt("llm.retry_count"),

		CalendarAccessToken: v.GetString("calendar.access_token"),
		CalendarID:          v.GetString("calendar.id"),

		ScanMaxEmails:         v.GetInt64("scan.max_emails"),
		ScanLookbackDays:      v.GetInt("scan.lookback_days"),
		ScanConcurrency:       v.GetInt("scan.concurrency"),
		ScanCheckInterval:     v.GetDuration("scan.check_interval"),
		ScanProcessingTimeout: v.GetDuration("scan.processing_timeout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.path", "./event-inbox.db")

	v.SetDefault("logging.level", "info")

	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", "120s")
	v.SetDefault("llm.retry_count", 2)

	v.SetDefault("calendar.id", "primary")

	v.SetDefault("scan.max_emails", 50)
	v.SetDefault("scan.lookback_days", 7)
	v.SetDefault("scan.concurrency", 10)
	v.SetDefault("scan.check_interval", "30m")
	v.SetDefault("scan.processing_timeout", "5m")
}

// setupEnvBinding sets up environment variable binding
func setupEnvBinding(v *viper.Viper) {
	v.SetEnvPrefix("EVENT_INBOX")
	v.AutomaticEnv()

	envBindings := map[string]string{
		"server.host":             "SERVER_HOST",
		"server.port":             "SERVER_PORT",
		"database.path":           "DATABASE_PATH",
		"logging.level":           "LOGGING_LEVEL",
		"gmail.access_token":      "GMAIL_ACCESS_TOKEN",
		"gmail.user_email":        "GMAIL_USER_EMAIL",
		"llm.api_key":             "LLM_API_KEY",
		"llm.base_url":            "LLM_BASE_URL",
		"llm.model":               "LLM_MODEL",
		"llm.max_tokens":          "LLM_MAX_TOKENS",
		"llm.temperature":         "LLM_TEMPERATURE",
		"llm.timeout":             "LLM_TIMEOUT",
		"llm.retry_count":         "LLM_RETRY_COUNT",
		"calendar.access_token":   "CALENDAR_ACCESS_TOKEN",
		"calendar.id":             "CALENDAR_ID",
		"scan.max_emails":         "SCAN_MAX_EMAILS",
		"scan.lookback_days":      "SCAN_LOOKBACK_DAYS",
		"scan.concurrency":        "SCAN_CONCURRENCY",
		"scan.check_interval":     "SCAN_CHECK_INTERVAL",
		"scan.processing_timeout": "SCAN_PROCESSING_TIMEOUT",
	}

	for configKey, envSuffix := range envBindings {
		v.BindEnv(configKey, "EVENT_INBOX_"+envSuffix)
	}
}

// loadConfigFile reads an optional config file. A missing file is fine; a
// broken one is not.
func loadConfigFile(v *viper.Viper) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		return v.ReadInConfig()
	}

	v.SetConfigName("event-inbox")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/event-inbox")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

// validate checks the always-required settings
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.ScanConcurrency < 1 {
		return fmt.Errorf("scan concurrency must be at least 1")
	}
	return nil
}

// ValidateScanCredentials checks the settings required to run the pipeline.
// The review API can run without them; a scan cannot.
func (c *Config) ValidateScanCredentials() error {
	if c.GmailAccessToken == "" {
		return fmt.Errorf("gmail access token is required")
	}
	if c.LLMAPIKey == "" {
		return fmt.Errorf("LLM API key is required")
	}
	return nil
}
