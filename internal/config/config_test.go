package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "./event-inbox.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLMBaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLMModel)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, int64(50), cfg.ScanMaxEmails)
	assert.Equal(t, 10, cfg.ScanConcurrency)
	assert.Equal(t, 30*time.Minute, cfg.ScanCheckInterval)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("EVENT_INBOX_SERVER_PORT", "9090")
	t.Setenv("EVENT_INBOX_LLM_MODEL", "llama-3.3-70b-versatile")
	t.Setenv("EVENT_INBOX_SCAN_MAX_EMAILS", "25")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLMModel)
	assert.Equal(t, int64(25), cfg.ScanMaxEmails)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("EVENT_INBOX_LOGGING_LEVEL", "verbose")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	t.Setenv("EVENT_INBOX_SCAN_CONCURRENCY", "-1")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestValidateScanCredentials(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateScanCredentials())

	cfg.GmailAccessToken = "token"
	err := cfg.ValidateScanCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM API key")

	cfg.LLMAPIKey = "key"
	assert.NoError(t, cfg.ValidateScanCredentials())
}
