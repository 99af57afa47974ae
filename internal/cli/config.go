package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `json:"server_url"`
	Format    string `json:"format"`
	Quiet     bool   `json:"quiet"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://localhost:8080",
		Format:    "table",
		Quiet:     false,
	}
}

// LoadConfig loads configuration from file, environment variables, and CLI
// flags, in increasing priority.
func LoadConfig(serverFlag, formatFlag string, quietFlag bool) (*Config, error) {
	config := DefaultConfig()

	// Config file is optional.
	_ = config.loadFromFile()

	config.loadFromEnv()

	if serverFlag != "" {
		config.ServerURL = serverFlag
	}
	if formatFlag != "" {
		config.Format = formatFlag
	}
	if quietFlag {
		config.Quiet = quietFlag
	}

	return config, config.validate()
}

// loadFromFile loads configuration from ~/.event-inbox.json
func (c *Config) loadFromFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".event-inbox.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// loadFromEnv overrides configuration from environment variables
func (c *Config) loadFromEnv() {
	if url := os.Getenv("EVENT_INBOX_SERVER_URL"); url != "" {
		c.ServerURL = url
	}
	if format := os.Getenv("EVENT_INBOX_FORMAT"); format != "" {
		c.Format = format
	}
	if quiet := os.Getenv("EVENT_INBOX_QUIET"); quiet == "true" || quiet == "1" {
		c.Quiet = true
	}
}

// validate checks the configuration values
func (c *Config) validate() error {
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server URL must start with http:// or https://")
	}
	switch c.Format {
	case "table", "json":
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	return nil
}
