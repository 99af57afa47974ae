package cli

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep any real config file out of the test

	config, err := LoadConfig("", "", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.ServerURL != "http://localhost:8080" {
		t.Errorf("Expected default server URL, got %s", config.ServerURL)
	}
	if config.Format != "table" {
		t.Errorf("Expected table format, got %s", config.Format)
	}
	if config.Quiet {
		t.Error("Expected quiet off by default")
	}
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EVENT_INBOX_SERVER_URL", "http://env:1234")

	config, err := LoadConfig("http://flag:9999", "json", true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.ServerURL != "http://flag:9999" {
		t.Errorf("Expected flag to win over env, got %s", config.ServerURL)
	}
	if config.Format != "json" || !config.Quiet {
		t.Errorf("Expected flag overrides applied, got %+v", config)
	}
}

func TestLoadConfig_EnvOverridesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EVENT_INBOX_SERVER_URL", "http://env:1234")
	t.Setenv("EVENT_INBOX_QUIET", "true")

	config, err := LoadConfig("", "", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.ServerURL != "http://env:1234" || !config.Quiet {
		t.Errorf("Expected env overrides applied, got %+v", config)
	}
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadConfig("", "yaml", false); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestLoadConfig_InvalidServerURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadConfig("localhost:8080", "", false); err == nil {
		t.Error("Expected error for URL without scheme")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged, got %q", got)
	}
	if got := truncate("a very long event title here", 10); got != "a very ..." {
		t.Errorf("Expected truncation with ellipsis, got %q", got)
	}
}
