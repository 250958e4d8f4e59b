package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesWithAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "test"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing gemini.api_key")
	}
	if !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeAppliesEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("CARDSCAN_API_TOKEN", "token-env")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Errorf("APIKey = %q", cfg.Gemini.APIKey)
	}
	if cfg.Paths.APIToken != "token-env" {
		t.Errorf("APIToken = %q", cfg.Paths.APIToken)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[gemini]
api_key = "abc"
model = "gemini-test"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Gemini.APIKey != "abc" || cfg.Gemini.Model != "gemini-test" {
		t.Errorf("gemini config = %+v", cfg.Gemini)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging config = %+v", cfg.Logging)
	}
	// Untouched sections keep their defaults.
	if cfg.Scryfall.BaseURL != defaultScryfallBaseURL {
		t.Errorf("scryfall base url = %q", cfg.Scryfall.BaseURL)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[gemini]
api_key = "abc"

[logging]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[gemini]") {
		t.Error("sample config missing [gemini] section")
	}
}

func TestDatabaseAndLockPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/cardscan-test"
	if got := cfg.DatabasePath(); got != "/tmp/cardscan-test/history.db" {
		t.Errorf("DatabasePath = %q", got)
	}
	if got := cfg.LockPath(); got != "/tmp/cardscan-test/cardscand.lock" {
		t.Errorf("LockPath = %q", got)
	}
}
