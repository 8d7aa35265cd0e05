package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wanderlog/expenseclient/internal/logger"
)

func TestParseMissingFileUsesDefaults(t *testing.T) {
	conf, err := Parse(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Missing config file must not error, got %v", err)
	}

	if conf.Backend != BackendMock {
		t.Errorf("Expected mock backend, got %q", conf.Backend)
	}
	if conf.Store.Driver != StoreMemory {
		t.Errorf("Expected memory store, got %q", conf.Store.Driver)
	}
	if conf.Store.Source != ":memory:" {
		t.Errorf("Expected :memory: source, got %q", conf.Store.Source)
	}
	if conf.API.BaseURL != "http://localhost:8000" {
		t.Errorf("Unexpected base URL %q", conf.API.BaseURL)
	}
	if conf.API.TimeoutSeconds != 10 {
		t.Errorf("Expected 10s timeout, got %d", conf.API.TimeoutSeconds)
	}
	if conf.PageSize != 10 {
		t.Errorf("Expected page size 10, got %d", conf.PageSize)
	}
	if !conf.MockLatency {
		t.Error("Expected mock latency on by default")
	}
	if conf.Logger.Level != logger.LevelInfo {
		t.Errorf("Expected info log level, got %q", conf.Logger.Level)
	}
}

func TestParseFile(t *testing.T) {
	content := `
backend = "api"
page_size = 25
mock_latency = false

[store]
driver = "sqlite"
source = "expenses.db"

[api]
base_url = "https://expenses.example.com"
timeout_seconds = 5

[logger]
level = "debug"
format = "json"
output = "stdout"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.Backend != BackendAPI {
		t.Errorf("Expected api backend, got %q", conf.Backend)
	}
	if conf.Store.Driver != StoreSQLite || conf.Store.Source != "expenses.db" {
		t.Errorf("Unexpected store config %+v", conf.Store)
	}
	if conf.API.BaseURL != "https://expenses.example.com" || conf.API.TimeoutSeconds != 5 {
		t.Errorf("Unexpected API config %+v", conf.API)
	}
	if conf.PageSize != 25 {
		t.Errorf("Expected page size 25, got %d", conf.PageSize)
	}
	if conf.MockLatency {
		t.Error("Expected mock latency off")
	}
	if conf.Logger.Level != logger.LevelDebug || conf.Logger.Format != logger.FormatJSON {
		t.Errorf("Unexpected logger config %+v", conf.Logger)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	content := `
backend = "mock"
page_size = 25
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("EXPENSECLIENT_BACKEND", "api")
	t.Setenv("EXPENSECLIENT_API_URL", "https://override.example.com")
	t.Setenv("EXPENSECLIENT_PAGE_SIZE", "50")
	t.Setenv("EXPENSECLIENT_LOG_LEVEL", "error")

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.Backend != BackendAPI {
		t.Errorf("Expected env to override backend, got %q", conf.Backend)
	}
	if conf.API.BaseURL != "https://override.example.com" {
		t.Errorf("Expected env to override base URL, got %q", conf.API.BaseURL)
	}
	if conf.PageSize != 50 {
		t.Errorf("Expected env to override page size, got %d", conf.PageSize)
	}
	if conf.Logger.Level != logger.LevelError {
		t.Errorf("Expected env to override log level, got %q", conf.Logger.Level)
	}
}

func TestParseInvalidPageSizeEnvIgnored(t *testing.T) {
	t.Setenv("EXPENSECLIENT_PAGE_SIZE", "zero")

	conf, err := Parse(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}
	if conf.PageSize != 10 {
		t.Errorf("Expected default page size, got %d", conf.PageSize)
	}
}

func TestParseInvalidBackend(t *testing.T) {
	t.Setenv("EXPENSECLIENT_BACKEND", "carrier-pigeon")

	if _, err := Parse(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestParseInvalidStoreDriver(t *testing.T) {
	t.Setenv("EXPENSECLIENT_STORE", "postgres")

	if _, err := Parse(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected an error for an unknown store driver")
	}
}
