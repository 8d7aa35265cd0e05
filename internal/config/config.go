package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/wanderlog/expenseclient/internal/logger"
)

// Backend selects how the services are bound at construction time.
const (
	BackendMock = "mock"
	BackendAPI  = "api"
)

// Store drivers for the mock backend.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type StoreConfig struct {
	Driver string `toml:"driver"`
	Source string `toml:"source"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Config struct {
	Backend     string        `toml:"backend"`
	Store       StoreConfig   `toml:"store"`
	API         APIConfig     `toml:"api"`
	PageSize    int           `toml:"page_size"`
	SessionFile string        `toml:"session_file"`
	MockLatency bool          `toml:"mock_latency"`
	Logger      logger.Config `toml:"logger"`
}

const (
	defaultBackend   = BackendMock
	defaultStore     = StoreMemory
	defaultSource    = ":memory:"
	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 10
	defaultPageSize  = 10
	defaultLogLevel  = logger.LevelInfo
	defaultLogFormat = logger.FormatText
	defaultLogOutput = "stderr"
)

// Parse reads the TOML config file when it exists and applies
// EXPENSECLIENT_* environment overrides on top. A missing file is not an
// error; defaults cover every field.
func Parse(path string) (*Config, error) {
	conf := &Config{
		Backend: defaultBackend,
		Store: StoreConfig{
			Driver: defaultStore,
			Source: defaultSource,
		},
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeout,
		},
		PageSize:    defaultPageSize,
		MockLatency: true,
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
	}

	if _, err := os.Stat(path); err == nil {
		if _, err = toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	conf.parseEnv()

	if conf.Backend != BackendMock && conf.Backend != BackendAPI {
		return nil, fmt.Errorf("invalid backend %q: must be %q or %q", conf.Backend, BackendMock, BackendAPI)
	}

	if conf.Store.Driver != StoreMemory && conf.Store.Driver != StoreSQLite {
		return nil, fmt.Errorf("invalid store driver %q: must be %q or %q", conf.Store.Driver, StoreMemory, StoreSQLite)
	}

	return conf, nil
}

func (c *Config) parseEnv() {
	if backend := os.Getenv("EXPENSECLIENT_BACKEND"); backend != "" {
		c.Backend = backend
	}

	if driver := os.Getenv("EXPENSECLIENT_STORE"); driver != "" {
		c.Store.Driver = driver
	}

	if source := os.Getenv("EXPENSECLIENT_STORE_SOURCE"); source != "" {
		c.Store.Source = source
	}

	if url := os.Getenv("EXPENSECLIENT_API_URL"); url != "" {
		c.API.BaseURL = url
	}

	if size := os.Getenv("EXPENSECLIENT_PAGE_SIZE"); size != "" {
		if parsed, err := strconv.Atoi(size); err == nil && parsed > 0 {
			c.PageSize = parsed
		}
	}

	if file := os.Getenv("EXPENSECLIENT_SESSION_FILE"); file != "" {
		c.SessionFile = file
	}

	if level := os.Getenv("EXPENSECLIENT_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("EXPENSECLIENT_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("EXPENSECLIENT_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}
}
