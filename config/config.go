package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Storage backend selectors.
const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

// Config is loaded from environment variables using the
// github.com/caarlos0/env library. A .env file in the working directory is
// honoured when present.
type Config struct {
	// API is the remote backend configuration.
	API APIConfig `envPrefix:"CONNECTHUB_API_"`

	// Storage selects and configures the persisted key-value backend.
	Storage StorageConfig `envPrefix:"CONNECTHUB_STORAGE_"`

	// Redis is only used when Storage.Backend is "redis".
	Redis RedisConfig `envPrefix:"CONNECTHUB_REDIS_"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"CONNECTHUB_LOG_LEVEL" envDefault:"info"`
}

// APIConfig configures the HTTP client.
type APIConfig struct {
	// BaseURL is the backend REST API root all request paths are joined to.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000/api"`

	// Timeout is the fixed per-request deadline.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// StorageConfig configures persisted storage.
type StorageConfig struct {
	// Backend is "file" or "redis".
	Backend string `env:"BACKEND" envDefault:"file"`

	// DataDir holds the per-key files of the file backend.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`
}

// RedisConfig configures the optional Redis storage backend.
type RedisConfig struct {
	Addr      string `env:"ADDR" envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"connecthub:"`
}

// Load reads configuration from the environment, preceded by a best-effort
// .env load, and applies guardrails.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "[config.Load] env.Parse")
	}
	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = 10 * time.Second
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StorageBackendFile, StorageBackendRedis:
	default:
		c.Storage.Backend = StorageBackendFile
	}

	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data"
	}
}
