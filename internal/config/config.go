// Package config loads the service configuration from TOML files and
// NYAYSETU_ environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/internal/llm"
	"github.com/JaimeStill/nyaysetu/pkg/database"
	"github.com/JaimeStill/nyaysetu/pkg/logging"
	"github.com/JaimeStill/nyaysetu/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvNyaysetuEnv             = "NYAYSETU_ENV"
	EnvNyaysetuShutdownTimeout = "NYAYSETU_SHUTDOWN_TIMEOUT"
	EnvNyaysetuVersion         = "NYAYSETU_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "NYAYSETU_DB_HOST",
	Port:            "NYAYSETU_DB_PORT",
	Name:            "NYAYSETU_DB_NAME",
	User:            "NYAYSETU_DB_USER",
	Password:        "NYAYSETU_DB_PASSWORD",
	SSLMode:         "NYAYSETU_DB_SSL_MODE",
	MaxOpenConns:    "NYAYSETU_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "NYAYSETU_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "NYAYSETU_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "NYAYSETU_DB_CONN_TIMEOUT",
	AutoMigrate:     "NYAYSETU_DB_AUTO_MIGRATE",
}

var storageEnv = &storage.Env{
	ContainerName:    "NYAYSETU_STORAGE_CONTAINER_NAME",
	ConnectionString: "NYAYSETU_STORAGE_CONNECTION_STRING",
	AccountURL:       "NYAYSETU_STORAGE_ACCOUNT_URL",
}

var loggingEnv = &logging.Env{
	Level:  "NYAYSETU_LOG_LEVEL",
	Format: "NYAYSETU_LOG_FORMAT",
}

var classifierEnv = &classifier.Env{
	Threshold:        "NYAYSETU_CLASSIFIER_THRESHOLD",
	ServiceThreshold: "NYAYSETU_CLASSIFIER_SERVICE_THRESHOLD",
	NegativeWeight:   "NYAYSETU_CLASSIFIER_NEGATIVE_WEIGHT",
	Service: &llm.Env{
		Provider: "NYAYSETU_SERVICE_PROVIDER",
		BaseURL:  "NYAYSETU_SERVICE_BASE_URL",
		Model:    "NYAYSETU_SERVICE_MODEL",
		APIKey:   "NYAYSETU_SERVICE_API_KEY",
		Timeout:  "NYAYSETU_SERVICE_TIMEOUT",
	},
}

// Config is the root configuration for the NyaySetu service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Logging         logging.Config    `toml:"logging"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	API             APIConfig         `toml:"api"`
	Classifier      classifier.Config `toml:"classifier"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the NYAYSETU_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvNyaysetuEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile is Load with an explicit base file path. A missing file is not
// an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadCore finalizes only the sections the offline tools need: logging
// and the classifier. Database and storage are left untouched.
func LoadCore(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.Logging.Finalize(loggingEnv); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if err := cfg.Classifier.Finalize(classifierEnv); err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	cfg.loadDefaults()
	cfg.loadEnv()
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Classifier.Merge(&overlay.Classifier)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvNyaysetuShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvNyaysetuVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvNyaysetuEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
