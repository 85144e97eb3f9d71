package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/nyaysetu/pkg/formatting"
	"github.com/JaimeStill/nyaysetu/pkg/middleware"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "NYAYSETU_CORS_ENABLED",
	Origins:          "NYAYSETU_CORS_ORIGINS",
	AllowedMethods:   "NYAYSETU_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "NYAYSETU_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "NYAYSETU_CORS_EXPOSED_HEADERS",
	AllowCredentials: "NYAYSETU_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "NYAYSETU_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "NYAYSETU_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "NYAYSETU_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxBodySize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if size, err := formatting.ParseBytes(c.MaxBodySize); err != nil || size <= 0 {
		return fmt.Errorf("invalid max_body_size: %q", c.MaxBodySize)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("NYAYSETU_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("NYAYSETU_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
