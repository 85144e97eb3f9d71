package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "NYAYSETU_SERVER_HOST"
	EnvServerPort              = "NYAYSETU_SERVER_PORT"
	EnvServerReadTimeout       = "NYAYSETU_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "NYAYSETU_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "NYAYSETU_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "NYAYSETU_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "NYAYSETU_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP server parameters. Timeouts are Go duration strings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration { return duration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return duration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration { return duration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration { return duration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return duration(c.ShutdownTimeout) }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for dst, v := range c.timeouts(overlay) {
		if v != "" {
			*dst = v
		}
	}
}

// timeouts pairs each timeout field of c with the same field of src.
func (c *ServerConfig) timeouts(src *ServerConfig) map[*string]string {
	return map[*string]string{
		&c.ReadTimeout:       src.ReadTimeout,
		&c.ReadHeaderTimeout: src.ReadHeaderTimeout,
		&c.WriteTimeout:      src.WriteTimeout,
		&c.IdleTimeout:       src.IdleTimeout,
		&c.ShutdownTimeout:   src.ShutdownTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	c.Host = or(c.Host, "0.0.0.0")
	if c.Port == 0 {
		c.Port = 8080
	}
	c.ReadTimeout = or(c.ReadTimeout, "15s")
	c.ReadHeaderTimeout = or(c.ReadHeaderTimeout, "5s")
	c.WriteTimeout = or(c.WriteTimeout, "1m")
	c.IdleTimeout = or(c.IdleTimeout, "2m")
	c.ShutdownTimeout = or(c.ShutdownTimeout, "15s")
}

func (c *ServerConfig) loadEnv() {
	c.Host = or(os.Getenv(EnvServerHost), c.Host)
	if port, err := strconv.Atoi(os.Getenv(EnvServerPort)); err == nil {
		c.Port = port
	}
	c.ReadTimeout = or(os.Getenv(EnvServerReadTimeout), c.ReadTimeout)
	c.ReadHeaderTimeout = or(os.Getenv(EnvServerReadHeaderTimeout), c.ReadHeaderTimeout)
	c.WriteTimeout = or(os.Getenv(EnvServerWriteTimeout), c.WriteTimeout)
	c.IdleTimeout = or(os.Getenv(EnvServerIdleTimeout), c.IdleTimeout)
	c.ShutdownTimeout = or(os.Getenv(EnvServerShutdownTimeout), c.ShutdownTimeout)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	fields := []struct {
		name  string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"read_header_timeout", c.ReadHeaderTimeout},
		{"write_timeout", c.WriteTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, f := range fields {
		if _, err := time.ParseDuration(f.value); err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
	}
	return nil
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
