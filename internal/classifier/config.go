package classifier

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/nyaysetu/internal/llm"
)

// Config holds the tunable scoring constants and the fallback service.
type Config struct {
	Threshold        int        `toml:"threshold"`
	ServiceThreshold int        `toml:"service_threshold"`
	NegativeWeight   int        `toml:"negative_weight"`
	Service          llm.Config `toml:"service"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Threshold        string
	ServiceThreshold string
	NegativeWeight   string
	Service          *llm.Env
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	var svcEnv *llm.Env
	if env != nil {
		c.loadEnv(env)
		svcEnv = env.Service
	}
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Service.Finalize(svcEnv); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Threshold != 0 {
		c.Threshold = overlay.Threshold
	}
	if overlay.ServiceThreshold != 0 {
		c.ServiceThreshold = overlay.ServiceThreshold
	}
	if overlay.NegativeWeight != 0 {
		c.NegativeWeight = overlay.NegativeWeight
	}
	c.Service.Merge(&overlay.Service)
}

func (c *Config) loadDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.ServiceThreshold == 0 {
		c.ServiceThreshold = DefaultServiceThreshold
	}
	if c.NegativeWeight == 0 {
		c.NegativeWeight = DefaultNegativeWeight
	}
}

func (c *Config) loadEnv(env *Env) {
	setInt := func(name string, dst *int) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setInt(env.Threshold, &c.Threshold)
	setInt(env.ServiceThreshold, &c.ServiceThreshold)
	setInt(env.NegativeWeight, &c.NegativeWeight)
}

func (c *Config) validate() error {
	if c.Threshold < 1 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be between 1 and 100: %d", c.Threshold)
	}
	if c.ServiceThreshold < 1 || c.ServiceThreshold > 100 {
		return fmt.Errorf("service_threshold must be between 1 and 100: %d", c.ServiceThreshold)
	}
	if c.NegativeWeight < 0 {
		return fmt.Errorf("negative_weight must not be negative: %d", c.NegativeWeight)
	}
	return nil
}
