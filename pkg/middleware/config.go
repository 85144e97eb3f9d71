package middleware

import (
	"errors"
	"os"
	"slices"
	"strconv"
	"strings"
)

// AnyOrigin allows every origin when listed in CORSConfig.Origins.
const AnyOrigin = "*"

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	ExposedHeaders   []string `toml:"exposed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv maps CORS config fields to environment variable names.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	ExposedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields set in overlay. An overlay can enable CORS or
// credentials but never disable them.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = c.Enabled || overlay.Enabled
	c.AllowCredentials = c.AllowCredentials || overlay.AllowCredentials

	for _, f := range []struct{ dst, src *[]string }{
		{&c.Origins, &overlay.Origins},
		{&c.AllowedMethods, &overlay.AllowedMethods},
		{&c.AllowedHeaders, &overlay.AllowedHeaders},
		{&c.ExposedHeaders, &overlay.ExposedHeaders},
	} {
		if *f.src != nil {
			*f.dst = *f.src
		}
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

// AllowsOrigin reports whether origin may read responses.
func (c *CORSConfig) AllowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	return slices.Contains(c.Origins, AnyOrigin) || slices.Contains(c.Origins, origin)
}

func (c *CORSConfig) loadDefaults() {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
	}
	if len(c.ExposedHeaders) == 0 {
		c.ExposedHeaders = []string{"Content-Disposition", RequestIDHeader}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) {
	if v, ok := lookupBool(env.Enabled); ok {
		c.Enabled = v
	}
	if v, ok := lookupList(env.Origins); ok {
		c.Origins = v
	}
	if v, ok := lookupList(env.AllowedMethods); ok {
		c.AllowedMethods = v
	}
	if v, ok := lookupList(env.AllowedHeaders); ok {
		c.AllowedHeaders = v
	}
	if v, ok := lookupList(env.ExposedHeaders); ok {
		c.ExposedHeaders = v
	}
	if v, ok := lookupBool(env.AllowCredentials); ok {
		c.AllowCredentials = v
	}
	if name := env.MaxAge; name != "" {
		if v, err := strconv.Atoi(os.Getenv(name)); err == nil {
			c.MaxAge = v
		}
	}
}

func (c *CORSConfig) validate() error {
	if c.AllowCredentials && slices.Contains(c.Origins, AnyOrigin) {
		return errors.New("allow_credentials cannot be combined with origin *")
	}
	return nil
}

func lookupBool(name string) (bool, bool) {
	if name == "" {
		return false, false
	}
	v, err := strconv.ParseBool(os.Getenv(name))
	return v, err == nil
}

func lookupList(name string) ([]string, bool) {
	if name == "" {
		return nil, false
	}
	raw := os.Getenv(name)
	if raw == "" {
		return nil, false
	}

	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, true
}
