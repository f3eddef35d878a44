package logging

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// DefaultRedact lists attribute keys masked unless configured otherwise.
var DefaultRedact = []string{"authorization", "token", "password", "secret", "dsn"}

// Env maps environment variable names for logging configuration.
type Env struct {
	Level   string
	Format  string
	Source  string
	Service string
	Redact  string
}

// Config holds logging configuration settings.
type Config struct {
	Level   Level    `toml:"level"`
	Format  Format   `toml:"format"`
	Source  bool     `toml:"source"`
	Service string   `toml:"service"`
	Redact  []string `toml:"redact"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.Source {
		c.Source = true
	}
	if overlay.Service != "" {
		c.Service = overlay.Service
	}
	if overlay.Redact != nil {
		c.Redact = overlay.Redact
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Service == "" {
		c.Service = "lab-catalog"
	}
	if c.Redact == nil {
		c.Redact = slices.Clone(DefaultRedact)
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Level != "" {
		if v := os.Getenv(env.Level); v != "" {
			c.Level = Level(v)
		}
	}
	if env.Format != "" {
		if v := os.Getenv(env.Format); v != "" {
			c.Format = Format(v)
		}
	}
	if env.Source != "" {
		if v := os.Getenv(env.Source); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Source = b
			}
		}
	}
	if env.Service != "" {
		if v := os.Getenv(env.Service); v != "" {
			c.Service = v
		}
	}
	if env.Redact != "" {
		if v := os.Getenv(env.Redact); v != "" {
			c.Redact = strings.Split(v, ",")
			for i := range c.Redact {
				c.Redact[i] = strings.TrimSpace(c.Redact[i])
			}
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}
