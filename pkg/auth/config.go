package auth

import (
	"fmt"
	"os"
)

// Env maps environment variable names for auth configuration.
type Env struct {
	Secret    string
	Issuer    string
	AdminRole string
}

// Config holds token verification settings.
type Config struct {
	Secret    string `toml:"secret"`
	Issuer    string `toml:"issuer"`
	AdminRole string `toml:"admin_role"`
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.AdminRole != "" {
		c.AdminRole = overlay.AdminRole
	}
}

func (c *Config) loadDefaults() {
	if c.AdminRole == "" {
		c.AdminRole = "admin"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.AdminRole != "" {
		if v := os.Getenv(env.AdminRole); v != "" {
			c.AdminRole = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("secret must be at least 16 bytes")
	}
	return nil
}
