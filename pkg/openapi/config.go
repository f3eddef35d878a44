package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config controls the published API document. Servers are listed after the
// service domain.
type Config struct {
	Enabled     *bool    `toml:"enabled"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

type ConfigEnv struct {
	Enabled     string
	Title       string
	Description string
	Servers     string
}

// Serve reports whether the document endpoint should be mounted.
func (c *Config) Serve() bool {
	return c.Enabled == nil || *c.Enabled
}

// Apply writes title, description, and servers onto spec.
func (c *Config) Apply(spec *Spec, domain string) {
	spec.Info.Title = c.Title
	spec.SetDescription(c.Description)
	spec.AddServer(domain)
	for _, s := range c.Servers {
		if s != domain {
			spec.AddServer(s)
		}
	}
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Servers != nil {
		c.Servers = overlay.Servers
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Lab Catalog API"
	}
	if c.Description == "" {
		c.Description = "Research article catalog with Word document import."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := lookup(env.Enabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &b
		}
	}
	if v := lookup(env.Title); v != "" {
		c.Title = v
	}
	if v := lookup(env.Description); v != "" {
		c.Description = v
	}
	if v := lookup(env.Servers); v != "" {
		c.Servers = nil
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Servers = append(c.Servers, s)
			}
		}
	}
}

func (c *Config) validate() error {
	for _, s := range c.Servers {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid server url %q", s)
		}
	}
	return nil
}

func lookup(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}
