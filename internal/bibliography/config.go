package bibliography

import (
	"errors"
	"os"
	"strings"
)

// Env maps environment variable names for parsing configuration.
type Env struct {
	JournalSuffixes string
}

// Config controls field parsing.
type Config struct {
	JournalSuffixes []string `toml:"journal_suffixes"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if len(overlay.JournalSuffixes) > 0 {
		c.JournalSuffixes = overlay.JournalSuffixes
	}
}

func (c *Config) loadDefaults() {
	if len(c.JournalSuffixes) == 0 {
		c.JournalSuffixes = append([]string(nil), DefaultJournalSuffixes...)
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.JournalSuffixes == "" {
		return
	}
	if v := os.Getenv(env.JournalSuffixes); v != "" {
		var suffixes []string
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				suffixes = append(suffixes, s)
			}
		}
		c.JournalSuffixes = suffixes
	}
}

func (c *Config) validate() error {
	if len(c.JournalSuffixes) == 0 {
		return errors.New("journal_suffixes must not be empty")
	}
	for _, s := range c.JournalSuffixes {
		if strings.TrimSpace(s) == "" {
			return errors.New("journal_suffixes must not contain empty entries")
		}
	}
	return nil
}
