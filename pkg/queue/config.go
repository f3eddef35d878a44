package queue

import (
	"fmt"
	"os"
	"strconv"
)

// Backend selects the Queue implementation built by New.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config holds task queue settings.
type Config struct {
	Backend Backend `toml:"backend"`
	Workers int     `toml:"workers"`
	Buffer  int     `toml:"buffer"`
	// SubmitOnly disables consumers in this process. Only valid for the
	// redis backend, where a separate worker process pops the tasks.
	SubmitOnly bool        `toml:"submit_only"`
	Redis      RedisConfig `toml:"redis"`
}

// RedisConfig addresses the redis server used by the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Env maps environment variable names for queue configuration.
type Env struct {
	Backend       string
	Workers       string
	Buffer        string
	SubmitOnly    string
	RedisAddr     string
	RedisPassword string
	RedisDB       string
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.Buffer != 0 {
		c.Buffer = overlay.Buffer
	}
	if overlay.SubmitOnly {
		c.SubmitOnly = true
	}
	if overlay.Redis.Addr != "" {
		c.Redis.Addr = overlay.Redis.Addr
	}
	if overlay.Redis.Password != "" {
		c.Redis.Password = overlay.Redis.Password
	}
	if overlay.Redis.DB != 0 {
		c.Redis.DB = overlay.Redis.DB
	}
	if overlay.Redis.Prefix != "" {
		c.Redis.Prefix = overlay.Redis.Prefix
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.Workers == 0 {
		c.Workers = 2
	}
	if c.Buffer == 0 {
		c.Buffer = 64
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "lab-catalog"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Backend != "" {
		if v := os.Getenv(env.Backend); v != "" {
			c.Backend = Backend(v)
		}
	}
	if env.Workers != "" {
		if v := os.Getenv(env.Workers); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Workers = n
			}
		}
	}
	if env.Buffer != "" {
		if v := os.Getenv(env.Buffer); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Buffer = n
			}
		}
	}
	if env.SubmitOnly != "" {
		if v := os.Getenv(env.SubmitOnly); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.SubmitOnly = b
			}
		}
	}
	if env.RedisAddr != "" {
		if v := os.Getenv(env.RedisAddr); v != "" {
			c.Redis.Addr = v
		}
	}
	if env.RedisPassword != "" {
		if v := os.Getenv(env.RedisPassword); v != "" {
			c.Redis.Password = v
		}
	}
	if env.RedisDB != "" {
		if v := os.Getenv(env.RedisDB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Redis.DB = n
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemory:
		if c.Workers < 1 {
			return fmt.Errorf("workers must be positive for the memory backend")
		}
		if c.SubmitOnly {
			return fmt.Errorf("submit_only requires the redis backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required")
		}
		if c.Workers < 1 {
			return fmt.Errorf("workers must be positive")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be memory or redis)", c.Backend)
	}
	if c.Buffer < 0 {
		return fmt.Errorf("buffer cannot be negative")
	}
	return nil
}
