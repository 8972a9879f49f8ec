package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nesting levels: STUDIO_SERVER__ADDR sets server.addr.
const EnvPrefix = "STUDIO_"

type Config struct {
	Env     string        `koanf:"env"` // "dev" or "prod"
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
	Contact ContactConfig `koanf:"contact"`
	Content ContentConfig `koanf:"content"`
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

type ServerConfig struct {
	Addr           string        `koanf:"addr"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	ShutdownGrace  time.Duration `koanf:"shutdown_grace"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "text" or "json"
}

type SessionConfig struct {
	CookieName    string        `koanf:"cookie_name"`
	IdleTTL       time.Duration `koanf:"idle_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type ContactConfig struct {
	SendDelay      time.Duration `koanf:"send_delay"`
	MaxFieldLength int           `koanf:"max_field_length"`
	RateLimit      int           `koanf:"rate_limit"` // submissions per IP per hour
}

type ContentConfig struct {
	// Path to a catalog YAML file. Empty uses the embedded catalog.
	Path string `koanf:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Env: "dev",
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			RequestTimeout: 60 * time.Second,
			ShutdownGrace:  5 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Session: SessionConfig{
			CookieName:    "ct_visitor",
			IdleTTL:       30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Contact: ContactConfig{
			SendDelay:      2 * time.Second,
			MaxFieldLength: 5000,
			RateLimit:      5,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path,
// and STUDIO_* environment variables (highest priority). A .env file in the
// working directory is read into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("cannot read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("cannot load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Env != "dev" && c.Env != "prod" {
		return fmt.Errorf("invalid env %q: must be dev or prod", c.Env)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive")
	}
	if c.Contact.SendDelay <= 0 {
		return fmt.Errorf("contact.send_delay must be positive")
	}
	if c.Contact.MaxFieldLength <= 0 {
		return fmt.Errorf("contact.max_field_length must be positive")
	}
	if c.Contact.RateLimit <= 0 {
		return fmt.Errorf("contact.rate_limit must be positive")
	}
	return nil
}
