// Package config loads server configuration from an optional YAML file and
// PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"kv.dev/portfolio/internal/services"
	"kv.dev/portfolio/internal/storage"
)

// EnvPrefix is stripped from environment variables before mapping them to keys
const EnvPrefix = "PORTFOLIO_"

const maxConfigFileSize = 1024 * 1024

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Remote  RemoteConfig  `koanf:"remote"`
	Session SessionConfig `koanf:"session"`
	Static  StaticConfig  `koanf:"static"`
	Log     LogConfig     `koanf:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
}

// StorageConfig selects the slot store driver
type StorageConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	// SkipSeed leaves an empty store empty instead of writing the sample projects
	SkipSeed bool `koanf:"skip_seed"`
}

// RemoteConfig points at the remote project document
type RemoteConfig struct {
	URL         string        `koanf:"url"`
	Timeout     time.Duration `koanf:"timeout"`
	MinInterval time.Duration `koanf:"min_interval"`
}

// SessionConfig holds edit-session cookie settings
type SessionConfig struct {
	SigningKey string `koanf:"signing_key"`
	Secure     bool   `koanf:"secure"`
}

// StaticConfig holds the static assets directory
type StaticConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load reads configuration. Precedence, highest first: environment variables,
// the YAML file at path (skipped when path is empty), defaults.
//
//	PORTFOLIO_SERVER_ADDR         -> server.addr
//	PORTFOLIO_STORAGE_DRIVER      -> storage.driver
//	PORTFOLIO_REMOTE_MIN_INTERVAL -> remote.min_interval
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps PORTFOLIO_SECTION_FIELD_NAME to section.field_name
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// applyDefaults sets default values for missing configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = os.Getenv("SERVER_ADDR")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = storage.DriverSQLite
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case storage.DriverFile:
			cfg.Storage.Path = "data/slots.json"
		default:
			cfg.Storage.Path = "data/portfolio.db"
		}
	}

	if cfg.Remote.URL == "" {
		cfg.Remote.URL = services.DefaultRemoteURL
	}
	if cfg.Remote.Timeout == 0 {
		cfg.Remote.Timeout = 10 * time.Second
	}
	if cfg.Remote.MinInterval == 0 {
		cfg.Remote.MinInterval = 5 * time.Second
	}

	if cfg.Static.Dir == "" {
		cfg.Static.Dir = "static"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be memory, file or sqlite, got %q", c.Storage.Driver))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	if c.Server.ShutdownTimeout < 0 || c.Remote.Timeout < 0 || c.Remote.MinInterval < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}

	return errors.Join(errs...)
}
