// Package config loads px settings.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at $XDG_CONFIG_HOME/px/config.toml
//  3. PX_* keys from a .env file in the working directory
//  4. PX_* variables in the process environment
//
// Example config.toml:
//
//	registry = "https://npm.example.com"
//	concurrency = 4
//	timeout = "5s"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/px/pkg/errors"
)

const (
	appName = "px"

	// FileName is the config file name inside Dir.
	FileName = "config.toml"

	// CacheFileName is the default verification cache file inside Dir.
	CacheFileName = "verified.json"

	// EnvFile is read from the working directory for PX_* overrides.
	EnvFile = ".env"

	envPrefix = "PX_"
)

// Config holds all px settings.
type Config struct {
	Registry    string        `toml:"registry"`
	Concurrency int           `toml:"concurrency"`
	Timeout     time.Duration `toml:"timeout"`
	Retries     int           `toml:"retries"`
	Types       bool          `toml:"types"` // Manage @types packages
	Cache       CacheConfig   `toml:"cache"`
	Log         LogConfig     `toml:"log"`
}

// CacheConfig selects the verification cache backend.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Path     string `toml:"path"`      // File store location; empty means DefaultCachePath
	RedisURL string `toml:"redis_url"` // Selects the Redis store when set
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Registry:    "https://registry.npmjs.org",
		Concurrency: 8,
		Timeout:     10 * time.Second,
		Retries:     0,
		Types:       true,
		Cache:       CacheConfig{Enabled: true},
		Log:         LogConfig{Level: "warn"},
	}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Dir returns the px config directory using the XDG standard (~/.config/px/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DefaultCachePath returns the default verification cache file location.
func DefaultCachePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CacheFileName), nil
}

// CachePath returns the configured cache file, falling back to
// DefaultCachePath.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	return DefaultCachePath()
}

// LoadOptions locates the configuration sources. Zero values select the
// standard locations.
type LoadOptions struct {
	File    string                      // Config file; empty means Path()
	WorkDir string                      // Directory holding .env; empty means "."
	Getenv  func(string) (string, bool) // Environment lookup; nil means os.LookupEnv
}

// Load builds a Config from all sources. A missing config file or .env is
// not an error; malformed ones are.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	file := opts.File
	if file == "" {
		var err error
		if file, err = Path(); err != nil {
			file = ""
		}
	}
	if file != "" {
		if err := loadFile(file, &cfg); err != nil {
			return nil, err
		}
	}

	env, err := loadEnv(opts)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// loadEnv merges PX_* keys from .env with the process environment. The
// process environment wins and is never modified.
func loadEnv(opts LoadOptions) (map[string]string, error) {
	env := make(map[string]string)

	dotenv := filepath.Join(opts.WorkDir, EnvFile)
	if opts.WorkDir == "" {
		dotenv = EnvFile
	}
	values, err := godotenv.Read(dotenv)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", dotenv)
	}
	for k, v := range values {
		if strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	for _, k := range envKeys {
		if v, ok := getenv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// Environment variables read by px.
const (
	EnvRegistry    = "PX_REGISTRY"
	EnvConcurrency = "PX_CONCURRENCY"
	EnvTimeout     = "PX_TIMEOUT"
	EnvRetries     = "PX_RETRIES"
	EnvTypes       = "PX_TYPES"
	EnvCache       = "PX_CACHE"
	EnvCachePath   = "PX_CACHE_PATH"
	EnvRedisURL    = "PX_REDIS_URL"
	EnvLogLevel    = "PX_LOG_LEVEL"
)

var envKeys = []string{
	EnvRegistry, EnvConcurrency, EnvTimeout, EnvRetries, EnvTypes,
	EnvCache, EnvCachePath, EnvRedisURL, EnvLogLevel,
}

func applyEnv(cfg *Config, env map[string]string) error {
	for key, raw := range env {
		v := strings.TrimSpace(raw)
		var err error
		switch key {
		case EnvRegistry:
			cfg.Registry = v
		case EnvConcurrency:
			cfg.Concurrency, err = strconv.Atoi(v)
		case EnvTimeout:
			cfg.Timeout, err = time.ParseDuration(v)
		case EnvRetries:
			cfg.Retries, err = strconv.Atoi(v)
		case EnvTypes:
			cfg.Types, err = strconv.ParseBool(v)
		case EnvCache:
			cfg.Cache.Enabled, err = strconv.ParseBool(v)
		case EnvCachePath:
			cfg.Cache.Path = v
		case EnvRedisURL:
			cfg.Cache.RedisURL = v
		case EnvLogLevel:
			cfg.Log.Level = v
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", key, raw)
		}
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Registry == "":
		return errors.New(errors.ErrCodeInvalidConfig, "registry must not be empty")
	case c.Concurrency < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	case c.Timeout <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout)
	case c.Retries < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "retries must not be negative, got %d", c.Retries)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level")
	}
	return nil
}
