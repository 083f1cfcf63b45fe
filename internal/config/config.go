// Package config resolves mangala settings from defaults, an optional
// TOML file and MANGALA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath string `toml:"db_path"`
	Addr   string `toml:"addr"`

	// Catalog optionally replaces the embedded ritual catalog.
	Catalog string `toml:"catalog"`

	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// APIConfig points the client at a running mangala server.
type APIConfig struct {
	Endpoint   string `toml:"endpoint"`
	TimeoutMs  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`

	// Strict makes client failures errors instead of mock fallbacks.
	Strict bool `toml:"strict"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings with state under home/.mangala.
func Default(home string) Config {
	return Config{
		DBPath: filepath.Join(home, ".mangala", "mangala.db"),
		Addr:   "127.0.0.1:8080",
		API: APIConfig{
			Endpoint:   "http://127.0.0.1:8080",
			TimeoutMs:  5000,
			MaxRetries: 1,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load resolves the configuration. A missing default config file is not
// an error; a missing file named by MANGALA_CONFIG is.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := Default(home)

	path, explicit := os.Getenv("MANGALA_CONFIG"), true
	if path == "" {
		path, explicit = filepath.Join(home, ".mangala", "config.toml"), false
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MANGALA_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MANGALA_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MANGALA_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("MANGALA_API_ENDPOINT"); v != "" {
		c.API.Endpoint = v
	}
	if v := os.Getenv("MANGALA_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.TimeoutMs = n
		}
	}
	if v := os.Getenv("MANGALA_API_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.API.MaxRetries = n
		}
	}
	if v := os.Getenv("MANGALA_API_STRICT"); v != "" {
		c.API.Strict, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MANGALA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MANGALA_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate rejects settings that would fail later at startup.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.API.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMs))
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("api.max_retries must not be negative, got %d", c.API.MaxRetries))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
