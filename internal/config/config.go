// Package config loads the tagcloud user configuration.
//
// The file lives at $XDG_CONFIG_HOME/tagcloud/config.yaml (falling back to
// ~/.config/tagcloud/config.yaml). A missing file is not an error; every
// field has a default. Environment variables override the file, and
// command-line flags override both.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/pipeline"
	"github.com/kokodio/tdd/pkg/render"
	"github.com/kokodio/tdd/pkg/session"
)

const appName = "tagcloud"

// Environment variables that override the file.
const (
	EnvSeed      = "TAGCLOUD_SEED"
	EnvStrategy  = "TAGCLOUD_STRATEGY"
	EnvRedisAddr = "TAGCLOUD_REDIS_ADDR"
	EnvLogLevel  = "TAGCLOUD_LOG_LEVEL"
)

// Config is the on-disk configuration.
type Config struct {
	Count    int      `yaml:"count"`
	MinSize  int      `yaml:"min_size"`
	MaxSize  int      `yaml:"max_size"`
	Seed     uint64   `yaml:"seed"`
	Strategy string   `yaml:"strategy"`
	Renderer string   `yaml:"renderer"`
	Formats  []string `yaml:"formats"`
	Labels   bool     `yaml:"labels"`

	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir overrides the file cache location.
	Dir string `yaml:"dir,omitempty"`
	// RedisAddr switches to the Redis backend when set.
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisPrefix   string `yaml:"redis_prefix,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File tees log output into a rotating file when set.
	File string `yaml:"file,omitempty"`
}

// ServerConfig configures `tagcloud serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// SessionDir persists sessions on disk; empty keeps them in memory.
	SessionDir string `yaml:"session_dir,omitempty"`
	// SessionDB keeps sessions in a SQLite file and wins over SessionDir.
	SessionDB  string        `yaml:"session_db,omitempty"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Count:    cloud.DefaultCount,
		MinSize:  cloud.DefaultMinSize,
		MaxSize:  cloud.DefaultMaxSize,
		Seed:     cloud.DefaultSeed,
		Strategy: string(layout.DefaultStrategy),
		Renderer: string(render.KindAutoAdjust),
		Formats:  []string{pipeline.FormatPNG},
		Cache: CacheConfig{
			Enabled:     true,
			RedisPrefix: appName + ":",
		},
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:       "localhost:8080",
			SessionTTL: session.DefaultTTL,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// Load reads path on top of the defaults, then applies environment
// overrides. An empty path means [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s=%q", EnvSeed, v)
		}
		c.Seed = seed
	}
	if v := getenv(EnvStrategy); v != "" {
		c.Strategy = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	if _, err := layout.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := render.ParseKind(c.Renderer); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.Count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "count %d must not be negative", c.Count)
	}
	if err := errors.ValidateSizeRange(c.MinSize, c.MaxSize); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Server.SessionTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "session_ttl must not be negative")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level %q", c.Log.Level)
	}
	return lvl, nil
}

// PipelineOptions maps the configuration onto pipeline defaults.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Count:    c.Count,
		MinSize:  c.MinSize,
		MaxSize:  c.MaxSize,
		Seed:     c.Seed,
		Strategy: c.Strategy,
		Renderer: c.Renderer,
		Formats:  append([]string(nil), c.Formats...),
		Labels:   c.Labels,
	}
}

// Marshal encodes c as YAML.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Write(c Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
		}
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
