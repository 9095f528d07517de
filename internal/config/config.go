// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	errCacheSizeInvalid   = errors.New("cache_size must be greater than 0")
	errMemoSizeInvalid    = errors.New("memo_size must be greater than 0")
	errTrendWindowInvalid = errors.New("trend_window must be greater than 0")
	errMinPriorityRange   = errors.New("min_priority must be between 0 and 1")
	errLogLevelInvalid    = errors.New("invalid log_level")
)

// Config holds the toolkit configuration.
type Config struct {
	// StoragePath is the metrics history file. Empty keeps history in memory only.
	StoragePath string  `yaml:"storage_path"`
	CacheSize   int     `yaml:"cache_size"`
	MemoSize    int     `yaml:"memo_size"`
	TrendWindow int     `yaml:"trend_window"`
	MinPriority float64 `yaml:"min_priority"`
	LogLevel    string  `yaml:"log_level"`

	// RecordTimings stores command timings as samples alongside other metrics.
	RecordTimings bool `yaml:"record_timings"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		StoragePath: DefaultStoragePath,
		CacheSize:   DefaultCacheSize,
		MemoSize:    DefaultMemoSize,
		TrendWindow: DefaultTrendWindow,
		MinPriority: DefaultMinPriority,
		LogLevel:    DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// environment variables, in increasing order of precedence. A .env file in the
// working directory is loaded first if present. An empty path reads
// DefaultConfigFile when it exists.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return errCacheSizeInvalid
	}

	if c.MemoSize <= 0 {
		return errMemoSizeInvalid
	}

	if c.TrendWindow <= 0 {
		return errTrendWindowInvalid
	}

	if c.MinPriority < 0 || c.MinPriority > 1 {
		return errMinPriorityRange
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", errLogLevelInvalid, c.LogLevel)
	}

	return nil
}

// Level returns the configured logrus level, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}
