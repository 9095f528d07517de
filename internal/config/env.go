package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnv overrides fields from environment variables that are set.
func (c *Config) applyEnv() error {
	c.StoragePath = getEnv(EnvStoragePath, c.StoragePath)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)

	var err error

	if c.CacheSize, err = getEnvInt(EnvCacheSize, c.CacheSize); err != nil {
		return err
	}

	if c.MemoSize, err = getEnvInt(EnvMemoSize, c.MemoSize); err != nil {
		return err
	}

	if c.TrendWindow, err = getEnvInt(EnvTrendWindow, c.TrendWindow); err != nil {
		return err
	}

	if value := os.Getenv(EnvRecordTimings); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRecordTimings, err)
		}

		c.RecordTimings = b
	}

	if value := os.Getenv(EnvMinPriority); value != "" {
		p, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMinPriority, err)
		}

		c.MinPriority = p
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func (c *Config) String() string {
	storageDisplay := c.StoragePath
	if storageDisplay == "" {
		storageDisplay = "(in-memory)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
Storage Path:   %s
Cache Size:     %d
Memo Size:      %d
Trend Window:   %d
Min Priority:   %.2f
Log Level:      %s
Record Timings: %t`,
		storageDisplay,
		c.CacheSize,
		c.MemoSize,
		c.TrendWindow,
		c.MinPriority,
		c.LogLevel,
		c.RecordTimings,
	)
}
