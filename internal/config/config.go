package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the knobs for the extraction pipeline.
type Config struct {
	HomepageTimeout time.Duration
	SubpageTimeout  time.Duration
	MaxBodyBytes    int64
	MaxSubpages     int
	SummaryLimit    int
	UserAgent       string
	Verbose         bool
}

// DefaultConfig returns the budgets the pipeline was tuned for.
func DefaultConfig() *Config {
	return &Config{
		HomepageTimeout: 8 * time.Second,
		SubpageTimeout:  6 * time.Second,
		MaxBodyBytes:    1_000_000,
		MaxSubpages:     3,
		SummaryLimit:    12000,
		UserAgent:       "firmsight-go-analyzer/1.0 (+https://example.com/bot)",
		Verbose:         false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.HomepageTimeout <= 0 {
		return fmt.Errorf("homepage timeout must be positive")
	}
	if c.SubpageTimeout <= 0 {
		return fmt.Errorf("subpage timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.MaxSubpages < 0 {
		return fmt.Errorf("max subpages cannot be negative")
	}
	if c.SummaryLimit <= 0 {
		return fmt.Errorf("summary limit must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	return nil
}

// ApplyEnv layers environment overrides onto cfg. Unset variables leave the
// corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	if v, ok := EnvString("FIRMSIGHT_USER_AGENT"); ok {
		cfg.UserAgent = v
	}
	if n, ok, err := EnvInt("FIRMSIGHT_HOMEPAGE_TIMEOUT_MS"); err != nil {
		return err
	} else if ok {
		cfg.HomepageTimeout = time.Duration(n) * time.Millisecond
	}
	if n, ok, err := EnvInt("FIRMSIGHT_SUBPAGE_TIMEOUT_MS"); err != nil {
		return err
	} else if ok {
		cfg.SubpageTimeout = time.Duration(n) * time.Millisecond
	}
	if n, ok, err := EnvInt("FIRMSIGHT_MAX_BODY_BYTES"); err != nil {
		return err
	} else if ok {
		cfg.MaxBodyBytes = int64(n)
	}
	if _, ok := EnvString("FIRMSIGHT_VERBOSE"); ok {
		cfg.Verbose = true
	}
	return nil
}

// EnvString reads a string override from the environment.
func EnvString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// EnvInt reads an integer override from the environment.
func EnvInt(key string) (int, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return n, true, nil
}
