// Package config resolves server settings: built-in defaults, then an
// optional Lua file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	OriginAllowlist []string // empty accepts any origin
	StaticDir       string
	LogLevel        string
	LogDev          bool

	TargetScore   int // 0 plays forever
	NextHandDelay time.Duration
	RematchDelay  time.Duration
	Seed          int64 // 0 seeds from the clock
}

func Default() Config {
	return Config{
		Port:          "3000",
		StaticDir:     "public",
		LogLevel:      "info",
		TargetScore:   12,
		NextHandDelay: 3 * time.Second,
		RematchDelay:  10 * time.Second,
	}
}

// Load builds the configuration. path names a Lua file; when empty,
// TRUCO_CONFIG is consulted and a missing variable means no file.
func Load(path string) (Config, error) {
	cfg := Default()
	allowSet := false

	if path == "" {
		path = os.Getenv("TRUCO_CONFIG")
	}
	if path != "" {
		set, err := loadLua(path, &cfg)
		if err != nil {
			return cfg, err
		}
		allowSet = set
	}

	if v := os.Getenv("ORIGIN_ALLOWLIST"); v != "" {
		cfg.OriginAllowlist = splitList(v)
		allowSet = true
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if !allowSet {
		cfg.OriginAllowlist = []string{"http://localhost:" + cfg.Port, "http://127.0.0.1:" + cfg.Port}
	}
	return cfg, cfg.validate()
}

func applyEnv(cfg *Config) error {
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.StaticDir = getenv("STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("LOG_DEV"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_DEV: %w", err)
		}
		cfg.LogDev = b
	}
	if v := os.Getenv("TARGET_SCORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TARGET_SCORE: %w", err)
		}
		cfg.TargetScore = n
	}
	if v := os.Getenv("NEXT_HAND_DELAY"); v != "" {
		d, err := parseDelay(v)
		if err != nil {
			return fmt.Errorf("NEXT_HAND_DELAY: %w", err)
		}
		cfg.NextHandDelay = d
	}
	if v := os.Getenv("REMATCH_DELAY"); v != "" {
		d, err := parseDelay(v)
		if err != nil {
			return fmt.Errorf("REMATCH_DELAY: %w", err)
		}
		cfg.RematchDelay = d
	}
	if v := os.Getenv("SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SEED: %w", err)
		}
		cfg.Seed = n
	}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if c.TargetScore < 0 {
		errs = append(errs, fmt.Errorf("target score must not be negative, got %d", c.TargetScore))
	}
	if c.NextHandDelay < 0 || c.RematchDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	return errors.Join(errs...)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// parseDelay accepts a Go duration ("1500ms") or bare milliseconds.
func parseDelay(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

// splitList reads a comma separated allowlist. "*" alone allows any origin.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "*" {
			return nil
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
