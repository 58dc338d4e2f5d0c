package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds user-configurable defaults.
type Config struct {
	IntervalSec int      `toml:"interval_sec"`
	HistorySize int      `toml:"history_size"`
	Sections    []string `toml:"sections"` // empty = all
	LogLevel    string   `toml:"log_level"`
	TempUnit    string   `toml:"temp_unit"` // "C" or "F"

	SMART SMARTConfig `toml:"smart"`
	WiFi  WiFiConfig  `toml:"wifi"`
	SMC   SMCConfig   `toml:"smc"`
}

// SMARTConfig controls how often SMART logs are re-read.
type SMARTConfig struct {
	IntervalSec int `toml:"interval_sec"`
}

// WiFiConfig controls the Wi-Fi reader.
type WiFiConfig struct {
	Scan        bool `toml:"scan"` // scan for nearby networks, not just the current link
	IntervalSec int  `toml:"interval_sec"`
}

// SMCConfig filters which SMC keys are reported.
type SMCConfig struct {
	// KeyPrefixes keeps only keys starting with one of the prefixes
	// ("T" for temperatures). Empty keeps every known sensor.
	KeyPrefixes []string `toml:"key_prefixes"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 1,
		HistorySize: 300,
		LogLevel:    "warn",
		TempUnit:    "C",
		SMART:       SMARTConfig{IntervalSec: 300},
		WiFi:        WiFiConfig{Scan: false, IntervalSec: 30},
	}
}

// Interval returns the collection interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSec) * time.Second
}

// SMARTInterval returns the SMART refresh interval.
func (c Config) SMARTInterval() time.Duration {
	return time.Duration(c.SMART.IntervalSec) * time.Second
}

// WiFiInterval returns the Wi-Fi refresh interval.
func (c Config) WiFiInterval() time.Duration {
	return time.Duration(c.WiFi.IntervalSec) * time.Second
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.IntervalSec < 1:
		return fmt.Errorf("interval_sec must be at least 1, got %d", c.IntervalSec)
	case c.HistorySize < 2:
		return fmt.Errorf("history_size must be at least 2, got %d", c.HistorySize)
	case c.SMART.IntervalSec < 0 || c.WiFi.IntervalSec < 0:
		return errors.New("refresh intervals must not be negative")
	}
	switch strings.ToUpper(c.TempUnit) {
	case "C", "F":
	default:
		return fmt.Errorf("temp_unit must be C or F, got %q", c.TempUnit)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Path returns ~/.config/macsense/config.toml (or under XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "macsense", "config.toml")
}

// Load reads the config at path (Path() when empty). A missing file yields
// the defaults without error. Keys absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Save writes the config to path (Path() when empty).
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("write config file: %w", err)
	}
	return f.Close()
}
