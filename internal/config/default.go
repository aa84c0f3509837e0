package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	AppName = "instr"

	// VersionPlaceholder is substituted in ResourceURL with the resolved tag.
	VersionPlaceholder = "{version}"

	DefaultFreshnessWindow = 15 * time.Minute
	DefaultTimeout         = 10 * time.Second
	DefaultMaxBytes        = 4 << 20

	FreshnessEnv = "INSTR_FRESHNESS_WINDOW"
)

type Config struct {
	VersionURL      string
	ResourceURL     string
	FreshnessWindow time.Duration
	Timeout         time.Duration
	MaxBytes        int64
	CacheDir        string
	UserAgent       string
}

func baseConfig() Config {
	return Config{
		VersionURL:  "https://api.github.com/repos/MrSnakeDoc/instr/releases/latest",
		ResourceURL: "https://raw.githubusercontent.com/MrSnakeDoc/instr/" + VersionPlaceholder + "/INSTRUCTIONS.md",
	}
}

func DefaultConfig() Config {
	config := baseConfig()
	config.FreshnessWindow = DefaultFreshnessWindow
	config.Timeout = DefaultTimeout
	config.MaxBytes = DefaultMaxBytes
	config.CacheDir = DefaultCacheDir()
	config.UserAgent = AppName + "/dev"
	return config
}

// DefaultCacheDir returns $XDG_CACHE_HOME/instr, else ~/.cache/instr.
// An empty string means no home directory could be found.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", AppName)
}

// ApplyEnv overrides fields from the environment. Unparseable values are
// reported and leave the config untouched.
func (c *Config) ApplyEnv() error {
	raw := os.Getenv(FreshnessEnv)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	if d < 0 {
		d = 0
	}
	c.FreshnessWindow = d
	return nil
}
