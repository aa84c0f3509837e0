package globalconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

// PersistentConfig mirrors ~/.config/instr/config.yml. Empty fields keep defaults.
type PersistentConfig struct {
	VersionURL      string `yaml:"version_url,omitempty"`
	ResourceURL     string `yaml:"resource_url,omitempty"`
	FreshnessWindow string `yaml:"freshness_window,omitempty"`
	Timeout         string `yaml:"timeout,omitempty"`
	CacheDir        string `yaml:"cache_dir,omitempty"`
}

const (
	configDir  = ".config/instr"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, config.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadPersistentConfig reads path (or the default location when empty).
// A missing file yields (nil, nil).
func LoadPersistentConfig(path string) (*PersistentConfig, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg PersistentConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return &cfg, nil
}

// Apply copies every set field onto c. Fields that fail to parse are
// skipped, leaving c's value in place, and reported together.
func (p *PersistentConfig) Apply(c *config.Config) error {
	if p == nil {
		return nil
	}

	var errList []error
	if p.VersionURL != "" {
		c.VersionURL = p.VersionURL
	}
	if p.ResourceURL != "" {
		c.ResourceURL = p.ResourceURL
	}
	if p.FreshnessWindow != "" {
		if d, err := time.ParseDuration(p.FreshnessWindow); err != nil {
			errList = append(errList, fmt.Errorf("invalid freshness_window %q: %w", p.FreshnessWindow, err))
		} else {
			c.FreshnessWindow = d
		}
	}
	if p.Timeout != "" {
		if d, err := time.ParseDuration(p.Timeout); err != nil {
			errList = append(errList, fmt.Errorf("invalid timeout %q: %w", p.Timeout, err))
		} else {
			c.Timeout = d
		}
	}
	if p.CacheDir != "" {
		if abs, err := pathutils.ToAbsolutePath(p.CacheDir); err != nil {
			errList = append(errList, fmt.Errorf("failed to resolve cache_dir: %w", err))
		} else {
			c.CacheDir = abs
		}
	}
	return errors.Join(errList...)
}

func (p *PersistentConfig) Save(path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *p
	if out.CacheDir != "" {
		homePath, err := pathutils.ToHomePathFormat(out.CacheDir)
		if err != nil {
			return fmt.Errorf("failed to convert to home path format: %w", err)
		}
		out.CacheDir = homePath
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
