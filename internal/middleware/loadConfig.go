package middleware

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/instr/internal/checker"
	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/globalconfig"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/spf13/cobra"
)

// LoadConfig layers defaults, the YAML file, the environment and flags, in
// that order, and stores the result under CtxKeyConfig. A broken file or env
// value is logged and skipped so the document can still be served.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg := config.DefaultConfig()
	cfg.UserAgent = config.AppName + "/" + checker.Version

	path, _ := cmd.Flags().GetString("config")
	pconf, err := globalconfig.LoadPersistentConfig(path)
	if err != nil {
		logger.Warn("ignoring config file: %v", err)
	}
	if err := pconf.Apply(&cfg); err != nil {
		logger.Warn("ignoring config values: %v", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		logger.Warn("ignoring %s: %v", config.FreshnessEnv, err)
	}

	if f := cmd.Flags().Lookup("cache-dir"); f != nil && f.Changed {
		cfg.CacheDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("freshness"); f != nil && f.Changed {
		d, err := cmd.Flags().GetDuration("freshness")
		if err != nil {
			return fmt.Errorf("invalid --freshness: %w", err)
		}
		cfg.FreshnessWindow = d
	}

	logger.Debug("config: cache_dir=%s window=%s version_url=%s", cfg.CacheDir, cfg.FreshnessWindow, cfg.VersionURL)

	cmd.SetContext(context.WithValue(cmd.Context(), CtxKeyConfig, &cfg))
	return next(cmd, args)
}
