package middleware

import (
	"context"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/store"
	"github.com/spf13/cobra"
)

// OpenStore needs LoadConfig first. Without a usable cache directory the
// command still runs, on an in-memory store.
func OpenStore(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[*config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	var st store.Store
	fs, err := store.NewFS(cfg.CacheDir)
	if err != nil {
		logger.Warn("cache disabled: %v", err)
		st = store.NewMemory()
	} else {
		st = fs
	}

	cmd.SetContext(context.WithValue(cmd.Context(), CtxKeyStore, st))
	return next(cmd, args)
}
