package internal

import (
	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/middleware"
	"github.com/MrSnakeDoc/instr/internal/provider"
	"github.com/MrSnakeDoc/instr/internal/service"
	"github.com/MrSnakeDoc/instr/internal/store"

	"github.com/spf13/cobra"
)

var withCache = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.OpenStore)

var defaultCommands = []middleware.CommandFactory{
	withCache(NewShowCmd),
	withCache(NewRefreshCmd),
	withCache(NewStatusCmd),
	NewInitCmd,
	NewVersionCmd,
}

// httpClientFor is swapped in tests. A nil client lets the provider build its own.
var httpClientFor = func(*config.Config) service.HTTPClient { return nil }

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

func newProvider(cmd *cobra.Command, force bool) (*provider.Provider, error) {
	cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
	if err != nil {
		return nil, err
	}
	st, err := getStore(cmd)
	if err != nil {
		return nil, err
	}
	return provider.FromConfig(cfg, st, httpClientFor(cfg), force), nil
}

func getStore(cmd *cobra.Command) (store.Store, error) {
	return middleware.Get[store.Store](cmd, middleware.CtxKeyStore)
}
