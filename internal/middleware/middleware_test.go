package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func testCmd(run func(cmd *cobra.Command)) CommandFactory {
	return func() *cobra.Command {
		cmd := &cobra.Command{
			Use: "t",
			RunE: func(cmd *cobra.Command, _ []string) error {
				run(cmd)
				return nil
			},
		}
		cmd.Flags().String("config", "", "")
		cmd.Flags().String("cache-dir", "", "")
		cmd.Flags().Duration("freshness", 0, "")
		return cmd
	}
}

func TestUseMiddlewareChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) MiddlewareFunc {
		return func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
			order = append(order, name)
			return next(cmd, args)
		}
	}

	cmd := UseMiddlewareChain(mw("a"), mw("b"))(testCmd(func(*cobra.Command) { order = append(order, "run") }))()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, []string{"a", "b", "run"}, order)
}

func TestLoadConfigAndOpenStore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("freshness_window: 1m\ntimeout: 2s\n"), 0o644))
	t.Setenv(config.FreshnessEnv, "")

	var (
		gotCfg   *config.Config
		gotStore store.Store
	)
	cmd := UseMiddlewareChain(LoadConfig, OpenStore)(testCmd(func(cmd *cobra.Command) {
		var err error
		gotCfg, err = Get[*config.Config](cmd, CtxKeyConfig)
		require.NoError(t, err)
		gotStore, err = Get[store.Store](cmd, CtxKeyStore)
		require.NoError(t, err)
	}))()
	cmd.SetArgs([]string{"--config", cfgPath, "--cache-dir", filepath.Join(dir, "cache"), "--freshness", "30s"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	require.NotNil(t, gotCfg)
	assert.Equal(t, 30*time.Second, gotCfg.FreshnessWindow, "flag wins over file")
	assert.Equal(t, 2*time.Second, gotCfg.Timeout)
	assert.Equal(t, filepath.Join(dir, "cache"), gotCfg.CacheDir)

	fs, ok := gotStore.(*store.FS)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "cache"), fs.Dir())
}

func TestLoadConfig_BrokenFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "unparseable yaml", yml: "timeout: [\n"},
		{name: "bad duration", yml: "freshness_window: 15min\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.yml), 0o644))
			t.Setenv(config.FreshnessEnv, "")

			var got *config.Config
			cmd := UseMiddlewareChain(LoadConfig)(testCmd(func(cmd *cobra.Command) {
				got, _ = Get[*config.Config](cmd, CtxKeyConfig)
			}))()
			cmd.SetArgs([]string{"--config", cfgPath})
			require.NoError(t, cmd.ExecuteContext(context.Background()))

			require.NotNil(t, got)
			assert.Equal(t, config.DefaultFreshnessWindow, got.FreshnessWindow)
			assert.Equal(t, config.DefaultTimeout, got.Timeout)
		})
	}
}

func TestGet_Missing(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := Get[*config.Config](cmd, CtxKeyConfig)
	assert.Error(t, err)
}
