package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/instr/internal/checker"
	"github.com/MrSnakeDoc/instr/internal/logger"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instr",
		Short: "Cached instruction document",
		Long: `instr serves the latest released instruction document.
The document is cached locally, revalidated against the latest release tag with
ETag requests, and falls back to the stale copy or a bundled default when the
network is unavailable.`,
		Example: `instr show
instr refresh
instr status --format json`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				checker.PrintVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose logs (-V info, -VV debug)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only log errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Disable logs")
	pf.BoolVar(&logger.FlagJSON, "json", false, "Structured JSON logs")
	pf.StringVar(&logger.FlagLogFile, "log-file", "", "Also write JSON logs to a rotating file")
	pf.String("config", "", "Config file (default ~/.config/instr/config.yml)")
	pf.String("cache-dir", "", "Cache directory (default $XDG_CACHE_HOME/instr)")
	pf.Duration("freshness", 0, "Freshness window, e.g. 15m (0 always revalidates)")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
