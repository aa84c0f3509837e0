package internal

import (
	"fmt"

	"github.com/MrSnakeDoc/instr/internal/config"
	"github.com/MrSnakeDoc/instr/internal/globalconfig"
	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/utils"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration to ~/.config/instr/config.yml
(or the path given with --config). An existing file is kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				if path, err = globalconfig.DefaultPath(); err != nil {
					return err
				}
			}

			force, _ := cmd.Flags().GetBool("force")
			exists, err := utils.FileExists(path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			def := config.DefaultConfig()
			pc := &globalconfig.PersistentConfig{
				VersionURL:      def.VersionURL,
				ResourceURL:     def.ResourceURL,
				FreshnessWindow: def.FreshnessWindow.String(),
				Timeout:         def.Timeout.String(),
				CacheDir:        def.CacheDir,
			}
			if err := pc.Save(path); err != nil {
				return err
			}

			logger.Success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
