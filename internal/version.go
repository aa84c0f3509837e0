package internal

import (
	"github.com/MrSnakeDoc/instr/internal/checker"

	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			checker.PrintVersion(cmd.OutOrStdout())
		},
	}
}
