package internal

import (
	"fmt"

	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/provider"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/spf13/cobra"
)

func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the instruction document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, err := cmd.Flags().GetBool("refresh")
			if err != nil {
				return err
			}

			asHTML, err := cmd.Flags().GetBool("html")
			if err != nil {
				return err
			}

			p, err := newProvider(cmd, refresh)
			if err != nil {
				return err
			}

			content := p.GetContent(cmd.Context())
			if asHTML {
				content = renderHTML(content)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolP("refresh", "r", false, "Revalidate even inside the freshness window")
	cmd.Flags().Bool("html", false, "Render the markdown document as HTML")
	return cmd
}

func renderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, r))
}

func NewRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Revalidate the cached document now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newProvider(cmd, true)
			if err != nil {
				return err
			}

			res := p.Resolve(cmd.Context())
			version := res.Version
			if version == "" {
				version = "-"
			}

			switch res.Source {
			case provider.SourceFetched, provider.SourceNotModified:
				logger.Success("document %s is current (%s)", version, res.Source)
			default:
				logger.Warn("upstream unreachable, serving %s copy (%s)", res.Source, version)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", res.Source, version)
			return err
		},
	}
	return cmd
}
