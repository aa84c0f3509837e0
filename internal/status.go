package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/instr/internal/logger"
	"github.com/MrSnakeDoc/instr/internal/provider"
	"github.com/MrSnakeDoc/instr/internal/store"
	"github.com/MrSnakeDoc/instr/internal/utils"
	"github.com/MrSnakeDoc/instr/internal/utils/pathutils"

	"github.com/spf13/cobra"
)

type statusReport struct {
	provider.Status
	CacheDir string `json:"cache_dir,omitempty"`
}

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what is cached, without contacting upstream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			p, err := newProvider(cmd, false)
			if err != nil {
				return err
			}
			st, err := newStatusReport(cmd, p)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			case "table", "":
				return renderStatus(cmd.OutOrStdout(), st)
			default:
				return fmt.Errorf("unknown format %q (table, json)", format)
			}
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format: table or json")
	return cmd
}

func newStatusReport(cmd *cobra.Command, p *provider.Provider) (statusReport, error) {
	rep := statusReport{Status: p.Inspect(cmd.Context())}

	s, err := getStore(cmd)
	if err != nil {
		return rep, err
	}
	if fs, ok := s.(*store.FS); ok {
		rep.CacheDir = fs.Dir()
	}
	return rep, nil
}

func renderStatus(w io.Writer, st statusReport) error {
	table := logger.CreateTable(w, []string{"Field", "Value"})

	dir := "(memory)"
	if st.CacheDir != "" {
		dir = st.CacheDir
		if short, err := pathutils.ToHomePathFormat(dir); err == nil {
			dir = short
		}
	}

	rows := [][]string{{"cache dir", dir}}
	if st.HasMeta {
		validator := st.Meta.Validator
		if validator == "" {
			validator = "-"
		}
		rows = append(rows,
			[]string{"version", st.Meta.VersionTag},
			[]string{"validator", validator},
			[]string{"source", st.Meta.SourceURL},
			[]string{"last checked", st.Meta.LastChecked.Local().Format(time.RFC3339)},
			[]string{"age", st.Age.Truncate(time.Second).String()},
		)
	} else {
		rows = append(rows, []string{"version", "never cached"})
	}
	rows = append(rows,
		[]string{"window", st.Window.String()},
		[]string{"fresh", strconv.FormatBool(st.Fresh)},
		[]string{"artifact", artifactLabel(st)},
	)

	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}

func artifactLabel(st statusReport) string {
	switch {
	case !st.HasArtifact:
		return "missing"
	case !st.Intact:
		return utils.HumanSize(st.ArtifactSize) + " (checksum mismatch)"
	default:
		return utils.HumanSize(st.ArtifactSize)
	}
}
