// Package inspect provides the inspect command, which reports what a build
// would read from an input directory without writing anything.
package inspect

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/internal/cmd/output"
	"github.com/agentstation/councilvotes/internal/cmd/table"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	var input, glob string

	cmd := &cobra.Command{
		Use:     "inspect",
		GroupID: "core",
		Short:   "List the vote exports found in the input directory",
		Long: `Inspect discovers the input files a build would read and shows, per file,
the period and kind parsed from its name, the number of data rows, how many
of them carry a vote, and the member columns in its header.

Use -o wide to list member names.`,
		Example: `  councilvotes inspect --input ./csv
  councilvotes inspect -i ./csv -o wide
  councilvotes inspect -i ./csv -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.Settings()
			if cmd.Flags().Changed("input") {
				s.InputDir = input
			}
			if cmd.Flags().Changed("glob") {
				s.InputGlob = glob
			}
			if s.InputDir == "" {
				return errors.NewValidationError("input", "", "is required")
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			sources, err := Inspect(ctx, app, s)
			if err != nil {
				return err
			}
			return Write(cmd.OutOrStdout(), app.OutputFormat(), sources)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "directory holding the vote exports")
	cmd.Flags().StringVar(&glob, "glob", "", "pattern selecting input files (default \"*.csv\")")

	return cmd
}

// Inspect reads every recognized file of the input directory.
func Inspect(ctx context.Context, app application.Application, s application.Settings) ([]table.Source, error) {
	p, err := app.Pipeline(s)
	if err != nil {
		return nil, err
	}
	d, err := p.Discover(ctx, s.InputDir)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	for _, path := range d.Skipped {
		logger.Warn().Str("file", filepath.Base(path)).Msg("No naming convention matched, file will be ignored")
	}

	out := make([]table.Source, 0, len(d.Sources))
	for _, src := range d.Sources {
		t, err := tabular.ReadFile(src.Path)
		if err != nil {
			return nil, err
		}
		cols := schema.ResolveColumns(t.Header)
		voted := 0
		for _, row := range t.Rows {
			if votes.IsVoted(row) {
				voted++
			}
		}
		out = append(out, table.Source{
			File:    src.Name(),
			Period:  src.Period.String(),
			Kind:    src.Kind.String(),
			Rows:    len(t.Rows),
			Voted:   voted,
			Members: nonNil(cols.MemberNames()),
		})
	}
	return out, nil
}

// Write renders sources in the requested format.
func Write(w io.Writer, explicit string, sources []table.Source) error {
	if _, err := output.ParseFormat(explicit); err != nil {
		return err
	}
	format := output.DetectFormat(explicit)
	var data any = sources
	if format.IsTable() {
		data = table.SourcesToTableData(sources)
		if format == output.FormatWide {
			data = table.MembersToTableData(sources)
		}
	}
	return output.NewFormatter(format).Format(w, data)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
