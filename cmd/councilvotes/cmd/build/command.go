// Package build provides the build command: one full recomputation from the
// input exports to a published document set.
package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/councilvotes/cmd/application"
)

// Flags are the build command flags.
type Flags struct {
	Input    string
	Output   string
	Glob     string
	Topics   string
	Truncate int
	Summary  bool
}

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Build the JSON dataset from vote exports",
		Long: `Build reads every recognized vote export in the input directory,
deduplicates items across files and naming conventions, classifies votes and
non-voted agenda items, computes member statistics and alignment, and
publishes the complete document set to the output directory.

The output directory is replaced as a whole once every document was written.`,
		Example: `  councilvotes build --input ./csv --output ./data
  councilvotes build -i ./csv --output ./data --summary
  COUNCILVOTES_INPUT_DIR=./csv councilvotes build --output ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := Resolve(app.Settings(), flags, cmd.Flags().Changed)
			return Execute(cmd.Context(), app, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "directory holding the vote exports")
	cmd.Flags().StringVar(&flags.Output, "output", "", "directory to publish the dataset to")
	cmd.Flags().StringVar(&flags.Glob, "glob", "", "pattern selecting input files (default \"*.csv\")")
	cmd.Flags().StringVar(&flags.Topics, "topics", "", "YAML topic table replacing the built-in one")
	cmd.Flags().IntVar(&flags.Truncate, "truncate", 0, "rune limit for descriptions in list documents (default 200)")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "also write summary.md")

	return cmd
}
