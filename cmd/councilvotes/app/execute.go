package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/councilvotes/cmd/councilvotes/cmd/build"
	"github.com/agentstation/councilvotes/cmd/councilvotes/cmd/inspect"
)

// rootFlags are the persistent flags. They override the configuration only
// when set on the command line.
type rootFlags struct {
	config   string
	verbose  bool
	quiet    bool
	noColor  bool
	format   string
	logLevel string
}

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "councilvotes",
		Short:   "City council vote dataset builder",
		Version: a.version,
		Long: `Councilvotes turns quarterly city council vote exports (CSV) into a static
JSON dataset: members, meetings, votes, non-voted agenda items, member
statistics, pairwise alignment and a search index.

Every build is a full recomputation from the input directory.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default is $HOME/.councilvotes.yaml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&a.flags.format, "format", "o", "", "output format: table, wide, json, yaml")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("councilvotes {{.Version}}\n")

	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())

	return rootCmd
}

// setupCommand applies the config file and flags, then rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	changed := cmd.Flags().Changed

	if changed("config") {
		config, err := LoadConfig(a.flags.config)
		if err != nil {
			return err
		}
		a.config = config
	}
	if changed("verbose") {
		a.config.Verbose = a.flags.verbose
	}
	if changed("quiet") {
		a.config.Quiet = a.flags.quiet
	}
	if changed("no-color") {
		a.config.NoColor = a.flags.noColor
	}
	if changed("format") {
		a.config.Format = a.flags.format
	}
	if changed("log-level") {
		a.config.LogLevel = a.flags.logLevel
	}

	a.installLogger(NewLogger(a.config))
	if a.config.ConfigFile != "" {
		a.logger.Debug().Str("file", a.config.ConfigFile).Msg("Using config file")
	}
	return nil
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("councilvotes %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
