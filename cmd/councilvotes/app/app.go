// Package app provides the application context and dependency management
// for the councilvotes CLI: configuration, logging and the pipeline factory
// shared by every command.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/pipeline"
	"github.com/agentstation/councilvotes/pkg/topics"
)

// App represents the councilvotes application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	flags  rootFlags
}

// New creates a new App with the given version information and the
// configuration found in the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Settings returns the configured run defaults.
func (a *App) Settings() application.Settings {
	return application.Settings{
		InputDir:       a.config.InputDir,
		OutputDir:      a.config.OutputDir,
		InputGlob:      a.config.InputGlob,
		TopicsFile:     a.config.TopicsFile,
		TruncateLength: a.config.TruncateLength,
		Summary:        a.config.Summary,
	}
}

// Pipeline returns a pipeline configured from s. A topics file replaces the
// built-in topic table.
func (a *App) Pipeline(s application.Settings) (*pipeline.Pipeline, error) {
	var opts []pipeline.Option
	if s.InputGlob != "" {
		opts = append(opts, pipeline.WithGlob(s.InputGlob))
	}
	if s.TopicsFile != "" {
		t, err := topics.Load(s.TopicsFile)
		if err != nil {
			return nil, errors.NewConfigError("topics", "cannot load "+s.TopicsFile, err)
		}
		a.logger.Debug().Str("file", s.TopicsFile).Int("topics", len(t.Topics)).Msg("Loaded topic table")
		opts = append(opts, pipeline.WithTopics(t))
	}
	return pipeline.New(opts...), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements Application at compile time.
var _ application.Application = (*App)(nil)

// installLogger makes l both the app logger and logging.Default, so code
// logging without a context writes to the same sink.
func (a *App) installLogger(l zerolog.Logger) {
	a.logger = &l
	logging.SetDefault(l)
}
