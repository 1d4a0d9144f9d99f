// Package application provides the application interface for councilvotes
// commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() application.Settings {
//	        return application.Settings{InputDir: dir, InputGlob: "*.csv"}
//	    },
//	}
//	cmd := inspect.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/councilvotes/pkg/pipeline"
)

// Settings are the configured defaults for a run. Command flags override
// them.
type Settings struct {
	InputDir       string
	OutputDir      string
	InputGlob      string
	TopicsFile     string
	TruncateLength int
	Summary        bool
}

// Application provides what commands need from the application.
type Application interface {
	// Settings returns the run defaults from config file, env and .env files.
	Settings() Settings

	// Pipeline returns a pipeline for the given settings. It fails only
	// when a topics file override cannot be read.
	Pipeline(s Settings) (*pipeline.Pipeline, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
