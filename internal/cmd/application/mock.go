// Package application provides a mock Application for command tests.
package application

import (
	"github.com/rs/zerolog"

	app "github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/pkg/pipeline"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	SettingsFunc     func() app.Settings
	PipelineFunc     func(s app.Settings) (*pipeline.Pipeline, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Settings returns settings using the mock function or zero settings.
func (m *Mock) Settings() app.Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return app.Settings{}
}

// Pipeline returns a pipeline using the mock function, or a pipeline with
// the settings' glob.
func (m *Mock) Pipeline(s app.Settings) (*pipeline.Pipeline, error) {
	if m.PipelineFunc != nil {
		return m.PipelineFunc(s)
	}
	var opts []pipeline.Option
	if s.InputGlob != "" {
		opts = append(opts, pipeline.WithGlob(s.InputGlob))
	}
	return pipeline.New(opts...), nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ app.Application = (*Mock)(nil)
