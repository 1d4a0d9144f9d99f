package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default", &Config{}, "info"},
		{"verbose", &Config{Verbose: true}, "debug"},
		{"quiet", &Config{Quiet: true}, "warn"},
		{"explicit overrides verbose", &Config{LogLevel: "error", Verbose: true}, "error"},
		{"explicit overrides quiet", &Config{LogLevel: "trace", Quiet: true}, "trace"},
		{"verbose and quiet prefers quiet", &Config{Verbose: true, Quiet: true}, "warn"},
		{"invalid level falls back to info", &Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("DEBUG"))
	assert.Equal(t, "info", validateLogLevel(""))
}
