package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/pkg/errors"
)

// isolate points $HOME at an empty directory and clears the variables the
// loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"COUNCILVOTES_CONFIG", "COUNCILVOTES_INPUT_DIR", "COUNCILVOTES_OUTPUT_DIR",
		"COUNCILVOTES_INPUT_GLOB", "COUNCILVOTES_TRUNCATE_LENGTH", "COUNCILVOTES_SUMMARY",
		"COUNCILVOTES_FORMAT", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "NO_COLOR",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "*.csv", config.InputGlob)
	assert.Equal(t, 200, config.TruncateLength)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.LogLevel)
	assert.Empty(t, config.ConfigFile)
	assert.False(t, config.Summary)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("COUNCILVOTES_INPUT_DIR", "/data/csv")
	t.Setenv("COUNCILVOTES_TRUNCATE_LENGTH", "80")
	t.Setenv("COUNCILVOTES_SUMMARY", "true")
	t.Setenv("COUNCILVOTES_FORMAT", "yaml")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data/csv", config.InputDir)
	assert.Equal(t, 80, config.TruncateLength)
	assert.True(t, config.Summary)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	yaml := "input_dir: ./csv\noutput_dir: ./site/data\ntopics_file: topics.yaml\nsummary: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".councilvotes.yaml"), []byte(yaml), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "./csv", config.InputDir)
	assert.Equal(t, "./site/data", config.OutputDir)
	assert.Equal(t, "topics.yaml", config.TopicsFile)
	assert.True(t, config.Summary)
	assert.Equal(t, filepath.Join(home, ".councilvotes.yaml"), config.ConfigFile)

	t.Setenv("COUNCILVOTES_INPUT_DIR", "/env/csv")
	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/env/csv", config.InputDir, "environment wins over the config file")
}

func TestLoadConfigExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_glob: \"*-Votes.csv\"\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "*-Votes.csv", config.InputGlob)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var ce *errors.ConfigError
	assert.ErrorAs(t, err, &ce)
}
