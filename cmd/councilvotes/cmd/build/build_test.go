package build_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/cmd/councilvotes/cmd/build"
	mock "github.com/agentstation/councilvotes/internal/cmd/application"
	"github.com/agentstation/councilvotes/internal/cmd/table"
	"github.com/agentstation/councilvotes/internal/fixtures"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
)

func newMock(s application.Settings) *mock.Mock {
	return &mock.Mock{
		SettingsFunc:     func() application.Settings { return s },
		OutputFormatFunc: func() string { return "json" },
	}
}

func TestResolve(t *testing.T) {
	s := application.Settings{InputDir: "in", OutputDir: "out", InputGlob: "*.csv", TruncateLength: 200}
	f := &build.Flags{Input: "flag-in", Truncate: 50, Summary: true}

	none := func(string) bool { return false }
	assert.Equal(t, build.Options{InputDir: "in", OutputDir: "out", InputGlob: "*.csv", TruncateLength: 200}, build.Resolve(s, f, none))

	changed := func(name string) bool { return name == "input" || name == "summary" }
	o := build.Resolve(s, f, changed)
	assert.Equal(t, "flag-in", o.InputDir)
	assert.True(t, o.Summary)
	assert.Equal(t, 200, o.TruncateLength)
}

func TestExecute(t *testing.T) {
	logging.DisableLoggingForTest(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "data")
	fixtures.Standard(t, in)

	s := application.Settings{InputDir: in, OutputDir: out, InputGlob: "*.csv", TruncateLength: 200, Summary: true}
	var buf bytes.Buffer
	require.NoError(t, build.Execute(context.Background(), newMock(s), build.Resolve(s, &build.Flags{}, func(string) bool { return false }), &buf))

	var got table.Build
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, table.Build{
		Output:     out,
		Files:      3,
		Skipped:    1,
		Members:    5,
		Meetings:   3,
		Votes:      4,
		Items:      4,
		Duplicates: 4,
		Documents:  21,
	}, got)

	_, err := os.Stat(filepath.Join(out, "summary.md"))
	assert.NoError(t, err)
}

func TestExecuteRejectsInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "csv")
	require.NoError(t, os.Mkdir(nested, 0o755))
	tests := []struct {
		name  string
		opts  build.Options
		field string
	}{
		{"missing input", build.Options{OutputDir: "out", InputGlob: "*.csv", TruncateLength: 200}, "input"},
		{"output equals input", build.Options{InputDir: dir, OutputDir: dir, InputGlob: "*.csv", TruncateLength: 200}, "output"},
		{"output contains input", build.Options{InputDir: nested, OutputDir: dir, InputGlob: "*.csv", TruncateLength: 200}, "output"},
		{"missing topics file", build.Options{InputDir: dir, OutputDir: "out", InputGlob: "*.csv", TopicsFile: filepath.Join(dir, "none.yaml"), TruncateLength: 200}, "topics"},
		{"truncate out of range", build.Options{InputDir: dir, OutputDir: "out", InputGlob: "*.csv", TruncateLength: 1}, "truncate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build.Execute(context.Background(), newMock(application.Settings{}), tt.opts, &bytes.Buffer{})
			require.Error(t, err)
			var ve *errors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCommandFlags(t *testing.T) {
	logging.DisableLoggingForTest(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "data")
	fixtures.Standard(t, in)

	cmd := build.NewCommand(newMock(application.Settings{InputGlob: "*.csv", TruncateLength: 200}))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--input", in, "--output", out, "--glob", "*-Votes.csv"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var got table.Build
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Files)
	assert.Equal(t, 20, got.Documents)
}
