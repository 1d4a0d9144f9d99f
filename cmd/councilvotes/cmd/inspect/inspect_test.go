package inspect_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/cmd/councilvotes/cmd/inspect"
	mock "github.com/agentstation/councilvotes/internal/cmd/application"
	"github.com/agentstation/councilvotes/internal/cmd/table"
	"github.com/agentstation/councilvotes/internal/fixtures"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
)

func TestInspect(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()
	fixtures.Standard(t, dir)

	s := application.Settings{InputDir: dir, InputGlob: "*.csv"}
	sources, err := inspect.Inspect(context.Background(), &mock.Mock{}, s)
	require.NoError(t, err)

	assert.Equal(t, []table.Source{
		{File: "Columbus-OH-2024-Q1-Voted-Items.csv", Period: "2024-Q1", Kind: "voted-items", Rows: 3, Voted: 3, Members: fixtures.Members},
		{File: "Columbus-OH-2024-Q1-Votes.csv", Period: "2024-Q1", Kind: "all-items", Rows: 7, Voted: 3, Members: fixtures.Members},
		{File: "Columbus-OH-Q4-2023-Votes.csv", Period: "2023-Q4", Kind: "all-items", Rows: 2, Voted: 2, Members: fixtures.Members[:4]},
	}, sources)
}

func TestCommandOutputFormats(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()
	fixtures.Standard(t, dir)

	for _, format := range []string{"json", "table", "wide", "yaml"} {
		t.Run(format, func(t *testing.T) {
			cmd := inspect.NewCommand(&mock.Mock{
				SettingsFunc:     func() application.Settings { return application.Settings{InputGlob: "*.csv"} },
				OutputFormatFunc: func() string { return format },
			})
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{"-i", dir})
			require.NoError(t, cmd.ExecuteContext(context.Background()))

			out := buf.String()
			assert.Contains(t, out, "Columbus-OH-Q4-2023-Votes.csv")
			if format == "json" {
				var got []table.Source
				require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
				assert.Len(t, got, 3)
			}
			if format == "wide" {
				assert.Contains(t, out, "Carlos Ruiz III")
			}
		})
	}
}

func TestCommandRequiresInput(t *testing.T) {
	cmd := inspect.NewCommand(&mock.Mock{})
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	err := inspect.Write(&bytes.Buffer{}, "xml", nil)
	assert.True(t, errors.IsValidationError(err))
}
