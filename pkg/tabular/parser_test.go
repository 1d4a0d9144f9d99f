package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "simple",
			in:   "a,b,c\n1,2,3\n",
			want: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name: "crlf and lf mixed",
			in:   "a,b\r\n1,2\n3,4\r\n",
			want: [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name: "no trailing newline",
			in:   "a,b\n1,2",
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "quoted delimiter and escaped quote",
			in:   "title,action\n\"Smith, \"\"Jr\"\" said\",Approved\n",
			want: [][]string{{"title", "action"}, {`Smith, "Jr" said`, "Approved"}},
		},
		{
			name: "quoted newline normalized",
			in:   "text\n\"line one\r\nline two\"\n",
			want: [][]string{{"text"}, {"line one\nline two"}},
		},
		{
			name: "blank and trailing rows dropped",
			in:   "a,b\n\n1,2\n,\n\r\n\n",
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "empty fields kept",
			in:   "a,b,c\n,x,\n",
			want: [][]string{{"a", "b", "c"}, {"", "x", ""}},
		},
		{
			name: "empty quoted last field",
			in:   "a,b\nx,\"\"",
			want: [][]string{{"a", "b"}, {"x", ""}},
		},
		{
			name: "quote inside unquoted field is literal",
			in:   "a\n5\" pipe\n",
			want: [][]string{{"a"}, {`5" pipe`}},
		},
		{
			name: "text after closing quote is kept",
			in:   "a\n\"abc\"def\n",
			want: [][]string{{"a"}, {"abcdef"}},
		},
		{
			name: "unterminated quote returns partial content",
			in:   "a,b\n1,\"never closed\nstill going",
			want: [][]string{{"a", "b"}, {"1", "never closed\nstill going"}},
		},
		{
			name: "byte order mark stripped",
			in:   "\uFEFFevent_id,title\n1,x\n",
			want: [][]string{{"event_id", "title"}, {"1", "x"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabular.Parse(tt.in))
		})
	}
}

func TestParseWithDelimiter(t *testing.T) {
	p := tabular.NewParser(tabular.WithDelimiter(';'))
	got := p.Parse("a;b\n\"x;y\";z\n")
	assert.Equal(t, [][]string{{"a", "b"}, {"x;y", "z"}}, got)
}

func TestTableRows(t *testing.T) {
	table := tabular.ParseTable("event_id, title ,event_id\n100,Roll Call,999\n200\n")

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"event_id", "title", "event_id"}, table.Header.Names())
	assert.Equal(t, 3, table.Header.Len())

	first := table.Rows[0]
	assert.Equal(t, "100", first.Get("event_id"), "first duplicate column wins")
	assert.Equal(t, "Roll Call", first.Get("title"))
	assert.Equal(t, "", first.Get("missing"))
	assert.Equal(t, 2, first.Line())

	short := table.Rows[1]
	assert.Equal(t, "200", short.Get("event_id"))
	assert.Equal(t, "", short.Get("title"), "short rows read missing fields as empty")

	idx, ok := table.Header.Index("title")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	var zero tabular.Row
	assert.Equal(t, "", zero.Get("title"))
}

func TestEmptyTable(t *testing.T) {
	table := tabular.NewTable(nil)
	assert.Empty(t, table.Rows)
	assert.Equal(t, 0, table.Header.Len())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	table, err := tabular.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2", table.Rows[0].Get("b"))

	_, err = tabular.ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}
