package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		ok     bool
		period schema.Period
		kind   schema.FileKind
		prefix string
	}{
		{
			name:   "year first all items",
			path:   "/data/Columbus-OH-2023-Q1-Votes.csv",
			ok:     true,
			period: schema.Period{Year: 2023, Quarter: 1},
			kind:   schema.KindAllItems,
			prefix: "Columbus-OH",
		},
		{
			name:   "year first voted items",
			path:   "Columbus-OH-2024-Q3-Voted-Items.csv",
			ok:     true,
			period: schema.Period{Year: 2024, Quarter: 3},
			kind:   schema.KindVotedItems,
			prefix: "Columbus-OH",
		},
		{
			name:   "quarter first all items",
			path:   "Columbus-OH-Q1-2023-Votes.csv",
			ok:     true,
			period: schema.Period{Year: 2023, Quarter: 1},
			kind:   schema.KindAllItems,
			prefix: "Columbus-OH",
		},
		{
			name:   "quarter first voted items",
			path:   "Columbus-OH-Q4-2022-Voted-Items.csv",
			ok:     true,
			period: schema.Period{Year: 2022, Quarter: 4},
			kind:   schema.KindVotedItems,
			prefix: "Columbus-OH",
		},
		{name: "persons export", path: "Columbus-OH-2023-Q1-Persons.csv"},
		{name: "quarter out of range", path: "Columbus-OH-2023-Q5-Votes.csv"},
		{name: "not csv", path: "Columbus-OH-2023-Q1-Votes.json"},
		{name: "unrelated", path: "notes.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := schema.ParseFileName(tt.path)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.period, f.Period)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.prefix, f.Prefix)
			assert.Equal(t, tt.path, f.Path)
		})
	}
}

func TestConventionsAgreeOnPeriod(t *testing.T) {
	a, ok := schema.ParseFileName("X-2023-Q2-Votes.csv")
	require.True(t, ok)
	b, ok := schema.ParseFileName("X-Q2-2023-Votes.csv")
	require.True(t, ok)
	assert.Equal(t, a.Period, b.Period)
	assert.Equal(t, "2023-Q2", a.Period.String())
}

func TestResolveColumns(t *testing.T) {
	header := append([]string{}, schema.BaseColumns...)
	header = append(header, "Jane  Doe", "", "John Smith III", "Jane Doe")
	table := tabular.NewTable([][]string{header})

	cols := schema.ResolveColumns(table.Header)
	assert.Equal(t, []string{"Jane Doe", "John Smith III"}, cols.MemberNames())
	assert.Equal(t, "Jane  Doe", cols.Members[0].Header)
	assert.Empty(t, cols.Missing)
}

func TestResolveColumnsMissingBase(t *testing.T) {
	table := tabular.NewTable([][]string{{"event_id", "title", "passed", "Ann Lee"}})

	cols := schema.ResolveColumns(table.Header)
	assert.Equal(t, []string{"Ann Lee"}, cols.MemberNames())
	assert.Contains(t, cols.Missing, schema.ColEventDate)
	assert.NotContains(t, cols.Missing, schema.ColTitle)
	assert.Len(t, cols.Missing, len(schema.BaseColumns)-3)
}

func TestBaseColumns(t *testing.T) {
	assert.Len(t, schema.BaseColumns, 34)
	assert.True(t, schema.IsBaseColumn("Agenda_item_fulltext"))
	assert.False(t, schema.IsBaseColumn("Jane Doe"))
}

func TestNormalizeName(t *testing.T) {
	// "e" + combining acute vs the precomposed form.
	decomposed := "Jose\u0301 Ruiz"
	precomposed := "Jos\u00e9 Ruiz"

	assert.Equal(t, precomposed, schema.NormalizeName(decomposed))
	assert.Equal(t, "Jane Doe", schema.NormalizeName("  Jane \t Doe "))
	assert.Equal(t, "", schema.NormalizeName("   "))
	assert.False(t, strings.Contains(schema.NormalizeName("A  B"), "  "))
}
