package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/councilvotes/internal/fixtures"
	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/pipeline"
	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/votes"
)

func run(t *testing.T, dir string, opts ...pipeline.Option) *pipeline.Result {
	t.Helper()
	logging.DisableLoggingForTest(t)
	res, err := pipeline.New(opts...).Run(context.Background(), dir)
	require.NoError(t, err)
	return res
}

func voteByItem(t *testing.T, ds *council.Dataset, id string) *council.Vote {
	t.Helper()
	for _, v := range ds.Votes {
		if v.ItemID == id {
			return v
		}
	}
	t.Fatalf("vote %s not found", id)
	return nil
}

func itemByID(t *testing.T, ds *council.Dataset, id string) *council.Item {
	t.Helper()
	for _, it := range ds.Items {
		if it.ItemID == id {
			return it
		}
	}
	t.Fatalf("item %s not found", id)
	return nil
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)

	d, err := pipeline.New().Discover(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, s := range d.Sources {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"Columbus-OH-2024-Q1-Voted-Items.csv",
		"Columbus-OH-2024-Q1-Votes.csv",
		"Columbus-OH-Q4-2023-Votes.csv",
	}, names)
	assert.Equal(t, schema.KindVotedItems, d.Sources[0].Kind)
	assert.Equal(t, schema.Period{Year: 2023, Quarter: 4}, d.Sources[2].Period)
	require.Len(t, d.Skipped, 1)
	assert.Equal(t, "Columbus-OH-2024-Q1-Persons.csv", filepath.Base(d.Skipped[0]))
}

func TestDiscoverGlob(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)

	d, err := pipeline.New(pipeline.WithGlob("*-Voted-Items.csv")).Discover(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, d.Sources, 1)
	assert.Empty(t, d.Skipped)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := pipeline.New().Discover(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}

func TestRunStandard(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	res := run(t, dir)
	ds := res.Dataset

	assert.Len(t, res.Files, 3)
	assert.Len(t, res.Skipped, 1)
	assert.Len(t, ds.Members, 5)
	assert.Len(t, ds.Meetings, 3)
	assert.Len(t, ds.Votes, 4)
	assert.Len(t, ds.Items, 4)
	assert.Equal(t, 4, res.Report.Summary.DuplicatesSkipped)
	assert.Equal(t, 3, res.Report.Summary.FilesProcessed)

	assert.Equal(t, 3, res.Files[0].Votes)
	assert.Equal(t, 0, res.Files[0].Duplicates)
	assert.Equal(t, 3, res.Files[1].Duplicates)
	assert.Equal(t, 4, res.Files[1].Items)
	assert.Equal(t, 1, res.Files[2].Duplicates)
	assert.Equal(t, fixtures.Members, res.Files[0].NewMembers)
	assert.Empty(t, res.Files[2].NewMembers)

	var order []string
	for _, v := range ds.Votes {
		order = append(order, v.ItemID)
	}
	assert.Equal(t, []string{"2001", "1001", "1002", "1003"}, order)
	assert.Equal(t, "2024-02-05", ds.LatestDate)
}

func TestRunTallyMatchesChoices(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	ds := run(t, dir).Dataset

	for _, v := range ds.Votes {
		assert.Equal(t, len(v.Choices), v.Tally.Total(), "item %s", v.ItemID)
	}

	v := voteByItem(t, ds, "1001")
	assert.Equal(t, votes.Tally{Ayes: 4, Absent: 1}, v.Tally)
	assert.Equal(t, []string{"https://example.test/a.pdf", "https://example.test/b.pdf"}, v.AttachmentLinks)
	assert.Equal(t, "4-0", v.RawTally)
	assert.Equal(t, "Jane Doe", v.Mover)
	assert.Equal(t, "2024-01-08", v.Date())

	hearing := voteByItem(t, ds, "2001")
	assert.Equal(t, votes.SectionPublicHearing, hearing.Section)
	assert.Equal(t, votes.ChoiceRecusal, hearing.Choices["Carlos Ruiz III"])
	assert.Equal(t, votes.Tally{Ayes: 3, Abstain: 1}, hearing.Tally)
}

func TestRunOutcomes(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	ds := run(t, dir).Dataset

	firstReading := voteByItem(t, ds, "1002")
	assert.Equal(t, votes.OutcomePass, firstReading.Outcome)
	assert.Equal(t, 0, firstReading.Tally.Total(), "zero-tally votes are kept")
	assert.Equal(t, agenda.CategoryFirstReading, firstReading.Category)
	assert.Equal(t, agenda.ImportanceHigh, firstReading.Importance)

	defeated := voteByItem(t, ds, "1003")
	assert.Equal(t, votes.OutcomeFail, defeated.Outcome)
	assert.Equal(t, votes.Tally{Ayes: 1, Nays: 3}, defeated.Tally)
	assert.Empty(t, defeated.Category)

	assert.Empty(t, voteByItem(t, ds, "1001").Category)
}

func TestRunNonVotedItems(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	ds := run(t, dir).Dataset

	rollCall := itemByID(t, ds, "1004")
	assert.Equal(t, agenda.CategoryRollCall, rollCall.Category)
	assert.Equal(t, agenda.ImportanceNoise, rollCall.Importance)
	assert.False(t, rollCall.Emitted())

	reading := itemByID(t, ds, "1005")
	assert.Equal(t, agenda.CategoryFirstReading, reading.Category)
	assert.Equal(t, agenda.ImportanceHigh, reading.Importance)
	assert.Equal(t, []string{"Budget & Finance", "Parks & Recreation"}, reading.Topics)
	assert.Contains(t, reading.Description, "\"Parks\" fund\nneeds")

	header := itemByID(t, ds, "1006")
	assert.Equal(t, agenda.KindHeader, header.Kind)
	assert.Nil(t, header.Topics)

	adjourn := itemByID(t, ds, "syn:101:5:adjournment")
	assert.Equal(t, agenda.ImportanceNoise, adjourn.Importance)
}

func TestRunWithClassifier(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	noise := agenda.Classification{Category: "ignored", Importance: agenda.ImportanceNoise, Kind: agenda.KindNoise}
	c := agenda.NewClassifier(agenda.WithRules([]agenda.Rule{}), agenda.WithFallback(noise))
	ds := run(t, dir, pipeline.WithClassifier(c)).Dataset

	require.NotEmpty(t, ds.Items)
	for _, it := range ds.Items {
		assert.Equal(t, "ignored", it.Category, it.ItemID)
		assert.False(t, it.Emitted(), it.ItemID)
	}
}

func TestRunMeetings(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	ds := run(t, dir).Dataset

	require.Len(t, ds.Meetings, 3)
	m200, m100, m101 := ds.Meetings[0], ds.Meetings[1], ds.Meetings[2]
	assert.Equal(t, "200", m200.EventID)

	assert.Equal(t, "2024-01-08", m100.Date)
	assert.Equal(t, "5:00 PM", m100.Time)
	assert.Equal(t, "Council Chambers", m100.Location)
	assert.Equal(t, 2, m100.VotedItems)
	assert.Equal(t, 1, m100.NonVotedItems, "roll call is not counted")
	assert.Equal(t, 2, m100.FirstReadingItems)

	assert.Equal(t, 1, m101.VotedItems)
	assert.Equal(t, 1, m101.NonVotedItems)
	assert.Equal(t, 1, m200.VotedItems)
}

func TestRunMembers(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	ds := run(t, dir).Dataset

	short := map[string]string{}
	current := map[string]bool{}
	for _, m := range ds.Members {
		short[m.Name] = m.ShortName
		current[m.Name] = m.Current
	}
	assert.Equal(t, map[string]string{
		"Ann Lee":         "Lee",
		"Carlos Ruiz III": "Ruiz III",
		"Emily Park":      "Park",
		"Jane Doe":        "J. Doe",
		"Robert Doe":      "R. Doe",
	}, short)
	assert.False(t, current["Robert Doe"])
	assert.True(t, current["Emily Park"])

	robert, ok := ds.MemberByName("Robert Doe")
	require.True(t, ok)
	assert.Equal(t, "2023-10-02", robert.FirstSeen)
	assert.Equal(t, "2024-01-08", robert.LastSeen)
	assert.Equal(t, 5, robert.ID)
}

func TestSupersetAloneMatchesMerge(t *testing.T) {
	merged := t.TempDir()
	fixtures.WriteCSV(t, merged, "X-2024-Q1-Voted-Items.csv", fixtures.Members, fixtures.VotedQ1(), false)
	fixtures.WriteCSV(t, merged, "X-2024-Q1-Votes.csv", fixtures.Members, fixtures.AllQ1(), false)

	alone := t.TempDir()
	fixtures.WriteCSV(t, alone, "X-2024-Q1-Votes.csv", fixtures.Members, fixtures.AllQ1(), false)

	a := run(t, merged).Dataset
	b := run(t, alone).Dataset
	assert.Equal(t, len(b.Votes), len(a.Votes))
	assert.Equal(t, len(b.Items), len(a.Items))
	assert.Equal(t, 7, len(a.Votes)+len(a.Items))
}

func TestConventionsDedupAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	fixtures.WriteCSV(t, dir, "X-2024-Q1-Votes.csv", fixtures.Members, fixtures.AllQ1(), false)
	fixtures.WriteCSV(t, dir, "X-Q1-2024-Votes.csv", fixtures.Members, fixtures.AllQ1(), true)

	res := run(t, dir)
	assert.Len(t, res.Dataset.Votes, 3)
	assert.Len(t, res.Dataset.Items, 4)
	assert.Equal(t, 7, res.Files[1].Duplicates)
}

func TestRunEmptyDir(t *testing.T) {
	res := run(t, t.TempDir())
	assert.Empty(t, res.Dataset.Votes)
	assert.Empty(t, res.Dataset.Members)
	assert.Equal(t, 0, res.Report.Summary.TotalVotes)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	fixtures.Standard(t, dir)
	logging.DisableLoggingForTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.New().Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
