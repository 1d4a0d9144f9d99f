// Package report renders a human-readable markdown digest of a dataset.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/stats"
)

// Render writes the digest of ds and rep to w.
func Render(w io.Writer, ds *council.Dataset, rep *stats.Report) error {
	doc := md.NewMarkdown(w)
	s := rep.Summary

	doc.H1("Council Voting Summary").LF()
	if s.DateRange.First != "" {
		doc.PlainText(fmt.Sprintf("Meetings from %s to %s.", s.DateRange.First, s.DateRange.Last)).LF().LF()
	}

	doc.H2("Totals").LF()
	doc.BulletList(
		fmt.Sprintf("Members: %d (%d current)", s.TotalMembers, s.CurrentMembers),
		fmt.Sprintf("Meetings: %d", s.TotalMeetings),
		fmt.Sprintf("Votes: %d (%d passed, %d failed, %d unanimous)", s.TotalVotes, s.Passed, s.Failed, s.UnanimousVotes),
		fmt.Sprintf("Votes with no recorded choices: %d", s.ZeroTallyVotes),
		fmt.Sprintf("Non-voted items: %d", s.NonVotedItems),
		fmt.Sprintf("Files processed: %d (%d duplicate rows skipped)", s.FilesProcessed, s.DuplicatesSkipped),
	).LF()

	doc.H2("Non-Voted Items by Importance").LF()
	tiers := make([][]string, 0, len(agenda.Importances))
	for _, imp := range agenda.Importances {
		tiers = append(tiers, []string{agenda.Label(string(imp)), strconv.Itoa(s.NonVotedByImportance[imp])})
	}
	doc.Table(md.TableSet{Header: []string{"Importance", "Items"}, Rows: tiers}).LF()

	if len(s.ByYear) > 0 {
		doc.H2("Votes by Year").LF()
		rows := make([][]string, 0, len(s.ByYear))
		for _, y := range s.Years() {
			key := strconv.Itoa(y)
			rows = append(rows, []string{key, strconv.Itoa(s.ByYear[key])})
		}
		doc.Table(md.TableSet{Header: []string{"Year", "Votes"}, Rows: rows}).LF()
	}

	if len(s.ByTopic) > 0 {
		doc.H2("Votes by Topic").LF()
		doc.Table(md.TableSet{Header: []string{"Topic", "Votes"}, Rows: countRows(s.ByTopic)}).LF()
	}

	doc.H2("Members").LF()
	members := make([][]string, 0, len(ds.Members))
	for _, m := range ds.Members {
		ms := rep.Member(m.Name)
		current := ""
		if m.Current {
			current = "yes"
		}
		members = append(members, []string{
			m.Name,
			m.ShortName,
			current,
			strconv.Itoa(ms.TotalVotes),
			percent(ms.AyePercentage),
			percent(ms.ParticipationRate),
			percent(ms.DissentRate),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "Short Name", "Current", "Votes", "Aye", "Participation", "Dissent"},
		Rows:   members,
	}).LF()

	if rep.Alignment != nil && len(rep.Alignment.Pairs) > 0 {
		doc.H2("Most Aligned").LF()
		doc.Table(pairTable(rep.Alignment.MostAligned)).LF()
		doc.H2("Least Aligned").LF()
		doc.Table(pairTable(rep.Alignment.LeastAligned)).LF()
	}

	return doc.Build()
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func pairTable(pairs []stats.Pair) md.TableSet {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.MemberA, p.MemberB, strconv.Itoa(p.Shared), percent(p.Rate)})
	}
	return md.TableSet{Header: []string{"Member", "Member", "Shared Votes", "Agreement"}, Rows: rows}
}

// countRows orders a count map by count descending, then key.
func countRows(counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(counts[b], counts[a]), cmp.Compare(a, b))
	})
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k, strconv.Itoa(counts[k])}
	}
	return rows
}
