// Package stats computes per-member participation and dissent figures,
// pairwise member alignment, and the dataset-wide summary.
package stats

import (
	"math"

	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// Round2 rounds to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Percent returns n/d as a percentage rounded to two decimals, or 0 when d
// is 0.
func Percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return Round2(float64(n) * 100 / float64(d))
}

// MemberStats are one member's voting figures.
type MemberStats struct {
	TotalVotes  int `json:"total_votes"`
	Ayes        int `json:"ayes"`
	Nays        int `json:"nays"`
	Abstentions int `json:"abstentions"`
	Absences    int `json:"absences"`
	Recusals    int `json:"recusals"`

	WinningSide   int `json:"winning_side"`
	LosingSide    int `json:"losing_side"`
	CloseDissents int `json:"close_dissents"`

	AyePercentage     float64 `json:"aye_percentage"`
	ParticipationRate float64 `json:"participation_rate"`
	DissentRate       float64 `json:"dissent_rate"`
}

// Record counts one choice on a vote with the given outcome and tally.
func (s *MemberStats) Record(c votes.Choice, outcome votes.Outcome, tally votes.Tally) {
	if !c.Recorded() {
		return
	}
	s.TotalVotes++
	switch c {
	case votes.ChoiceAye:
		s.Ayes++
	case votes.ChoiceNay:
		s.Nays++
	case votes.ChoiceAbstain:
		s.Abstentions++
	case votes.ChoiceAbsent:
		s.Absences++
	case votes.ChoiceRecusal:
		s.Recusals++
	}

	if !c.Comparable() || (outcome != votes.OutcomePass && outcome != votes.OutcomeFail) {
		return
	}
	losing := (outcome == votes.OutcomePass && c == votes.ChoiceNay) ||
		(outcome == votes.OutcomeFail && c == votes.ChoiceAye)
	if !losing {
		s.WinningSide++
		return
	}
	s.LosingSide++
	if tally.Margin() <= constants.CloseDissentMargin {
		s.CloseDissents++
	}
}

// finish derives the rates from the counts.
func (s *MemberStats) finish() {
	s.AyePercentage = Percent(s.Ayes, s.TotalVotes)
	s.ParticipationRate = Percent(s.TotalVotes-s.Absences, s.TotalVotes)
	s.DissentRate = Percent(s.LosingSide, s.WinningSide+s.LosingSide)
}

// Report is every statistic derived from a dataset.
type Report struct {
	// Members maps member name to statistics. Every member of the dataset
	// has an entry.
	Members   map[string]*MemberStats
	Alignment *Alignment
	Summary   *Summary
}

// Member returns the statistics of a member, or zero statistics when the
// name is unknown.
func (r *Report) Member(name string) MemberStats {
	if s, ok := r.Members[name]; ok {
		return *s
	}
	return MemberStats{}
}

// Option configures Compute.
type Option func(*options)

type options struct {
	files      int
	duplicates int
}

// WithSourceCounts records how many files were read and how many duplicate
// rows were skipped, for the summary.
func WithSourceCounts(files, duplicates int) Option {
	return func(o *options) {
		o.files = files
		o.duplicates = duplicates
	}
}

// Compute derives member statistics, alignment and the summary from a frozen
// dataset.
func Compute(ds *council.Dataset, opts ...Option) *Report {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	r := &Report{Members: make(map[string]*MemberStats, len(ds.Members))}
	for _, m := range ds.Members {
		r.Members[m.Name] = &MemberStats{}
	}
	for _, v := range ds.Votes {
		for name, c := range v.Choices {
			s, ok := r.Members[name]
			if !ok {
				continue
			}
			s.Record(c, v.Outcome, v.Tally)
		}
	}
	for _, s := range r.Members {
		s.finish()
	}

	r.Alignment = ComputeAlignment(ds)
	r.Summary = Summarize(ds, o.files, o.duplicates)
	return r
}
