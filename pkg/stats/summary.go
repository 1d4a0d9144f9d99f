package stats

import (
	"slices"
	"strconv"

	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// DateRange is the first and last meeting date of a dataset.
type DateRange struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Summary is the dataset-wide statistics document.
type Summary struct {
	TotalMembers   int `json:"total_members"`
	CurrentMembers int `json:"current_members"`
	TotalMeetings  int `json:"total_meetings"`
	TotalVotes     int `json:"total_votes"`
	// NonVotedItems counts emitted non-voted items, noise excluded.
	NonVotedItems int `json:"total_non_voted_items"`

	Passed         int `json:"passed"`
	Failed         int `json:"failed"`
	UnanimousVotes int `json:"unanimous_votes"`
	ZeroTallyVotes int `json:"zero_tally_votes"`

	// NonVotedByImportance counts every non-voted item by tier, noise
	// included.
	NonVotedByImportance map[agenda.Importance]int `json:"non_voted_by_importance"`

	DuplicatesSkipped int `json:"duplicates_skipped"`
	FilesProcessed    int `json:"files_processed"`

	DateRange DateRange      `json:"date_range"`
	ByYear    map[string]int `json:"votes_by_year"`
	ByTopic   map[string]int `json:"votes_by_topic"`
	BySection map[string]int `json:"votes_by_section"`
}

// Years returns the distinct vote years, ascending.
func (s *Summary) Years() []int {
	out := make([]int, 0, len(s.ByYear))
	for y := range s.ByYear {
		if n, err := strconv.Atoi(y); err == nil {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// Summarize computes the summary of a frozen dataset.
func Summarize(ds *council.Dataset, files, duplicates int) *Summary {
	s := &Summary{
		TotalMembers:         len(ds.Members),
		TotalMeetings:        len(ds.Meetings),
		TotalVotes:           len(ds.Votes),
		NonVotedByImportance: make(map[agenda.Importance]int, len(agenda.Importances)),
		DuplicatesSkipped:    duplicates,
		FilesProcessed:       files,
		ByYear:               make(map[string]int),
		ByTopic:              make(map[string]int),
		BySection:            make(map[string]int),
	}
	for _, imp := range agenda.Importances {
		s.NonVotedByImportance[imp] = 0
	}

	for _, m := range ds.Members {
		if m.Current {
			s.CurrentMembers++
		}
	}
	for _, m := range ds.Meetings {
		if m.Date == "" {
			continue
		}
		if s.DateRange.First == "" || m.Date < s.DateRange.First {
			s.DateRange.First = m.Date
		}
		if m.Date > s.DateRange.Last {
			s.DateRange.Last = m.Date
		}
	}

	for _, v := range ds.Votes {
		switch v.Outcome {
		case votes.OutcomePass:
			s.Passed++
		case votes.OutcomeFail:
			s.Failed++
		}
		if v.Tally.Unanimous() {
			s.UnanimousVotes++
		}
		if v.Tally.Total() == 0 {
			s.ZeroTallyVotes++
		}
		if y := Year(v.Date()); y != "" {
			s.ByYear[y]++
		}
		for _, t := range v.Topics {
			s.ByTopic[t]++
		}
		s.BySection[string(v.Section)]++
	}

	for _, it := range ds.Items {
		s.NonVotedByImportance[it.Importance]++
		if it.Emitted() {
			s.NonVotedItems++
		}
	}
	return s
}

// Year returns the YYYY prefix of a date, or "" when it has none.
func Year(date string) string {
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}
