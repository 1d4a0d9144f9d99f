package emit

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/stats"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// MemberDoc is a member with statistics attached.
type MemberDoc struct {
	*council.Member
	Stats stats.MemberStats `json:"stats"`
}

// MemberVote is one entry of a member's vote history.
type MemberVote struct {
	VoteID    int           `json:"vote_id"`
	MeetingID int           `json:"meeting_id"`
	Date      string        `json:"date"`
	Title     string        `json:"title"`
	Outcome   votes.Outcome `json:"outcome"`
	Section   votes.Section `json:"section"`
	Choice    votes.Choice  `json:"choice"`
	Topics    []string      `json:"topics"`
}

// MemberDetail is a member with the full vote history, newest first.
type MemberDetail struct {
	MemberDoc
	Votes []MemberVote `json:"votes"`
}

// AgendaEntry is one line of a meeting agenda, voted or not.
type AgendaEntry struct {
	Type         string        `json:"type"`
	Sequence     int           `json:"sequence"`
	AgendaNumber string        `json:"agenda_number,omitempty"`
	ItemID       string        `json:"item_id"`
	Title        string        `json:"title"`
	MatterFile   string        `json:"matter_file,omitempty"`
	VoteID       int           `json:"vote_id,omitempty"`
	Outcome      votes.Outcome `json:"outcome,omitempty"`
	Tally        *votes.Tally  `json:"tally,omitempty"`
	Category     string        `json:"category,omitempty"`
	Importance   string        `json:"importance,omitempty"`
	Topics       []string      `json:"topics,omitempty"`
}

// MeetingDetail is a meeting with its full agenda in sequence order.
type MeetingDetail struct {
	*council.Meeting
	Agenda []AgendaEntry `json:"agenda"`
}

// VoteSummary is a vote as listed in the votes documents.
type VoteSummary struct {
	ID          int           `json:"id"`
	MeetingID   int           `json:"meeting_id"`
	Date        string        `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	MatterFile  string        `json:"matter_file,omitempty"`
	Outcome     votes.Outcome `json:"outcome"`
	Section     votes.Section `json:"section"`
	Tally       votes.Tally   `json:"tally"`
	Topics      []string      `json:"topics"`
	Category    string        `json:"category,omitempty"`
	Importance  string        `json:"importance,omitempty"`
}

// MemberChoice is one row of a vote breakdown.
type MemberChoice struct {
	MemberID  int          `json:"member_id"`
	Name      string       `json:"name"`
	ShortName string       `json:"short_name"`
	Choice    votes.Choice `json:"choice"`
}

// VoteDetail is a vote with its member-by-member breakdown in member order.
type VoteDetail struct {
	*council.Vote
	MeetingID int            `json:"meeting_id"`
	Date      string         `json:"date"`
	Members   []MemberChoice `json:"members"`
}

// SearchItem is a high-importance non-voted item in the search index.
type SearchItem struct {
	ItemID      string   `json:"item_id"`
	MeetingID   int      `json:"meeting_id"`
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	MatterFile  string   `json:"matter_file,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Label       string   `json:"label"`
	Topics      []string `json:"topics"`
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func meetingID(m *council.Meeting) int {
	if m == nil {
		return 0
	}
	return m.ID
}

func newestFirst(vs []*council.Vote) []*council.Vote {
	out := slices.Clone(vs)
	slices.SortFunc(out, func(a, b *council.Vote) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func (e *Emitter) voteSummary(v *council.Vote) VoteSummary {
	return VoteSummary{
		ID:          v.ID,
		MeetingID:   meetingID(v.Meeting),
		Date:        v.Date(),
		Title:       v.Title,
		Description: Truncate(v.Description, e.opts.truncate),
		MatterFile:  v.MatterFile,
		Outcome:     v.Outcome,
		Section:     v.Section,
		Tally:       v.Tally,
		Topics:      v.Topics,
		Category:    v.Category,
		Importance:  string(v.Importance),
	}
}

func memberHistory(m *council.Member, newest []*council.Vote) []MemberVote {
	out := []MemberVote{}
	for _, v := range newest {
		c, ok := v.Choices[m.Name]
		if !ok {
			continue
		}
		out = append(out, MemberVote{
			VoteID:    v.ID,
			MeetingID: meetingID(v.Meeting),
			Date:      v.Date(),
			Title:     v.Title,
			Outcome:   v.Outcome,
			Section:   v.Section,
			Choice:    c,
			Topics:    v.Topics,
		})
	}
	return out
}

// meetingAgenda merges the votes and emitted items of one meeting in
// sequence order.
func meetingAgenda(vs []*council.Vote, items []*council.Item) []AgendaEntry {
	out := []AgendaEntry{}
	for _, v := range vs {
		tally := v.Tally
		out = append(out, AgendaEntry{
			Type:         "vote",
			Sequence:     v.Sequence,
			AgendaNumber: v.AgendaNumber,
			ItemID:       v.ItemID,
			Title:        v.Title,
			MatterFile:   v.MatterFile,
			VoteID:       v.ID,
			Outcome:      v.Outcome,
			Tally:        &tally,
			Category:     v.Category,
			Importance:   string(v.Importance),
			Topics:       v.Topics,
		})
	}
	for _, it := range items {
		if !it.Emitted() {
			continue
		}
		out = append(out, AgendaEntry{
			Type:         string(it.Kind),
			Sequence:     it.Sequence,
			AgendaNumber: it.AgendaNumber,
			ItemID:       it.ItemID,
			Title:        it.Title,
			MatterFile:   it.MatterFile,
			Category:     it.Category,
			Importance:   string(it.Importance),
			Topics:       it.Topics,
		})
	}
	slices.SortStableFunc(out, func(a, b AgendaEntry) int {
		return cmp.Or(cmp.Compare(a.Sequence, b.Sequence), council.CompareNatural(a.ItemID, b.ItemID))
	})
	return out
}

func voteBreakdown(v *council.Vote, members []*council.Member) []MemberChoice {
	out := []MemberChoice{}
	for _, m := range members {
		c, ok := v.Choices[m.Name]
		if !ok {
			continue
		}
		out = append(out, MemberChoice{MemberID: m.ID, Name: m.Name, ShortName: m.ShortName, Choice: c})
	}
	return out
}

func (e *Emitter) searchItem(it *council.Item) SearchItem {
	return SearchItem{
		ItemID:      it.ItemID,
		MeetingID:   meetingID(it.Meeting),
		Date:        it.Date(),
		Title:       it.Title,
		MatterFile:  it.MatterFile,
		Description: Truncate(it.Description, e.opts.truncate),
		Category:    it.Category,
		Label:       agenda.Label(it.Category),
		Topics:      it.Topics,
	}
}
