// Package council holds the entity model of a processed dataset: members,
// meetings, votes and non-voted agenda items, together with the
// deterministic ID assignment that runs once every input has been read.
package council

import (
	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// Member is a council member, keyed by normalized full name.
type Member struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	FirstSeen string `json:"first_seen,omitempty"`
	LastSeen  string `json:"last_seen,omitempty"`
	Current   bool   `json:"is_current"`
}

// Seen widens the member's service range to include date.
func (m *Member) Seen(date string) {
	if date == "" {
		return
	}
	if m.FirstSeen == "" || date < m.FirstSeen {
		m.FirstSeen = date
	}
	if date > m.LastSeen {
		m.LastSeen = date
	}
}

// Meeting is one council meeting, keyed by its event identifier.
type Meeting struct {
	ID          int    `json:"id"`
	EventID     string `json:"event_id"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	AgendaLink  string `json:"agenda_link,omitempty"`
	MinutesLink string `json:"minutes_link,omitempty"`
	VideoLink   string `json:"video_link,omitempty"`

	VotedItems        int `json:"voted_items"`
	NonVotedItems     int `json:"non_voted_items"`
	FirstReadingItems int `json:"first_reading_items"`
}

// Vote is an agenda item with a recorded roll call.
type Vote struct {
	ID           int      `json:"id"`
	ItemID       string   `json:"item_id"`
	Meeting      *Meeting `json:"-"`
	Sequence     int      `json:"sequence"`
	AgendaNumber string   `json:"agenda_number,omitempty"`

	Title            string   `json:"title"`
	MatterTitle      string   `json:"matter_title,omitempty"`
	Description      string   `json:"description,omitempty"`
	MatterFile       string   `json:"matter_file,omitempty"`
	MatterTypeName   string   `json:"matter_type,omitempty"`
	MatterStatusName string   `json:"matter_status,omitempty"`
	Action           string   `json:"action,omitempty"`
	ActionText       string   `json:"action_text,omitempty"`
	Mover            string   `json:"mover,omitempty"`
	Seconder         string   `json:"seconder,omitempty"`
	RawTally         string   `json:"raw_tally,omitempty"`
	AttachmentLinks  []string `json:"attachment_links,omitempty"`

	Outcome votes.Outcome `json:"outcome"`
	Section votes.Section `json:"section"`
	Tally   votes.Tally   `json:"tally"`
	Topics  []string      `json:"topics"`

	// Category and Importance are set for procedural votes: rows whose
	// passed flag is unset but whose outcome resolved to PASS.
	Category   string            `json:"category,omitempty"`
	Importance agenda.Importance `json:"importance,omitempty"`

	// Choices maps member name to recorded choice.
	Choices map[string]votes.Choice `json:"-"`
}

// Date returns the date of the vote's meeting.
func (v *Vote) Date() string {
	if v.Meeting == nil {
		return ""
	}
	return v.Meeting.Date
}

// Item is an agenda item without a recorded vote.
type Item struct {
	ItemID       string   `json:"item_id"`
	Meeting      *Meeting `json:"-"`
	Sequence     int      `json:"sequence"`
	AgendaNumber string   `json:"agenda_number,omitempty"`

	Title       string `json:"title"`
	MatterTitle string `json:"matter_title,omitempty"`
	MatterFile  string `json:"matter_file,omitempty"`
	Description string `json:"description,omitempty"`
	Action      string `json:"action,omitempty"`

	agenda.Classification
	Topics []string `json:"topics,omitempty"`
}

// Date returns the date of the item's meeting.
func (i *Item) Date() string {
	if i.Meeting == nil {
		return ""
	}
	return i.Meeting.Date
}

// Emitted reports whether the item appears in any item document.
func (i *Item) Emitted() bool {
	return i.Importance != agenda.ImportanceNoise
}

// Dataset is the frozen result of a run. Every slice is in ID order.
type Dataset struct {
	Members  []*Member
	Meetings []*Meeting
	Votes    []*Vote
	Items    []*Item

	// LatestDate is the most recent meeting date in the dataset.
	LatestDate string
}

// MemberByName returns the member with the given natural key.
func (d *Dataset) MemberByName(name string) (*Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
