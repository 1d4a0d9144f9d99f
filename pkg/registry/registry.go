// Package registry accumulates the entities of a run across input files:
// the union member set, meetings keyed by event, and the ledger of consumed
// item identifiers that deduplicates overlapping exports. A registry is
// built once, then frozen into a council.Dataset.
package registry

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// Members is the union of every member column seen so far.
type Members struct {
	byName map[string]*council.Member
}

// NewMembers returns an empty member set.
func NewMembers() *Members {
	return &Members{byName: make(map[string]*council.Member)}
}

// Merge adds the member columns of a file to the set and returns the names
// that were not known before, in column order.
func (m *Members) Merge(cols schema.Columns) []string {
	var added []string
	for _, c := range cols.Members {
		if _, ok := m.byName[c.Name]; ok {
			continue
		}
		m.byName[c.Name] = &council.Member{Name: c.Name}
		added = append(added, c.Name)
	}
	return added
}

// Get returns a member by normalized name.
func (m *Members) Get(name string) (*council.Member, bool) {
	member, ok := m.byName[name]
	return member, ok
}

// Observe records every member with a recorded choice on row as seen on
// date. "Present", blank and unrecognized cells do not count.
func (m *Members) Observe(row tabular.Fields, cols schema.Columns, date string) {
	for _, c := range cols.Members {
		if !votes.ParseChoice(row.Get(c.Header)).Recorded() {
			continue
		}
		if member, ok := m.byName[c.Name]; ok {
			member.Seen(date)
		}
	}
}

// Len returns the number of members.
func (m *Members) Len() int {
	return len(m.byName)
}

// Meetings indexes meetings by event identifier.
type Meetings struct {
	byEvent map[string]*council.Meeting
}

// NewMeetings returns an empty meeting index.
func NewMeetings() *Meetings {
	return &Meetings{byEvent: make(map[string]*council.Meeting)}
}

// Observe returns the meeting a row belongs to, creating it on first sight.
// Blank attributes of an existing meeting are filled from later rows.
func (m *Meetings) Observe(row tabular.Fields) *council.Meeting {
	date := NormalizeDate(row.Get(schema.ColEventDate))
	eventID := strings.TrimSpace(row.Get(schema.ColEventID))
	if eventID == "" {
		eventID = "date-" + date
	}

	meeting, ok := m.byEvent[eventID]
	if !ok {
		meeting = &council.Meeting{EventID: eventID}
		m.byEvent[eventID] = meeting
	}
	fill(&meeting.Date, date)
	fill(&meeting.Time, row.Get(schema.ColEventTime))
	fill(&meeting.Location, row.Get(schema.ColEventLocation))
	fill(&meeting.AgendaLink, row.Get(schema.ColAgendaLink))
	fill(&meeting.MinutesLink, row.Get(schema.ColMinutesLink))
	fill(&meeting.VideoLink, row.Get(schema.ColVideoLink))
	return meeting
}

// Len returns the number of meetings.
func (m *Meetings) Len() int {
	return len(m.byEvent)
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

// Ledger records consumed item identifiers across every file of a run.
type Ledger struct {
	claimed    map[string]struct{}
	duplicates int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{claimed: make(map[string]struct{})}
}

// Claim consumes an identifier. It returns false, and counts a duplicate,
// when the identifier was already consumed.
func (l *Ledger) Claim(key string) bool {
	if _, ok := l.claimed[key]; ok {
		l.duplicates++
		return false
	}
	l.claimed[key] = struct{}{}
	return true
}

// Len returns the number of consumed identifiers.
func (l *Ledger) Len() int {
	return len(l.claimed)
}

// Duplicates returns how many claims were rejected.
func (l *Ledger) Duplicates() int {
	return l.duplicates
}

// ItemKey returns the dedup key of a row: its item identifier, or a
// synthetic key built from event, sequence and title when that is blank.
func ItemKey(row tabular.Fields) string {
	if id := strings.TrimSpace(row.Get(schema.ColEventItemID)); id != "" {
		return id
	}
	return "syn:" + strings.Join([]string{
		strings.TrimSpace(row.Get(schema.ColEventID)),
		strings.TrimSpace(row.Get(schema.ColAgendaSequence)),
		strings.ToLower(strings.TrimSpace(row.Get(schema.ColTitle))),
	}, ":")
}

// NormalizeDate reduces a date or timestamp cell to YYYY-MM-DD. Values that
// do not start with a date are returned trimmed.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(constants.DateLayout) {
		return raw
	}
	if _, err := time.Parse(constants.DateLayout, raw[:len(constants.DateLayout)]); err != nil {
		return raw
	}
	return raw[:len(constants.DateLayout)]
}

// Sequence parses an agenda sequence cell. Unparseable values are 0.
func Sequence(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Registry is the mutable state of one run.
type Registry struct {
	Members  *Members
	Meetings *Meetings
	Ledger   *Ledger

	votes  []*council.Vote
	items  []*council.Item
	frozen bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		Members:  NewMembers(),
		Meetings: NewMeetings(),
		Ledger:   NewLedger(),
	}
}

// AddVote appends a vote record.
func (r *Registry) AddVote(v *council.Vote) {
	r.mustBeOpen()
	r.votes = append(r.votes, v)
}

// AddItem appends a non-voted item.
func (r *Registry) AddItem(i *council.Item) {
	r.mustBeOpen()
	r.items = append(r.items, i)
}

func (r *Registry) mustBeOpen() {
	if r.frozen {
		panic("registry: add after Freeze")
	}
}

// Freeze closes the registry and returns the dataset with IDs assigned.
func (r *Registry) Freeze() *council.Dataset {
	r.frozen = true
	ds := &council.Dataset{
		Members:  make([]*council.Member, 0, len(r.Members.byName)),
		Meetings: make([]*council.Meeting, 0, len(r.Meetings.byEvent)),
		Votes:    r.votes,
		Items:    r.items,
	}
	for _, m := range r.Members.byName {
		ds.Members = append(ds.Members, m)
	}
	for _, m := range r.Meetings.byEvent {
		ds.Meetings = append(ds.Meetings, m)
	}
	ds.AssignIDs()
	return ds
}
