// Package schema describes the vote export layout: the fixed base columns,
// the dynamic member columns that follow them, and the file-naming
// conventions that identify a reporting period.
package schema

import (
	"slices"

	"github.com/agentstation/councilvotes/pkg/tabular"
)

// Base column names, in export order.
const (
	ColEventID               = "event_id"
	ColEventDate             = "event_date"
	ColEventTime             = "event_time"
	ColEventLocation         = "event_location"
	ColEventItemID           = "event_item_id"
	ColAgendaNumber          = "agenda_number"
	ColAgendaSequence        = "agenda_sequence"
	ColMatterFile            = "matter_file"
	ColMatterName            = "matter_name"
	ColMatterTitle           = "matter_title"
	ColMatterType            = "matter_type"
	ColMatterTypeName        = "matter_type_name"
	ColMatterStatus          = "matter_status"
	ColMatterStatusName      = "matter_status_name"
	ColMatterIntroDate       = "matter_intro_date"
	ColMatterPassedDate      = "matter_passed_date"
	ColMatterEnactmentDate   = "matter_enactment_date"
	ColMatterEnactmentNumber = "matter_enactment_number"
	ColMatterRequester       = "matter_requester"
	ColMatterBodyName        = "matter_body_name"
	ColTitle                 = "title"
	ColAction                = "action"
	ColActionText            = "action_text"
	ColPassed                = "passed"
	ColConsent               = "consent"
	ColTally                 = "tally"
	ColMover                 = "mover"
	ColSeconder              = "seconder"
	ColRollCallFlag          = "roll_call_flag"
	ColAgendaLink            = "agenda_link"
	ColMinutesLink           = "minutes_link"
	ColVideoLink             = "video_link"
	ColAttachmentLinks       = "attachment_links"
	ColFullText              = "Agenda_item_fulltext"
)

// BaseColumns lists every known non-member column in export order.
var BaseColumns = []string{
	ColEventID, ColEventDate, ColEventTime, ColEventLocation, ColEventItemID,
	ColAgendaNumber, ColAgendaSequence, ColMatterFile, ColMatterName,
	ColMatterTitle, ColMatterType, ColMatterTypeName, ColMatterStatus,
	ColMatterStatusName, ColMatterIntroDate, ColMatterPassedDate,
	ColMatterEnactmentDate, ColMatterEnactmentNumber, ColMatterRequester,
	ColMatterBodyName, ColTitle, ColAction, ColActionText, ColPassed,
	ColConsent, ColTally, ColMover, ColSeconder, ColRollCallFlag,
	ColAgendaLink, ColMinutesLink, ColVideoLink, ColAttachmentLinks,
	ColFullText,
}

var baseSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(BaseColumns))
	for _, c := range BaseColumns {
		m[c] = struct{}{}
	}
	return m
}()

// IsBaseColumn reports whether name is one of the fixed base columns.
func IsBaseColumn(name string) bool {
	_, ok := baseSet[name]
	return ok
}

// MemberColumn is a header column that holds one member's votes.
type MemberColumn struct {
	// Header is the column name exactly as it appears in the file.
	Header string
	// Name is the normalized member name used as the natural key.
	Name string
}

// Columns is the resolved layout of one file.
type Columns struct {
	Members []MemberColumn
	// Missing lists base columns absent from the file. Reads of these
	// columns yield empty strings.
	Missing []string
}

// ResolveColumns infers the member columns of a file from its header.
// Any non-empty header that is not a base column is a member. Two headers
// that normalize to the same member keep the first.
func ResolveColumns(h tabular.Header) Columns {
	var cols Columns
	seen := make(map[string]struct{})
	names := h.Names()
	for _, header := range names {
		if header == "" || IsBaseColumn(header) {
			continue
		}
		name := NormalizeName(header)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cols.Members = append(cols.Members, MemberColumn{Header: header, Name: name})
	}
	for _, c := range BaseColumns {
		if !slices.Contains(names, c) {
			cols.Missing = append(cols.Missing, c)
		}
	}
	return cols
}

// MemberNames returns the normalized member names in column order.
func (c Columns) MemberNames() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.Name
	}
	return out
}
