package council

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// AssignIDs sorts every collection into canonical order and numbers it from
// 1. Members sort by name, meetings by date then event ID, votes by date,
// meeting, sequence, then item ID. Short names and the current-service flag
// are resolved here too, since both depend on the complete member set.
func (d *Dataset) AssignIDs() {
	slices.SortFunc(d.Members, func(a, b *Member) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.Name, b.Name),
		)
	})
	for i, m := range d.Members {
		m.ID = i + 1
	}

	slices.SortFunc(d.Meetings, func(a, b *Meeting) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			CompareNatural(a.EventID, b.EventID),
		)
	})
	d.LatestDate = ""
	for i, m := range d.Meetings {
		m.ID = i + 1
		if m.Date > d.LatestDate {
			d.LatestDate = m.Date
		}
	}

	slices.SortFunc(d.Votes, func(a, b *Vote) int {
		return cmp.Or(
			cmp.Compare(a.Date(), b.Date()),
			cmp.Compare(meetingID(a.Meeting), meetingID(b.Meeting)),
			cmp.Compare(a.Sequence, b.Sequence),
			CompareNatural(a.ItemID, b.ItemID),
		)
	})
	for i, v := range d.Votes {
		v.ID = i + 1
	}

	slices.SortFunc(d.Items, func(a, b *Item) int {
		return cmp.Or(
			cmp.Compare(meetingID(a.Meeting), meetingID(b.Meeting)),
			cmp.Compare(a.Sequence, b.Sequence),
			CompareNatural(a.ItemID, b.ItemID),
		)
	})

	names := make([]string, len(d.Members))
	for i, m := range d.Members {
		names[i] = m.Name
	}
	short := ShortNames(names)
	for _, m := range d.Members {
		m.ShortName = short[m.Name]
		m.Current = m.LastSeen != "" && m.LastSeen == d.LatestDate
	}
}

func meetingID(m *Meeting) int {
	if m == nil {
		return 0
	}
	return m.ID
}

// CompareNatural orders two identifiers numerically when both are integers
// and lexically otherwise. Numbers sort before non-numbers.
func CompareNatural(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(ai, bi)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
