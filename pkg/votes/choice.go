// Package votes normalizes roll-call data: member choices, item outcomes,
// agenda sections and the per-choice tally of a row.
package votes

import "strings"

// Choice is one member's recorded position on an item.
type Choice string

// Choices. The zero value means no recorded choice.
const (
	ChoiceNone    Choice = ""
	ChoiceAye     Choice = "AYE"
	ChoiceNay     Choice = "NAY"
	ChoiceAbstain Choice = "ABSTAIN"
	ChoiceAbsent  Choice = "ABSENT"
	ChoiceRecusal Choice = "RECUSAL"
)

var choices = map[string]Choice{
	"yes":         ChoiceAye,
	"aye":         ChoiceAye,
	"affirmative": ChoiceAye,
	"no":          ChoiceNay,
	"nay":         ChoiceNay,
	"negative":    ChoiceNay,
	"abstain":     ChoiceAbstain,
	"abstained":   ChoiceAbstain,
	"absent":      ChoiceAbsent,
	"absent@vote": ChoiceAbsent,
	"excused":     ChoiceAbsent,
	"recuse":      ChoiceRecusal,
	"recused":     ChoiceRecusal,
	"recusal":     ChoiceRecusal,
}

// ParseChoice maps a raw cell value to a Choice. Unrecognized values,
// including "Present" and blank cells, map to ChoiceNone.
func ParseChoice(raw string) Choice {
	return choices[strings.ToLower(strings.TrimSpace(raw))]
}

// Recorded reports whether the choice counts toward the tally.
func (c Choice) Recorded() bool {
	return c != ChoiceNone
}

// Comparable reports whether the choice takes a side (aye or nay).
func (c Choice) Comparable() bool {
	return c == ChoiceAye || c == ChoiceNay
}
