package votes

import (
	"strings"

	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

// Tally is the per-choice count of one item. Recusals are counted under
// Abstain so the four fields always sum to the recorded choices.
type Tally struct {
	Ayes    int `json:"ayes"`
	Nays    int `json:"nays"`
	Abstain int `json:"abstain"`
	Absent  int `json:"absent"`
}

// Add counts one choice.
func (t *Tally) Add(c Choice) {
	switch c {
	case ChoiceAye:
		t.Ayes++
	case ChoiceNay:
		t.Nays++
	case ChoiceAbstain, ChoiceRecusal:
		t.Abstain++
	case ChoiceAbsent:
		t.Absent++
	}
}

// Total returns the number of recorded choices.
func (t Tally) Total() int {
	return t.Ayes + t.Nays + t.Abstain + t.Absent
}

// Margin returns |ayes - nays|.
func (t Tally) Margin() int {
	if t.Ayes > t.Nays {
		return t.Ayes - t.Nays
	}
	return t.Nays - t.Ayes
}

// Unanimous reports whether at least one side was taken and nobody voted nay.
func (t Tally) Unanimous() bool {
	return t.Ayes > 0 && t.Nays == 0
}

// Count tallies a choice mapping. The tally is always derived from the
// mapping and never from the export's own tally text.
func Count(choices map[string]Choice) Tally {
	var t Tally
	for _, c := range choices {
		t.Add(c)
	}
	return t
}

// Normalized is a voted row resolved to the fixed vocabulary.
type Normalized struct {
	Outcome Outcome
	Section Section
	// Choices maps member name to recorded choice. Members without a
	// recorded choice are absent from the map.
	Choices map[string]Choice
	Tally   Tally
	// Unknown lists raw cell values that did not map to a choice, keyed by
	// member name. Blank cells are not listed.
	Unknown map[string]string
}

// Normalize resolves the member choices, outcome, section and tally of a
// voted row.
func Normalize(row tabular.Fields, members []schema.MemberColumn) Normalized {
	n := Normalized{
		Outcome: ClassifyOutcome(row),
		Section: ClassifySection(row),
		Choices: make(map[string]Choice, len(members)),
	}
	for _, m := range members {
		raw := row.Get(m.Header)
		c := ParseChoice(raw)
		if !c.Recorded() {
			if strings.TrimSpace(raw) != "" && !isPresent(raw) {
				if n.Unknown == nil {
					n.Unknown = make(map[string]string)
				}
				n.Unknown[m.Name] = raw
			}
			continue
		}
		n.Choices[m.Name] = c
	}
	n.Tally = Count(n.Choices)
	return n
}

func isPresent(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "present")
}
