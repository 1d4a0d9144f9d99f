package votes

import (
	"strings"

	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

// Outcome is the resolved disposition of a voted item.
type Outcome string

// Outcomes.
const (
	OutcomePass Outcome = "PASS"
	OutcomeFail Outcome = "FAIL"
)

// defeatMarkers are status or action phrases that indicate a genuine defeat.
var defeatMarkers = []string{
	"defeated",
	"failed",
	"rejected",
	"did not pass",
	"not adopted",
}

// ClassifyOutcome resolves a voted row to PASS or FAIL. The passed flag
// alone is unreliable for procedural rows, so a failed-style flag only
// yields FAIL when the status name or action text confirms a defeat.
// Every other flag value resolves to PASS.
func ClassifyOutcome(row tabular.Fields) Outcome {
	if strings.TrimSpace(row.Get(schema.ColPassed)) != "0" {
		return OutcomePass
	}
	for _, col := range []string{schema.ColMatterStatusName, schema.ColAction, schema.ColActionText} {
		if containsAny(strings.ToLower(row.Get(col)), defeatMarkers) {
			return OutcomeFail
		}
	}
	return OutcomePass
}

// Section is the agenda section an item belongs to.
type Section string

// Sections.
const (
	SectionConsent       Section = "CONSENT"
	SectionPublicHearing Section = "PUBLIC_HEARING"
	SectionGeneral       Section = "GENERAL"
)

var hearingMarkers = []string{"HEARING", "ZONING", "REZON"}

// ClassifySection assigns a section by first match: an explicit consent
// flag, then a hearing or zoning title, then general.
func ClassifySection(row tabular.Fields) Section {
	if IsTruthy(row.Get(schema.ColConsent)) {
		return SectionConsent
	}
	if containsAny(strings.ToUpper(row.Get(schema.ColTitle)), hearingMarkers) {
		return SectionPublicHearing
	}
	return SectionGeneral
}

// IsTruthy reports whether a flag cell is set ("1", "true", "yes", "y").
func IsTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "t":
		return true
	}
	return false
}

// IsVoted reports whether a row carries a recorded vote (a non-blank
// passed flag).
func IsVoted(row tabular.Fields) bool {
	return strings.TrimSpace(row.Get(schema.ColPassed)) != ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
