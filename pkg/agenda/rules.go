// Package agenda classifies agenda items that carry no recorded vote into an
// importance tier and category using an ordered, first-match rule table.
package agenda

import (
	"strings"

	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

// Importance is a coarse display-priority tier.
type Importance string

// Importance tiers.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
	ImportanceNoise  Importance = "noise"
)

// Importances lists the tiers from most to least important.
var Importances = []Importance{ImportanceHigh, ImportanceMedium, ImportanceLow, ImportanceNoise}

// Kind tells the site how to display an item.
type Kind string

// Display kinds.
const (
	KindLegislation Kind = "legislation"
	KindHeader      Kind = "header"
	KindProcedural  Kind = "procedural"
	KindNoise       Kind = "noise"
)

// Categories.
const (
	CategoryFirstReading       = "first_reading"
	CategoryReadAndFiled       = "read_and_filed"
	CategoryAdoptedNoVote      = "adopted_no_vote"
	CategoryAmendment          = "amendment"
	CategoryPendingLegislation = "pending_legislation"
	CategoryRollCall           = "roll_call"
	CategoryAdjournment        = "adjournment"
	CategoryRecess             = "recess"
	CategoryAnnouncement       = "announcement"
	CategoryExecutiveSession   = "executive_session"
	CategoryConsentRemoval     = "consent_removal"
	CategoryJournal            = "journal"
	CategoryConsentHeader      = "consent_header"
	CategoryAppointments       = "appointments"
	CategoryVariances          = "variances"
	CategoryCommittee          = "committee"
	CategoryZoningHeader       = "zoning_header"
	CategoryEmergencyHeader    = "emergency_header"
	CategoryCorrection         = "correction"
	CategoryClerkCommunication = "clerk_communication"
	CategoryOther              = "other"
)

// Classification is the result of classifying one item.
type Classification struct {
	Category   string     `json:"category"`
	Importance Importance `json:"importance"`
	Kind       Kind       `json:"display_kind"`
}

// Signals is the text of a row prepared once for rule matching.
type Signals struct {
	// Title is the upper-cased item title.
	Title string
	// Action is the lower-cased action and action text.
	Action string
	// MatterFile is the trimmed matter reference.
	MatterFile string
}

// SignalsOf extracts the matching text of a row.
func SignalsOf(row tabular.Fields) Signals {
	return Signals{
		Title:      strings.ToUpper(strings.TrimSpace(row.Get(schema.ColTitle))),
		Action:     strings.ToLower(strings.TrimSpace(row.Get(schema.ColAction) + " " + row.Get(schema.ColActionText))),
		MatterFile: strings.TrimSpace(row.Get(schema.ColMatterFile)),
	}
}

// Rule maps a predicate to a classification.
type Rule struct {
	Match  func(Signals) bool
	Result Classification
}

func high(category string, match func(Signals) bool) Rule {
	return Rule{Match: match, Result: Classification{category, ImportanceHigh, KindLegislation}}
}

func noise(category string, markers ...string) Rule {
	return Rule{Match: titleHas(markers...), Result: Classification{category, ImportanceNoise, KindNoise}}
}

func header(category string, markers ...string) Rule {
	return Rule{Match: titleHas(markers...), Result: Classification{category, ImportanceMedium, KindHeader}}
}

func low(category string, markers ...string) Rule {
	return Rule{Match: titleHas(markers...), Result: Classification{category, ImportanceLow, KindProcedural}}
}

func titleHas(markers ...string) func(Signals) bool {
	return func(s Signals) bool {
		return containsAny(s.Title, markers)
	}
}

func actionHas(markers ...string) func(Signals) bool {
	return func(s Signals) bool {
		return containsAny(s.Action, markers)
	}
}

// IsFirstReading reports whether a row's action or title marks a first reading.
func IsFirstReading(s Signals) bool {
	return containsAny(s.Action, []string{"read for the first time", "first reading"}) ||
		containsAny(strings.ToLower(s.Title), []string{"first reading"})
}

// DefaultRules is the ordered rule table. Earlier rules win.
var DefaultRules = []Rule{
	high(CategoryFirstReading, IsFirstReading),
	high(CategoryReadAndFiled, actionHas("read and filed", "filed without")),
	high(CategoryAdoptedNoVote, actionHas("adopted", "approved")),
	high(CategoryAmendment, func(s Signals) bool {
		return actionHas("amend", "waiv")(s) || titleHas("AMENDMENT", "WAIVER")(s)
	}),
	high(CategoryPendingLegislation, func(s Signals) bool {
		return s.MatterFile != "" && s.Action == ""
	}),

	noise(CategoryRollCall, "ROLL CALL"),
	noise(CategoryAdjournment, "ADJOURN"),
	noise(CategoryRecess, "RECESS", "RECONVENE"),
	noise(CategoryAnnouncement, "ANNOUNCEMENT"),
	noise(CategoryExecutiveSession, "EXECUTIVE SESSION"),
	noise(CategoryConsentRemoval, "REMOVED FROM CONSENT", "REMOVAL FROM CONSENT", "REMOVE FROM CONSENT"),
	noise(CategoryJournal, "JOURNAL"),

	header(CategoryConsentHeader, "CONSENT"),
	header(CategoryAppointments, "APPOINTMENT"),
	header(CategoryVariances, "VARIANCE"),
	header(CategoryCommittee, "COMMITTEE", ", CHR", "CHAIR"),
	header(CategoryZoningHeader, "ZONING"),
	header(CategoryEmergencyHeader, "EMERGENCY"),

	low(CategoryCorrection, "CORRECTION"),
	low(CategoryClerkCommunication, "COMMUNICATION", "CITY CLERK"),
}

// Fallback is the classification of an item no rule matched.
var Fallback = Classification{Category: CategoryOther, Importance: ImportanceMedium, Kind: KindProcedural}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
