package agenda_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/councilvotes/pkg/agenda"
)

type row map[string]string

func (r row) Get(column string) string { return r[column] }

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		row        row
		category   string
		importance agenda.Importance
		kind       agenda.Kind
	}{
		{
			name:       "first reading",
			row:        row{"title": "To authorize the Director of Public Service", "action": "Read for the First Time", "matter_file": "0123-2024"},
			category:   agenda.CategoryFirstReading,
			importance: agenda.ImportanceHigh,
			kind:       agenda.KindLegislation,
		},
		{
			name:       "read and filed",
			row:        row{"title": "Report of the auditor", "action": "Read and Filed"},
			category:   agenda.CategoryReadAndFiled,
			importance: agenda.ImportanceHigh,
			kind:       agenda.KindLegislation,
		},
		{
			name:       "adopted without vote",
			row:        row{"title": "Resolution of tribute", "action_text": "This resolution was adopted."},
			category:   agenda.CategoryAdoptedNoVote,
			importance: agenda.ImportanceHigh,
		},
		{
			name:       "amendment",
			row:        row{"title": "Ordinance 44", "action": "Amended as submitted"},
			category:   agenda.CategoryAmendment,
			importance: agenda.ImportanceHigh,
		},
		{
			name:       "waiver title",
			row:        row{"title": "WAIVER OF THE SECOND READING"},
			category:   agenda.CategoryAmendment,
			importance: agenda.ImportanceHigh,
		},
		{
			name:       "matter without action",
			row:        row{"title": "To amend the zoning map", "matter_file": "0999-2024"},
			category:   agenda.CategoryPendingLegislation,
			importance: agenda.ImportanceHigh,
		},
		{
			name:       "roll call",
			row:        row{"title": "ROLL CALL"},
			category:   agenda.CategoryRollCall,
			importance: agenda.ImportanceNoise,
			kind:       agenda.KindNoise,
		},
		{
			name:       "adjournment",
			row:        row{"title": "Adjournment"},
			category:   agenda.CategoryAdjournment,
			importance: agenda.ImportanceNoise,
		},
		{
			name:       "reconvene",
			row:        row{"title": "Council will reconvene"},
			category:   agenda.CategoryRecess,
			importance: agenda.ImportanceNoise,
		},
		{
			name:       "journal",
			row:        row{"title": "READING AND DISPOSAL OF THE JOURNAL"},
			category:   agenda.CategoryJournal,
			importance: agenda.ImportanceNoise,
		},
		{
			name:       "removed from consent beats consent header",
			row:        row{"title": "ITEMS REMOVED FROM CONSENT"},
			category:   agenda.CategoryConsentRemoval,
			importance: agenda.ImportanceNoise,
		},
		{
			name:       "consent header",
			row:        row{"title": "CONSENT ACTIONS"},
			category:   agenda.CategoryConsentHeader,
			importance: agenda.ImportanceMedium,
			kind:       agenda.KindHeader,
		},
		{
			name:       "committee chair marker",
			row:        row{"title": "FINANCE: DOE, CHR. BROWN SMITH"},
			category:   agenda.CategoryCommittee,
			importance: agenda.ImportanceMedium,
			kind:       agenda.KindHeader,
		},
		{
			name:       "emergency header",
			row:        row{"title": "EMERGENCY, TABLED AND TO TREASURER"},
			category:   agenda.CategoryEmergencyHeader,
			importance: agenda.ImportanceMedium,
		},
		{
			name:       "correction",
			row:        row{"title": "Correction to the agenda"},
			category:   agenda.CategoryCorrection,
			importance: agenda.ImportanceLow,
			kind:       agenda.KindProcedural,
		},
		{
			name:       "clerk communication",
			row:        row{"title": "Communications and Reports Received by the City Clerk"},
			category:   agenda.CategoryClerkCommunication,
			importance: agenda.ImportanceLow,
		},
		{
			name:       "fallback",
			row:        row{"title": "Something unusual"},
			category:   agenda.CategoryOther,
			importance: agenda.ImportanceMedium,
			kind:       agenda.KindProcedural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agenda.Classify(tt.row)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.importance, got.Importance)
			if tt.kind != "" {
				assert.Equal(t, tt.kind, got.Kind)
			}
		})
	}
}

func TestClassifierCustomRules(t *testing.T) {
	only := agenda.Rule{
		Match:  func(s agenda.Signals) bool { return s.Title == "X" },
		Result: agenda.Classification{Category: "x", Importance: agenda.ImportanceLow, Kind: agenda.KindProcedural},
	}
	fallback := agenda.Classification{Category: "none", Importance: agenda.ImportanceNoise, Kind: agenda.KindNoise}
	c := agenda.NewClassifier(agenda.WithRules([]agenda.Rule{only}), agenda.WithFallback(fallback))

	assert.Equal(t, "x", c.Classify(row{"title": "x"}).Category)
	assert.Equal(t, fallback, c.Classify(row{"title": "ROLL CALL"}))
}

func TestIsFirstReading(t *testing.T) {
	assert.True(t, agenda.IsFirstReading(agenda.SignalsOf(row{"action": "Read for the First Time"})))
	assert.True(t, agenda.IsFirstReading(agenda.SignalsOf(row{"title": "FIRST READING"})))
	assert.False(t, agenda.IsFirstReading(agenda.SignalsOf(row{"action": "Approved"})))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "First Reading", agenda.Label(agenda.CategoryFirstReading))
	assert.Equal(t, "Other", agenda.Label(agenda.CategoryOther))
}
