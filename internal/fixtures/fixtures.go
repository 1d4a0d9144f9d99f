// Package fixtures writes small, realistic vote exports for tests.
//
// Standard writes four files into a directory:
//
//	Columbus-OH-2024-Q1-Persons.csv      unrecognized, skipped
//	Columbus-OH-2024-Q1-Voted-Items.csv  items 1001-1003 (voted)
//	Columbus-OH-2024-Q1-Votes.csv        items 1001-1006 plus one row without an item ID
//	Columbus-OH-Q4-2023-Votes.csv        item 2001, and 1001 again (CRLF line endings)
//
// After deduplication the set holds 4 votes, 4 non-voted items (2 of them
// noise), 3 meetings, 5 members, and 4 duplicate rows.
package fixtures

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/councilvotes/pkg/schema"
)

// Row is one export row keyed by column name. Missing columns are blank.
type Row map[string]string

// Members of the standard fixture, in header order.
var Members = []string{"Jane Doe", "Robert Doe", "Ann Lee", "Carlos Ruiz III", "Emily Park"}

// WriteCSV writes an export with the base columns followed by one column per
// member and returns its path.
func WriteCSV(t testing.TB, dir, name string, members []string, rows []Row, crlf bool) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	header := append(append([]string{}, schema.BaseColumns...), members...)
	w := csv.NewWriter(f)
	w.UseCRLF = crlf
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, r := range rows {
		rec := make([]string, len(header))
		for i, col := range header {
			rec[i] = r[col]
		}
		if err := w.Write(rec); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
	return path
}

func meeting100(r Row) Row {
	r["event_id"] = "100"
	r["event_date"] = "2024-01-08T00:00:00"
	r["event_time"] = "5:00 PM"
	r["event_location"] = "Council Chambers"
	r["agenda_link"] = "https://example.test/agenda/100"
	r["video_link"] = "https://example.test/video/100"
	return r
}

func meeting101(r Row) Row {
	r["event_id"] = "101"
	r["event_date"] = "2024-02-05"
	return r
}

// VotedQ1 are the voted rows of the first quarter of 2024.
func VotedQ1() []Row {
	return []Row{
		meeting100(Row{
			"event_item_id":    "1001",
			"agenda_sequence":  "1",
			"agenda_number":    "1",
			"matter_file":      "0001-2024",
			"matter_type_name": "Ordinance",
			"title":            "To authorize a contract for sewer repairs",
			"action":           "Approved",
			"passed":           "1",
			"tally":            "4-0",
			"mover":            "Jane Doe",
			"attachment_links": "https://example.test/a.pdf| https://example.test/b.pdf",
			"Jane Doe":         "Yes",
			"Robert Doe":       "Yes",
			"Ann Lee":          "Yes",
			"Carlos Ruiz III":  "Yes",
			"Emily Park":       "Absent",
		}),
		meeting100(Row{
			"event_item_id":   "1002",
			"agenda_sequence": "3",
			"matter_file":     "0002-2024",
			"title":           "To amend the zoning code",
			"action":          "Read for the First Time",
			"passed":          "0",
		}),
		meeting101(Row{
			"event_item_id":      "1003",
			"agenda_sequence":    "2",
			"title":              "To rename Elm Street",
			"matter_status_name": "Defeated",
			"passed":             "0",
			"Jane Doe":           "No",
			"Ann Lee":            "No",
			"Carlos Ruiz III":    "Yes",
			"Emily Park":         "No",
		}),
	}
}

// AllQ1 is the superset export of the first quarter of 2024.
func AllQ1() []Row {
	return append(VotedQ1(),
		meeting100(Row{
			"event_item_id":   "1004",
			"agenda_sequence": "2",
			"title":           "ROLL CALL",
			"Jane Doe":        "Present",
		}),
		meeting100(Row{
			"event_item_id":        "1005",
			"agenda_sequence":      "4",
			"matter_file":          "0100-2024",
			"title":                "To appropriate funds for park improvements",
			"action":               "Read for the First Time",
			"Agenda_item_fulltext": "WHEREAS, the \"Parks\" fund\nneeds improvements, now therefore",
		}),
		meeting101(Row{
			"event_item_id":   "1006",
			"agenda_sequence": "1",
			"title":           "CONSENT ACTIONS",
		}),
		meeting101(Row{
			"agenda_sequence": "5",
			"title":           "Adjournment",
		}),
	)
}

// Q4of2023 is the 2023 fourth-quarter export. It repeats item 1001.
func Q4of2023() []Row {
	return []Row{
		{
			"event_id":        "200",
			"event_date":      "2023-10-02",
			"event_item_id":   "2001",
			"agenda_sequence": "1",
			"title":           "Public hearing on rezoning 123 Main St",
			"passed":          "1",
			"consent":         "0",
			"Jane Doe":        "Yes",
			"Robert Doe":      "Yes",
			"Ann Lee":         "Yes",
			"Carlos Ruiz III": "Recuse",
		},
		VotedQ1()[0],
	}
}

// Standard writes the standard fixture set into dir.
func Standard(t testing.TB, dir string) {
	t.Helper()
	WriteCSV(t, dir, "Columbus-OH-2024-Q1-Persons.csv", nil, []Row{{"event_id": "x"}}, false)
	WriteCSV(t, dir, "Columbus-OH-2024-Q1-Voted-Items.csv", Members, VotedQ1(), false)
	WriteCSV(t, dir, "Columbus-OH-2024-Q1-Votes.csv", Members, AllQ1(), false)
	WriteCSV(t, dir, "Columbus-OH-Q4-2023-Votes.csv", Members[:4], Q4of2023(), true)
}
