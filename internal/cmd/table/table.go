// Package table converts command results into rows for table output.
package table

import (
	"strconv"
	"strings"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Source is one inspected input file.
type Source struct {
	File    string   `json:"file"`
	Period  string   `json:"period"`
	Kind    string   `json:"kind"`
	Rows    int      `json:"rows"`
	Voted   int      `json:"voted_rows"`
	Members []string `json:"members"`
}

// Build is the outcome of a build run.
type Build struct {
	Output     string `json:"output"`
	Files      int    `json:"files"`
	Skipped    int    `json:"skipped"`
	Members    int    `json:"members"`
	Meetings   int    `json:"meetings"`
	Votes      int    `json:"votes"`
	Items      int    `json:"non_voted_items"`
	Duplicates int    `json:"duplicates_skipped"`
	Documents  int    `json:"documents"`
}

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// SourcesToTableData converts inspected files to table format.
func SourcesToTableData(sources []Source) Data {
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{
			s.File,
			s.Period,
			s.Kind,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Voted),
			strconv.Itoa(len(s.Members)),
		})
	}
	return Data{
		Headers:         []string{"File", "Period", "Kind", "Rows", "Voted", "Members"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// MembersToTableData lists the member columns of each file, one per line.
func MembersToTableData(sources []Source) Data {
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{s.File, strings.Join(s.Members, "\n")})
	}
	return Data{Headers: []string{"File", "Members"}, Rows: rows}
}
