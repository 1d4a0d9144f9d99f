package schema

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// FileKind distinguishes the two exports produced per period.
type FileKind int

// File kinds.
const (
	// KindUnknown is any file that does not follow a naming convention.
	KindUnknown FileKind = iota
	// KindVotedItems is the voted-only subset export.
	KindVotedItems
	// KindAllItems is the superset export including non-voted rows.
	KindAllItems
)

// String returns the string representation of the kind.
func (k FileKind) String() string {
	switch k {
	case KindVotedItems:
		return "voted-items"
	case KindAllItems:
		return "all-items"
	}
	return "unknown"
}

// Period is a reporting quarter.
type Period struct {
	Year    int `json:"year" yaml:"year"`
	Quarter int `json:"quarter" yaml:"quarter"`
}

// String formats the period as YYYY-Qn.
func (p Period) String() string {
	return fmt.Sprintf("%04d-Q%d", p.Year, p.Quarter)
}

// SourceFile is an input file whose name matched a convention.
type SourceFile struct {
	Path   string
	Prefix string
	Period Period
	Kind   FileKind
}

// Name returns the base file name.
func (f SourceFile) Name() string {
	return filepath.Base(f.Path)
}

var (
	// <Prefix>-YYYY-Qn-<Kind>.csv
	yearFirst = regexp.MustCompile(`^(.*?)-?(\d{4})-Q([1-4])-(Votes|Voted-Items)\.csv$`)
	// <Prefix>-Qn-YYYY-<Kind>.csv
	quarterFirst = regexp.MustCompile(`^(.*?)-?Q([1-4])-(\d{4})-(Votes|Voted-Items)\.csv$`)
)

// ParseFileName resolves the period and kind of an input file from its base
// name. Both conventions yield the same Period for the same quarter. The
// second return is false for files that follow neither convention.
func ParseFileName(path string) (SourceFile, bool) {
	base := filepath.Base(path)

	var prefix, year, quarter, kind string
	if m := yearFirst.FindStringSubmatch(base); m != nil {
		prefix, year, quarter, kind = m[1], m[2], m[3], m[4]
	} else if m := quarterFirst.FindStringSubmatch(base); m != nil {
		prefix, quarter, year, kind = m[1], m[2], m[3], m[4]
	} else {
		return SourceFile{}, false
	}

	y, _ := strconv.Atoi(year)
	q, _ := strconv.Atoi(quarter)
	f := SourceFile{
		Path:   path,
		Prefix: prefix,
		Period: Period{Year: y, Quarter: q},
		Kind:   KindAllItems,
	}
	if kind == "Voted-Items" {
		f.Kind = KindVotedItems
	}
	return f, true
}
