package tabular

import (
	"os"
	"strings"

	"github.com/agentstation/councilvotes/pkg/errors"
)

// Fields is the read side of a row: a lookup of a field by column name.
// Missing columns read as the empty string.
type Fields interface {
	Get(column string) string
}

// Header maps column names to positions. The first occurrence of a
// duplicated name wins.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a header from record 0 of a file.
func NewHeader(names []string) Header {
	h := Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		h.names[i] = name
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	return h
}

// Names returns the header names in column order.
func (h Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Index returns the position of a column.
func (h Header) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Len returns the number of columns.
func (h Header) Len() int {
	return len(h.names)
}

// Row is one record associated with its file's header.
type Row struct {
	header *Header
	fields []string
	line   int
}

// Get returns the field under the named column, or "" when the column is
// unknown or the row is short.
func (r Row) Get(column string) string {
	if r.header == nil {
		return ""
	}
	i, ok := r.header.index[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// Line returns the 1-based record number of the row within its file
// (the header is record 1).
func (r Row) Line() int {
	return r.line
}

// Table is a parsed file: the header plus every data row.
type Table struct {
	Header Header
	Rows   []Row
}

// NewTable maps raw records onto named rows. Record 0 is the header.
func NewTable(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}
	t.Header = NewHeader(records[0])
	t.Rows = make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		t.Rows = append(t.Rows, Row{header: &t.Header, fields: rec, line: i + 2})
	}
	return t
}

// ParseTable parses text and maps it onto named rows.
func ParseTable(text string, opts ...Option) *Table {
	return NewTable(NewParser(opts...).Parse(text))
}

// ReadFile reads and parses a file. Only the read itself can fail.
func ReadFile(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseTable(string(data), opts...), nil
}
