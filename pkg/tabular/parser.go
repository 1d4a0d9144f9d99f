// Package tabular parses delimited text exports into rows of named fields.
//
// Malformed input never produces an error. An unterminated quote runs to the
// end of the input and the partial field is returned as-is.
package tabular

import "strings"

const (
	defaultDelimiter = ','
	quote            = '"'
	bom              = "\uFEFF"
)

// Parser splits raw text into records.
type Parser struct {
	delimiter rune
}

// Option configures a Parser.
type Option func(*Parser)

// WithDelimiter overrides the field delimiter (default ',').
func WithDelimiter(d rune) Option {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// NewParser returns a parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{delimiter: defaultDelimiter}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse splits text into records using the default parser.
func Parse(text string) [][]string {
	return NewParser().Parse(text)
}

// Parse splits text into records. Quoted fields may contain delimiters,
// newlines and doubled quotes ("" -> "). Records end at "\n" or "\r\n"
// outside quotes. Blank records are dropped.
func (p *Parser) Parse(text string) [][]string {
	text = strings.TrimPrefix(text, bom)

	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
		// quoted marks a field that opened with a quote; text after the
		// closing quote is still appended so nothing is lost.
		quoted bool
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
		quoted = false
	}
	endRecord := func() {
		endField()
		if !isBlank(record) {
			records = append(records, record)
		}
		record = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			switch {
			case c == quote && i+1 < len(runes) && runes[i+1] == quote:
				field.WriteRune(quote)
				i++
			case c == quote:
				inQuotes = false
			case c == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
				field.WriteRune('\n')
				i++
			default:
				field.WriteRune(c)
			}
			continue
		}

		switch {
		case c == quote && field.Len() == 0 && !quoted:
			inQuotes = true
			quoted = true
		case c == p.delimiter:
			endField()
		case c == '\n':
			endRecord()
		case c == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
			endRecord()
			i++
		default:
			field.WriteRune(c)
		}
	}

	if field.Len() > 0 || len(record) > 0 || quoted {
		endRecord()
	}

	return records
}

// isBlank reports whether a record carries no content at all.
func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
