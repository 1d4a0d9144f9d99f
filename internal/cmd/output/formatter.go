// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/councilvotes/internal/cmd/table"
	"github.com/agentstation/councilvotes/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatWide is a table with every member column listed.
	FormatWide Format = "wide"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// IsTable reports whether the format renders a table.
func (f Format) IsTable() bool {
	return f == FormatTable || f == FormatWide || f == ""
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format. Structs and slices of structs are
// converted using their json tags as headers.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if d, ok := data.(table.Data); ok {
		return f.render(w, d)
	}
	if d := toTableData(data); d != nil {
		return f.render(w, *d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func (f *TableFormatter) render(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case table.AlignLeft:
				align[i] = tw.AlignLeft
			case table.AlignCenter:
				align[i] = tw.AlignCenter
			case table.AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		t.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	return t.Render()
}

// DetectFormat returns the explicit format if set, a table on a terminal,
// and JSON when output is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatWide, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, wide, json, yaml")
	}
}

// toTableData converts a struct or a slice of structs using reflection.
func toTableData(data any) *table.Data {
	v := reflect.Indirect(reflect.ValueOf(data))
	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && reflect.Indirect(v.Index(0)).Kind() == reflect.Struct:
		elem := reflect.Indirect(v.Index(0)).Type()
		d := &table.Data{}
		for i := range elem.NumField() {
			d.Headers = append(d.Headers, header(elem.Field(i)))
		}
		for i := range v.Len() {
			e := reflect.Indirect(v.Index(i))
			row := make([]string, e.NumField())
			for j := range e.NumField() {
				row[j] = cell(e.Field(j))
			}
			d.Rows = append(d.Rows, row)
		}
		return d
	case v.Kind() == reflect.Struct:
		d := &table.Data{Headers: []string{"Property", "Value"}}
		for i := range v.NumField() {
			d.Rows = append(d.Rows, []string{header(v.Type().Field(i)), cell(v.Field(i))})
		}
		return d
	}
	return nil
}

// header title-cases the json name of a field.
func header(f reflect.StructField) string {
	name := f.Name
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ = strings.Cut(tag, ",")
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func cell(v reflect.Value) string {
	if v.Kind() == reflect.Slice {
		return fmt.Sprintf("%d", v.Len())
	}
	return fmt.Sprintf("%v", v.Interface())
}
