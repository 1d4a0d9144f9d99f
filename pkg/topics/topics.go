// Package topics assigns coarse, keyword-based topic labels to agenda items.
package topics

import (
	_ "embed"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/tabular"
)

//go:embed topics.yaml
var defaultTable []byte

// Topic is a named keyword list.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered topic list. Order decides which topics survive the
// per-item cap.
type Table struct {
	Topics []Topic `yaml:"topics"`
}

// Parse decodes a YAML topic table. Keywords are lower-cased and blank
// entries dropped.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	out := &Table{Topics: make([]Topic, 0, len(t.Topics))}
	for _, topic := range t.Topics {
		name := strings.TrimSpace(topic.Name)
		if name == "" {
			return nil, errors.NewValidationError("topics.name", topic.Name, "topic name is required")
		}
		kw := make([]string, 0, len(topic.Keywords))
		for _, k := range topic.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		out.Topics = append(out.Topics, Topic{Name: name, Keywords: kw})
	}
	return out, nil
}

// Default returns the embedded topic table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic("topics: embedded table is invalid: " + err.Error())
	}
	return t
}

// Load reads a topic table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return t, nil
}

// Names returns the topic names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Topics))
	for i, topic := range t.Topics {
		out[i] = topic.Name
	}
	return out
}

// Classify returns up to MaxTopicsPerItem topics whose keywords occur in
// text, in table order, or the fallback topic when none match.
func (t *Table) Classify(text string) []string {
	text = strings.ToLower(text)
	var out []string
	for _, topic := range t.Topics {
		if len(out) == constants.MaxTopicsPerItem {
			break
		}
		for _, k := range topic.Keywords {
			if strings.Contains(text, k) {
				out = append(out, topic.Name)
				break
			}
		}
	}
	if len(out) == 0 {
		return []string{constants.FallbackTopic}
	}
	return out
}

// ClassifyRow classifies the title, extended title, type name and a bounded
// prefix of the full text of a row.
func (t *Table) ClassifyRow(row tabular.Fields) []string {
	return t.Classify(MatchText(row))
}

// MatchText builds the text a row is matched on.
func MatchText(row tabular.Fields) string {
	full := []rune(row.Get(schema.ColFullText))
	if len(full) > constants.TopicTextPrefix {
		full = full[:constants.TopicTextPrefix]
	}
	return strings.Join([]string{
		row.Get(schema.ColTitle),
		row.Get(schema.ColMatterTitle),
		row.Get(schema.ColMatterTypeName),
		string(full),
	}, " ")
}
