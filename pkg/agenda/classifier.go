package agenda

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/councilvotes/pkg/tabular"
)

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules    []Rule
	fallback Classification
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithFallback replaces the classification used when no rule matches.
func WithFallback(fb Classification) Option {
	return func(c *Classifier) {
		c.fallback = fb
	}
}

// NewClassifier returns a classifier over DefaultRules.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules, fallback: Fallback}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the result of the first rule that matches the row.
func (c *Classifier) Classify(row tabular.Fields) Classification {
	return c.ClassifySignals(SignalsOf(row))
}

// ClassifySignals classifies prepared row text.
func (c *Classifier) ClassifySignals(s Signals) Classification {
	for _, r := range c.rules {
		if r.Match(s) {
			return r.Result
		}
	}
	return c.fallback
}

// Classify classifies a row with the default rule table.
func Classify(row tabular.Fields) Classification {
	return NewClassifier().Classify(row)
}

// Label turns a category such as "first_reading" into "First Reading".
func Label(category string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
}
