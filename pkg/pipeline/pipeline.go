// Package pipeline runs a complete recomputation over a directory of vote
// exports: discover and read files in order, deduplicate rows, normalize
// votes, classify non-voted items, then freeze the registry and compute
// statistics.
package pipeline

import (
	"context"
	"strings"

	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/registry"
	"github.com/agentstation/councilvotes/pkg/schema"
	"github.com/agentstation/councilvotes/pkg/stats"
	"github.com/agentstation/councilvotes/pkg/tabular"
	"github.com/agentstation/councilvotes/pkg/topics"
	"github.com/agentstation/councilvotes/pkg/votes"
)

// Pipeline turns input exports into a dataset and its statistics.
type Pipeline struct {
	glob       string
	topics     *topics.Table
	classifier *agenda.Classifier
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithGlob sets the pattern that selects input files inside the input
// directory.
func WithGlob(glob string) Option {
	return func(p *Pipeline) {
		if glob != "" {
			p.glob = glob
		}
	}
}

// WithTopics replaces the topic table.
func WithTopics(t *topics.Table) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.topics = t
		}
	}
}

// WithClassifier replaces the non-voted item classifier.
func WithClassifier(c *agenda.Classifier) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.classifier = c
		}
	}
}

// New returns a pipeline with the embedded topic table and default rules.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		glob:       constants.DefaultInputGlob,
		topics:     topics.Default(),
		classifier: agenda.NewClassifier(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileResult describes what one input file contributed.
type FileResult struct {
	Source     schema.SourceFile
	Rows       int
	Votes      int
	Items      int
	Duplicates int
	NewMembers []string
}

// Result is the outcome of a run.
type Result struct {
	Dataset *council.Dataset
	Report  *stats.Report
	Files   []FileResult
	Skipped []string
}

// Run reads every recognized file under dir and returns the frozen dataset
// and its statistics. Only a failure to read an input file is an error;
// dirty data degrades to empty values.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Result, error) {
	ctx = logging.WithStage(ctx, "ingest")
	logger := logging.FromContext(ctx)

	disc, err := p.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("files", len(disc.Sources)).
		Int("skipped", len(disc.Skipped)).
		Str("dir", dir).
		Msg("Discovered input files")

	reg := registry.New()
	res := &Result{Skipped: disc.Skipped}
	for _, src := range disc.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fr, err := p.ingest(ctx, reg, src)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, fr)
	}

	res.Dataset = reg.Freeze()
	res.Report = stats.Compute(res.Dataset, stats.WithSourceCounts(len(res.Files), reg.Ledger.Duplicates()))

	logger.Info().
		Int("members", len(res.Dataset.Members)).
		Int("meetings", len(res.Dataset.Meetings)).
		Int("votes", len(res.Dataset.Votes)).
		Int("items", len(res.Dataset.Items)).
		Int("duplicates", reg.Ledger.Duplicates()).
		Msg("Built dataset")
	return res, nil
}

// ingest reads one file into the registry.
func (p *Pipeline) ingest(ctx context.Context, reg *registry.Registry, src schema.SourceFile) (FileResult, error) {
	ctx = logging.WithFile(ctx, src.Name())
	logger := logging.FromContext(ctx)

	table, err := tabular.ReadFile(src.Path)
	if err != nil {
		return FileResult{}, err
	}

	cols := schema.ResolveColumns(table.Header)
	fr := FileResult{
		Source:     src,
		Rows:       len(table.Rows),
		NewMembers: reg.Members.Merge(cols),
	}
	if len(cols.Missing) > 0 {
		logger.Debug().Strs("columns", cols.Missing).Msg("File is missing base columns")
	}

	for _, row := range table.Rows {
		key := registry.ItemKey(row)
		if !reg.Ledger.Claim(key) {
			fr.Duplicates++
			logger.Debug().Str("item", key).Int("line", row.Line()).Msg("Skipping duplicate item")
			continue
		}
		if p.consume(ctx, reg, row, cols, key) {
			fr.Votes++
		} else {
			fr.Items++
		}
	}

	logger.Info().
		Str("period", src.Period.String()).
		Str("kind", src.Kind.String()).
		Int("rows", fr.Rows).
		Int("votes", fr.Votes).
		Int("items", fr.Items).
		Int("duplicates", fr.Duplicates).
		Int("new_members", len(fr.NewMembers)).
		Msg("Read file")
	return fr, nil
}

// consume turns a claimed row into a vote or a non-voted item and reports
// whether it was a vote.
func (p *Pipeline) consume(ctx context.Context, reg *registry.Registry, row tabular.Row, cols schema.Columns, key string) bool {
	meeting := reg.Meetings.Observe(row)
	reg.Members.Observe(row, cols, meeting.Date)

	signals := agenda.SignalsOf(row)
	if agenda.IsFirstReading(signals) {
		meeting.FirstReadingItems++
	}

	if votes.IsVoted(row) {
		v := p.newVote(ctx, row, cols, key, meeting)
		if v.Outcome == votes.OutcomePass && !votes.IsTruthy(row.Get(schema.ColPassed)) {
			c := p.classifier.ClassifySignals(signals)
			v.Category, v.Importance = c.Category, c.Importance
		}
		meeting.VotedItems++
		reg.AddVote(v)
		return true
	}

	item := &council.Item{
		ItemID:         key,
		Meeting:        meeting,
		Sequence:       registry.Sequence(row.Get(schema.ColAgendaSequence)),
		AgendaNumber:   field(row, schema.ColAgendaNumber),
		Title:          field(row, schema.ColTitle),
		MatterTitle:    field(row, schema.ColMatterTitle),
		MatterFile:     field(row, schema.ColMatterFile),
		Description:    field(row, schema.ColFullText),
		Action:         field(row, schema.ColAction),
		Classification: p.classifier.ClassifySignals(signals),
	}
	if item.Importance == agenda.ImportanceHigh {
		item.Topics = p.topics.ClassifyRow(row)
	}
	if item.Emitted() {
		meeting.NonVotedItems++
	}
	reg.AddItem(item)
	return false
}

func (p *Pipeline) newVote(ctx context.Context, row tabular.Row, cols schema.Columns, key string, meeting *council.Meeting) *council.Vote {
	n := votes.Normalize(row, cols.Members)
	if len(n.Unknown) > 0 {
		logging.FromContext(ctx).Debug().
			Str("item", key).
			Interface("values", n.Unknown).
			Msg("Unrecognized vote values treated as no vote")
	}
	if n.Tally.Total() == 0 {
		logging.FromContext(ctx).Debug().Str("item", key).Msg("Vote has no recorded choices")
	}

	return &council.Vote{
		ItemID:           key,
		Meeting:          meeting,
		Sequence:         registry.Sequence(row.Get(schema.ColAgendaSequence)),
		AgendaNumber:     field(row, schema.ColAgendaNumber),
		Title:            field(row, schema.ColTitle),
		MatterTitle:      field(row, schema.ColMatterTitle),
		Description:      field(row, schema.ColFullText),
		MatterFile:       field(row, schema.ColMatterFile),
		MatterTypeName:   field(row, schema.ColMatterTypeName),
		MatterStatusName: field(row, schema.ColMatterStatusName),
		Action:           field(row, schema.ColAction),
		ActionText:       field(row, schema.ColActionText),
		Mover:            field(row, schema.ColMover),
		Seconder:         field(row, schema.ColSeconder),
		RawTally:         field(row, schema.ColTally),
		AttachmentLinks:  splitLinks(row.Get(schema.ColAttachmentLinks)),
		Outcome:          n.Outcome,
		Section:          n.Section,
		Tally:            n.Tally,
		Topics:           p.topics.ClassifyRow(row),
		Choices:          n.Choices,
	}
}

func field(row tabular.Fields, column string) string {
	return strings.TrimSpace(row.Get(column))
}

func splitLinks(raw string) []string {
	var out []string
	for _, l := range strings.Split(raw, "|") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
