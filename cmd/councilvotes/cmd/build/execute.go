package build

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/agentstation/councilvotes/cmd/application"
	"github.com/agentstation/councilvotes/internal/cmd/output"
	"github.com/agentstation/councilvotes/internal/cmd/table"
	"github.com/agentstation/councilvotes/internal/validation"
	"github.com/agentstation/councilvotes/pkg/emit"
	"github.com/agentstation/councilvotes/pkg/logging"
)

// Options are the resolved and validated inputs of a build.
type Options struct {
	InputDir       string `flag:"input" validate:"required,dir"`
	OutputDir      string `flag:"output" validate:"required,notancestor=InputDir"`
	InputGlob      string `flag:"glob" validate:"required"`
	TopicsFile     string `flag:"topics" validate:"omitempty,file"`
	TruncateLength int    `flag:"truncate" validate:"gte=20,lte=5000"`
	Summary        bool   `flag:"summary"`
}

// Resolve layers changed flags over the configured settings.
func Resolve(s application.Settings, f *Flags, changed func(string) bool) Options {
	o := Options{
		InputDir:       s.InputDir,
		OutputDir:      s.OutputDir,
		InputGlob:      s.InputGlob,
		TopicsFile:     s.TopicsFile,
		TruncateLength: s.TruncateLength,
		Summary:        s.Summary,
	}
	if changed("input") {
		o.InputDir = f.Input
	}
	if changed("output") {
		o.OutputDir = f.Output
	}
	if changed("glob") {
		o.InputGlob = f.Glob
	}
	if changed("topics") {
		o.TopicsFile = f.Topics
	}
	if changed("truncate") {
		o.TruncateLength = f.Truncate
	}
	if changed("summary") {
		o.Summary = f.Summary
	}
	return o
}

// Settings converts the options back into run settings.
func (o Options) Settings() application.Settings {
	return application.Settings{
		InputDir:       o.InputDir,
		OutputDir:      o.OutputDir,
		InputGlob:      o.InputGlob,
		TopicsFile:     o.TopicsFile,
		TruncateLength: o.TruncateLength,
		Summary:        o.Summary,
	}
}

// Execute validates opts, runs the pipeline and publishes the documents,
// then writes a result overview to w.
func Execute(ctx context.Context, app application.Application, opts Options, w io.Writer) error {
	if err := validation.New().Validate(opts); err != nil {
		return err
	}
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.FromContext(ctx)

	p, err := app.Pipeline(opts.Settings())
	if err != nil {
		return err
	}
	res, err := p.Run(ctx, opts.InputDir)
	if err != nil {
		return err
	}

	e := emit.New(emit.WithTruncateLength(opts.TruncateLength), emit.WithSummary(opts.Summary))
	m, err := e.Emit(ctx, res.Dataset, res.Report, opts.OutputDir)
	if err != nil {
		return err
	}
	logger.Debug().Strs("documents", m.Documents).Msg("Manifest")

	s := res.Report.Summary
	return output.NewFormatter(output.DetectFormat(string(format))).Format(w, table.Build{
		Output:     m.Dir,
		Files:      len(res.Files),
		Skipped:    len(res.Skipped),
		Members:    s.TotalMembers,
		Meetings:   s.TotalMeetings,
		Votes:      s.TotalVotes,
		Items:      len(res.Dataset.Items),
		Duplicates: s.DuplicatesSkipped,
		Documents:  m.Len(),
	})
}
