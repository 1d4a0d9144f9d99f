package pipeline

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/schema"
)

// Discovery is the set of input files found in a directory.
type Discovery struct {
	// Sources are the recognized exports, sorted by file name.
	Sources []schema.SourceFile
	// Skipped are matched files that follow no naming convention.
	Skipped []string
}

// Discover lists the files under dir that match the pipeline's glob and
// resolves their period and kind. Files are returned in file-name order so
// every run reads them in the same sequence.
func (p *Pipeline) Discover(ctx context.Context, dir string) (*Discovery, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("input_dir", dir, "not a directory")
	}

	matches, err := doublestar.Glob(os.DirFS(dir), p.glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.WrapIO("glob", filepath.Join(dir, p.glob), err)
	}
	slices.SortFunc(matches, func(a, b string) int {
		return cmp.Or(cmp.Compare(filepath.Base(a), filepath.Base(b)), cmp.Compare(a, b))
	})

	logger := logging.FromContext(ctx)
	d := &Discovery{}
	for _, rel := range matches {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		src, ok := schema.ParseFileName(path)
		if !ok {
			logger.Debug().Str("file", rel).Msg("Skipping file with unrecognized name")
			d.Skipped = append(d.Skipped, path)
			continue
		}
		d.Sources = append(d.Sources, src)
	}
	return d, nil
}
