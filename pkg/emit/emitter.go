// Package emit writes the output document set of a dataset. Every run
// regenerates the whole set into a staging directory and moves it into
// place only after every document was written, so a failed run never
// publishes a partial dataset.
package emit

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/councilvotes/pkg/agenda"
	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/council"
	"github.com/agentstation/councilvotes/pkg/errors"
	"github.com/agentstation/councilvotes/pkg/logging"
	"github.com/agentstation/councilvotes/pkg/report"
	"github.com/agentstation/councilvotes/pkg/stats"
)

// Emitter writes output documents.
type Emitter struct {
	opts Options
}

// New returns an emitter with the given options applied to the defaults.
func New(opts ...Option) *Emitter {
	return &Emitter{opts: Defaults().Apply(opts...)}
}

// Manifest lists the documents written by a run, relative to the output
// directory, in sorted order.
type Manifest struct {
	Dir       string
	Documents []string
}

func (m *Manifest) add(rel string) {
	m.Documents = append(m.Documents, filepath.ToSlash(rel))
}

// Len returns the number of documents.
func (m *Manifest) Len() int {
	return len(m.Documents)
}

type statsDoc struct {
	Success bool           `json:"success"`
	Stats   *stats.Summary `json:"stats"`
}

type councilDoc struct {
	Success bool        `json:"success"`
	Members []MemberDoc `json:"members"`
}

type memberDoc struct {
	Success bool         `json:"success"`
	Member  MemberDetail `json:"member"`
}

type meetingsDoc struct {
	Success  bool               `json:"success"`
	Meetings []*council.Meeting `json:"meetings"`
}

type meetingDoc struct {
	Success bool          `json:"success"`
	Meeting MeetingDetail `json:"meeting"`
}

type votesDoc struct {
	Success bool          `json:"success"`
	Year    int           `json:"year,omitempty"`
	Votes   []VoteSummary `json:"votes"`
}

type voteDoc struct {
	Success bool       `json:"success"`
	Vote    VoteDetail `json:"vote"`
}

type alignmentDoc struct {
	Success   bool             `json:"success"`
	Alignment *stats.Alignment `json:"alignment"`
}

type searchDoc struct {
	Success bool         `json:"success"`
	Items   []SearchItem `json:"items"`
}

// Emit writes the full document set for ds into a staging directory inside
// outDir and then moves it into place. Only entries the emitter owns are
// replaced: the documents listed by the previous run's manifest, the
// per-kind detail directories and the documents of this run. Anything else
// in outDir is left alone. On error nothing is published and the staging
// directory is removed.
func (e *Emitter) Emit(ctx context.Context, ds *council.Dataset, rep *stats.Report, outDir string) (*Manifest, error) {
	ctx = logging.WithStage(ctx, "emit")
	logger := logging.FromContext(ctx)

	outDir = filepath.Clean(outDir)
	if err := os.MkdirAll(outDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", outDir, err)
	}
	id := uuid.NewString()
	staging := filepath.Join(outDir, ".staging-"+id)
	if err := os.Mkdir(staging, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", staging, err)
	}
	defer os.RemoveAll(staging)

	m, err := e.WriteTo(ctx, ds, rep, staging)
	if err != nil {
		return nil, err
	}
	if err := writeManifest(staging, m); err != nil {
		return nil, err
	}
	if err := publish(ctx, staging, outDir, id, owned(ctx, outDir, m)); err != nil {
		return nil, err
	}
	m.Dir = outDir

	logger.Info().
		Str("dir", outDir).
		Int("documents", m.Len()).
		Msg("Published dataset")
	return m, nil
}

type manifestDoc struct {
	Documents []string `json:"documents"`
}

func writeManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(manifestDoc{Documents: m.Documents}, "", constants.JSONIndent)
	if err != nil {
		return errors.WrapParse("json", constants.ManifestDocument, err)
	}
	path := filepath.Join(dir, constants.ManifestDocument)
	if err := os.WriteFile(path, append(data, '\n'), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// owned returns the top-level entries of outDir a publish may replace.
func owned(ctx context.Context, outDir string, m *Manifest) []string {
	names := []string{constants.ManifestDocument, constants.MemberDir, constants.MeetingDir, constants.VoteDir}
	docs := slices.Clone(m.Documents)

	path := filepath.Join(outDir, constants.ManifestDocument)
	if data, err := os.ReadFile(path); err == nil {
		var prev manifestDoc
		if err := json.Unmarshal(data, &prev); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("file", path).Msg("Ignoring unreadable manifest")
		} else {
			docs = append(docs, prev.Documents...)
		}
	}
	for _, doc := range docs {
		top, _, _ := strings.Cut(filepath.ToSlash(filepath.Clean(doc)), "/")
		if top == "" || top == "." || top == ".." {
			continue
		}
		names = append(names, top)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// publish moves the owned entries of outDir into a trash directory, moves
// the staged entries into outDir and then drops the trash. A failed move
// restores the previous entries.
func publish(ctx context.Context, staging, outDir, id string, names []string) error {
	trash := filepath.Join(outDir, ".old-"+id)
	if err := os.Mkdir(trash, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", trash, err)
	}
	defer func() {
		if err := os.RemoveAll(trash); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("dir", trash).Msg("Failed to remove previous dataset")
		}
	}()

	var retired, placed []string
	restore := func() {
		for _, name := range placed {
			_ = os.RemoveAll(filepath.Join(outDir, name))
		}
		for _, name := range retired {
			_ = os.Rename(filepath.Join(trash, name), filepath.Join(outDir, name))
		}
	}

	for _, name := range names {
		src := filepath.Join(outDir, name)
		if _, err := os.Lstat(src); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(src, filepath.Join(trash, name)); err != nil {
			restore()
			return errors.WrapIO("rename", src, err)
		}
		retired = append(retired, name)
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		restore()
		return errors.WrapIO("read", staging, err)
	}
	for _, entry := range entries {
		src := filepath.Join(staging, entry.Name())
		if err := os.Rename(src, filepath.Join(outDir, entry.Name())); err != nil {
			restore()
			return errors.WrapIO("rename", src, err)
		}
		placed = append(placed, entry.Name())
	}
	return nil
}

// WriteTo writes every document of ds directly into dir.
func (e *Emitter) WriteTo(ctx context.Context, ds *council.Dataset, rep *stats.Report, dir string) (*Manifest, error) {
	w := &writer{root: dir, manifest: &Manifest{}}
	newest := newestFirst(ds.Votes)

	w.json(constants.StatsDocument, statsDoc{Success: true, Stats: rep.Summary})

	members := make([]MemberDoc, len(ds.Members))
	for i, m := range ds.Members {
		members[i] = MemberDoc{Member: m, Stats: rep.Member(m.Name)}
	}
	w.json(constants.CouncilDocument, councilDoc{Success: true, Members: members})
	for _, md := range members {
		w.json(filepath.Join(constants.MemberDir, fmt.Sprintf("member-%d.json", md.ID)), memberDoc{
			Success: true,
			Member:  MemberDetail{MemberDoc: md, Votes: memberHistory(md.Member, newest)},
		})
	}

	meetings := slices.Clone(ds.Meetings)
	slices.Reverse(meetings)
	w.json(constants.MeetingsDocument, meetingsDoc{Success: true, Meetings: nonNil(meetings)})

	votesBy := make(map[*council.Meeting][]*council.Vote)
	for _, v := range ds.Votes {
		votesBy[v.Meeting] = append(votesBy[v.Meeting], v)
	}
	itemsBy := make(map[*council.Meeting][]*council.Item)
	for _, it := range ds.Items {
		itemsBy[it.Meeting] = append(itemsBy[it.Meeting], it)
	}
	for _, m := range ds.Meetings {
		w.json(filepath.Join(constants.MeetingDir, fmt.Sprintf("meeting-%d.json", m.ID)), meetingDoc{
			Success: true,
			Meeting: MeetingDetail{Meeting: m, Agenda: meetingAgenda(votesBy[m], itemsBy[m])},
		})
	}

	all := make([]VoteSummary, 0, len(newest))
	byYear := make(map[int][]VoteSummary)
	for _, v := range newest {
		s := e.voteSummary(v)
		all = append(all, s)
		if y, err := strconv.Atoi(stats.Year(v.Date())); err == nil {
			byYear[y] = append(byYear[y], s)
		}
	}
	w.json(constants.VotesDocument, votesDoc{Success: true, Votes: all})
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)
	for _, y := range years {
		w.json(fmt.Sprintf("votes-%d.json", y), votesDoc{Success: true, Year: y, Votes: byYear[y]})
	}

	for _, v := range ds.Votes {
		w.json(filepath.Join(constants.VoteDir, fmt.Sprintf("vote-%d.json", v.ID)), voteDoc{
			Success: true,
			Vote: VoteDetail{
				Vote:      v,
				MeetingID: meetingID(v.Meeting),
				Date:      v.Date(),
				Members:   voteBreakdown(v, ds.Members),
			},
		})
	}

	w.json(constants.AlignmentDocument, alignmentDoc{Success: true, Alignment: rep.Alignment})

	search := []SearchItem{}
	for _, it := range ds.Items {
		if it.Importance == agenda.ImportanceHigh {
			search = append(search, e.searchItem(it))
		}
	}
	slices.SortStableFunc(search, func(a, b SearchItem) int { return cmp.Compare(b.MeetingID, a.MeetingID) })
	w.json(constants.SearchIndexDocument, searchDoc{Success: true, Items: search})

	if e.opts.summary {
		var buf bytes.Buffer
		if err := report.Render(&buf, ds, rep); err != nil {
			return nil, err
		}
		w.raw(constants.SummaryDocument, buf.Bytes())
	}

	if w.err != nil {
		return nil, w.err
	}
	slices.Sort(w.manifest.Documents)
	logging.FromContext(ctx).Debug().Int("documents", w.manifest.Len()).Str("dir", dir).Msg("Wrote documents")
	return w.manifest, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// writer writes documents under root and stops at the first error.
type writer struct {
	root     string
	manifest *Manifest
	err      error
}

func (w *writer) json(rel string, v any) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", constants.JSONIndent)
	if err := enc.Encode(v); err != nil {
		w.err = errors.WrapParse("json", rel, err)
		return
	}
	w.raw(rel, buf.Bytes())
}

func (w *writer) raw(rel string, data []byte) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		w.err = errors.WrapIO("mkdir", filepath.Dir(path), err)
		return
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		w.err = errors.WrapIO("write", path, err)
		return
	}
	w.manifest.add(rel)
}
