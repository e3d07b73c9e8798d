package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rsderive/internal/derive"
	"rsderive/internal/diag"
	"rsderive/internal/observ"
	"rsderive/internal/pipeline"
	"rsderive/internal/project"
	"rsderive/internal/source"
	"rsderive/internal/trace"
)

// Mode selects what happens with rendered output.
type Mode uint8

const (
	// ModeWrite writes `<stem><suffix>` next to each input.
	ModeWrite Mode = iota
	// ModeCheck compares rendered output with the file on disk.
	ModeCheck
	// ModeStdout keeps the content in the result; nothing is written.
	ModeStdout
)

type Options struct {
	MaxDiagnostics int
	// Jobs limits parallel files; zero means GOMAXPROCS.
	Jobs int
	Mode Mode
	// Config overrides manifest discovery when set.
	Config *project.Config
	// Cache is consulted before parsing; nil disables caching.
	Cache    *DiskCache
	Progress pipeline.ProgressSink
	// Timings adds an ObsTimings diagnostic per file.
	Timings bool
}

// FileStatus is the outcome for one input file.
type FileStatus uint8

const (
	StatusNoRequests FileStatus = iota
	StatusWritten
	StatusUnchanged
	StatusStale
	StatusRendered
	StatusFailed
)

func (s FileStatus) String() string {
	switch s {
	case StatusNoRequests:
		return "no requests"
	case StatusWritten:
		return "written"
	case StatusUnchanged:
		return "unchanged"
	case StatusStale:
		return "stale"
	case StatusRendered:
		return "rendered"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("FileStatus(%d)", uint8(s))
	}
}

// FileResult is the outcome of expanding one file.
type FileResult struct {
	Path      string
	OutPath   string
	FileID    source.FileID
	Content   []byte
	Fragments int
	Failures  int
	Bag       *diag.Bag
	Status    FileStatus
	Cached    bool
	Timing    observ.Report
}

// Result aggregates a run over one file or a directory tree.
type Result struct {
	FileSet  *source.FileSet
	Manifest *project.Manifest
	Config   project.Config
	// Files are sorted by path.
	Files   []*FileResult
	Timings pipeline.Timings
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Status == StatusFailed || (f.Bag != nil && f.Bag.HasErrors()) {
			return true
		}
	}
	return false
}

// Stale lists outputs that differ from disk in check mode.
func (r *Result) Stale() []string {
	var out []string
	for _, f := range r.Files {
		if f.Status == StatusStale {
			out = append(out, f.OutPath)
		}
	}
	return out
}

// Bag merges per-file diagnostics, sorted and deduplicated. Merge grows
// the limit, so per-file limits are the ones that apply.
func (r *Result) Bag(maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, f := range r.Files {
		if f.Bag != nil {
			bag.Merge(f.Bag)
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

// Timing merges per-file phase timings.
func (r *Result) Timing() observ.Report {
	reports := make([]observ.Report, 0, len(r.Files))
	for _, f := range r.Files {
		reports = append(reports, f.Timing)
	}
	return observ.Merge(reports...)
}

// Expand runs the generators over a `.rs` file or every `.rs` file under a
// directory. Per-file problems end up in FileResult bags; the returned error
// covers the run as a whole (missing input, bad manifest, cancellation).
func Expand(ctx context.Context, inputPath string, opts Options) (*Result, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	startDir := inputPath
	if !info.IsDir() {
		startDir = filepath.Dir(inputPath)
	}

	manifest, cfg, err := resolveConfig(startDir, opts.Config)
	if err != nil {
		return nil, err
	}

	var paths []string
	if info.IsDir() {
		paths, err = listRustFiles(inputPath, cfg.Output.Suffix)
		if err != nil {
			return nil, err
		}
	} else {
		paths = []string{inputPath}
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "expand", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", fmt.Sprint(len(paths)))
	defer runSpan.End("")

	baseDir := startDir
	if manifest.Root != "" {
		baseDir = manifest.Root
	}
	fileSet := source.NewFileSetWithBase(baseDir)
	res := &Result{
		FileSet:  fileSet,
		Manifest: manifest,
		Config:   cfg,
		Files:    make([]*FileResult, len(paths)),
	}

	// FileSet is append-only and not synchronized: load everything up front,
	// workers only read.
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", runSpan.ID())
	for i, p := range paths {
		res.Files[i] = preload(fileSet, p, cfg.Output.Suffix, opts, &res.Timings)
	}
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var timingsMu sync.Mutex
	w := &worker{
		fs:      fileSet,
		cfg:     cfg,
		gen:     derive.ConfigFrom(cfg),
		opts:    opts,
		tracer:  tracer,
		parent:  runSpan.ID(),
		timings: &res.Timings,
		mu:      &timingsMu,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, fr := range res.Files {
		if fr.Status == StatusFailed {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w.run(fr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Path < res.Files[j].Path })
	return res, nil
}

// Inputs lists the files Expand would process for inputPath, in order.
func Inputs(inputPath string, override *project.Config) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if !info.IsDir() {
		return []string{inputPath}, nil
	}
	_, cfg, err := resolveConfig(inputPath, override)
	if err != nil {
		return nil, err
	}
	return listRustFiles(inputPath, cfg.Output.Suffix)
}

func resolveConfig(startDir string, override *project.Config) (*project.Manifest, project.Config, error) {
	manifest, _, err := project.Load(startDir)
	if err != nil {
		return nil, project.Config{}, fmt.Errorf("failed to load manifest: %w", err)
	}
	cfg := manifest.Config
	if override != nil {
		cfg = *override
	}
	return manifest, cfg, nil
}

// preload reads one input into fs. A read failure turns into an IO4001
// diagnostic on an empty virtual file so it still renders with a path.
func preload(fs *source.FileSet, path, suffix string, opts Options, timings *pipeline.Timings) *FileResult {
	fr := &FileResult{
		Path:    path,
		OutPath: OutputPath(path, suffix),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	start := time.Now()
	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})

	id, err := fs.Load(path)
	elapsed := time.Since(start)
	timings.Add(pipeline.StageLoad, elapsed)
	if err != nil {
		fr.FileID = fs.AddVirtual(path, nil)
		fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fr.FileID},
			fmt.Sprintf("failed to read %s: %v", path, err)))
		fr.Status = StatusFailed
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err, Elapsed: elapsed})
		return fr
	}
	fr.FileID = id
	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusDone, Elapsed: elapsed})
	return fr
}

type worker struct {
	fs      *source.FileSet
	cfg     project.Config
	gen     derive.Config
	opts    Options
	tracer  trace.Tracer
	parent  uint64
	timings *pipeline.Timings
	mu      *sync.Mutex
}

func (w *worker) addTiming(stage pipeline.Stage, d time.Duration) {
	w.mu.Lock()
	w.timings.Add(stage, d)
	w.mu.Unlock()
}

func (w *worker) emit(fr *FileResult, stage pipeline.Stage, status pipeline.Status, elapsed time.Duration, detail string, err error) {
	pipeline.Emit(w.opts.Progress, pipeline.Event{
		File: fr.Path, Stage: stage, Status: status, Elapsed: elapsed, Detail: detail, Err: err,
	})
}

// run processes one loaded file: cache lookup, parse, expand, write.
func (w *worker) run(fr *FileResult) {
	span := trace.Begin(w.tracer, trace.ScopeFile, fr.Path, w.parent)
	timer := observ.NewTimer()
	defer func() {
		fr.Timing = timer.Report()
		if w.opts.Timings {
			appendTimingDiagnostic(fr.Bag, fr.FileID, timingPayload{
				Kind:    "file",
				Path:    fr.Path,
				TotalMS: fr.Timing.TotalMS,
				Phases:  fr.Timing.Phases,
			})
		}
		span.End(fr.Status.String())
	}()

	file := w.fs.Get(fr.FileID)
	key := CacheKey(file.Hash, w.cfg)

	if w.lookupCache(fr, key, timer) {
		trace.Point(w.tracer, trace.ScopePass, "cache", "hit", span.ID())
	} else if !w.generate(fr, key, timer, span.ID()) {
		return
	}

	w.finish(fr, timer)
}

func (w *worker) lookupCache(fr *FileResult, key project.Digest, timer *observ.Timer) bool {
	if w.opts.Cache == nil {
		return false
	}
	idx := timer.Begin("cache")
	var payload DiskPayload
	ok, err := w.opts.Cache.Get(key, &payload)
	if err != nil || !ok || payload.SourceHash != project.Digest(w.fs.Get(fr.FileID).Hash) {
		timer.End(idx, "miss")
		return false
	}
	timer.End(idx, "hit")
	fr.Cached = true
	fr.Content = payload.Content
	fr.Fragments = payload.Fragments
	fr.Failures = payload.Failures
	restoreDiagnostics(fr.Bag, fr.FileID, payload.Diagnostics)
	return true
}

// generate parses and expands the file. It returns false when the front end
// reported errors; such files are not expanded.
func (w *worker) generate(fr *FileResult, key project.Digest, timer *observ.Timer, parent uint64) bool {
	w.emit(fr, pipeline.StageParse, pipeline.StatusWorking, 0, "", nil)
	idx := timer.Begin("parse")
	pr, err := parseLoaded(w.fs, fr.FileID, w.opts.MaxDiagnostics)
	elapsed := timer.End(idx, "")
	w.addTiming(pipeline.StageParse, elapsed)
	if err != nil {
		fr.Status = StatusFailed
		w.emit(fr, pipeline.StageParse, pipeline.StatusError, elapsed, "", err)
		return false
	}
	fr.Bag.Merge(pr.Bag)
	if pr.Bag.HasErrors() {
		fr.Status = StatusFailed
		w.emit(fr, pipeline.StageParse, pipeline.StatusError, elapsed, "syntax errors", nil)
		return false
	}
	w.emit(fr, pipeline.StageParse, pipeline.StatusDone, elapsed, "", nil)

	w.emit(fr, pipeline.StageExpand, pipeline.StatusWorking, 0, "", nil)
	idx = timer.Begin("expand")
	exp := derive.Expander{
		Config:   w.gen,
		Reporter: &diag.BagReporter{Bag: fr.Bag},
		Tracer:   w.tracer,
		Parent:   parent,
	}
	out := exp.ExpandFile(pr.Builder, pr.FileID)
	fr.Fragments = len(out.Fragments)
	fr.Failures = out.Failures()
	if !out.Empty() {
		fr.Content = out.Render(filepath.Base(fr.Path))
	}
	elapsed = timer.End(idx, fmt.Sprintf("%d fragments", fr.Fragments))
	w.addTiming(pipeline.StageExpand, elapsed)
	w.emit(fr, pipeline.StageExpand, pipeline.StatusDone, elapsed, fragmentsDetail(fr), nil)

	if w.opts.Cache != nil {
		_ = w.opts.Cache.Put(key, &DiskPayload{
			Path:        fr.Path,
			SourceHash:  project.Digest(w.fs.Get(fr.FileID).Hash),
			Content:     fr.Content,
			Fragments:   fr.Fragments,
			Failures:    fr.Failures,
			Diagnostics: cacheDiagnostics(fr.Bag, fr.FileID),
		})
	}
	return true
}

// finish applies the run mode to the rendered content.
func (w *worker) finish(fr *FileResult, timer *observ.Timer) {
	w.emit(fr, pipeline.StageWrite, pipeline.StatusWorking, 0, "", nil)
	idx := timer.Begin("write")
	err := w.apply(fr)
	elapsed := timer.End(idx, fr.Status.String())
	w.addTiming(pipeline.StageWrite, elapsed)
	if err != nil {
		fr.Status = StatusFailed
		fr.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: fr.FileID},
			fmt.Sprintf("failed to write %s: %v", fr.OutPath, err)))
		w.emit(fr, pipeline.StageWrite, pipeline.StatusError, elapsed, "", err)
		return
	}
	status := pipeline.StatusDone
	if fr.Failures > 0 {
		status = pipeline.StatusError
	}
	w.emit(fr, pipeline.StageWrite, status, elapsed, fr.Status.String(), nil)
}

func (w *worker) apply(fr *FileResult) error {
	if fr.Fragments == 0 {
		fr.Status = StatusNoRequests
		switch w.opts.Mode {
		case ModeWrite:
			return removeGenerated(fr.OutPath)
		case ModeCheck:
			if ok, err := isGenerated(fr.OutPath); err != nil {
				return err
			} else if ok {
				fr.Status = StatusStale
			}
		}
		return nil
	}

	if w.opts.Mode == ModeStdout {
		fr.Status = StatusRendered
		return nil
	}

	existing, err := os.ReadFile(fr.OutPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err == nil && project.Sum(existing) == project.Sum(fr.Content) {
		fr.Status = StatusUnchanged
		return nil
	}
	if w.opts.Mode == ModeCheck {
		fr.Status = StatusStale
		return nil
	}
	if err := writeAtomic(fr.OutPath, fr.Content); err != nil {
		return err
	}
	fr.Status = StatusWritten
	return nil
}

func fragmentsDetail(fr *FileResult) string {
	switch {
	case fr.Fragments == 0:
		return "nothing to expand"
	case fr.Failures > 0:
		return fmt.Sprintf("%d fragments, %d failed", fr.Fragments, fr.Failures)
	case fr.Fragments == 1:
		return "1 fragment"
	default:
		return fmt.Sprintf("%d fragments", fr.Fragments)
	}
}

// OutputPath maps `src/foo.rs` to `src/foo<suffix>`.
func OutputPath(path, suffix string) string {
	return strings.TrimSuffix(path, ".rs") + suffix
}

// listRustFiles returns `.rs` files under root, skipping generated outputs,
// hidden directories and `target`.
func listRustFiles(root, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".rs") && !strings.HasSuffix(path, suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// isGenerated reports whether path exists and starts with the rsderive header.
func isGenerated(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return bytes.HasPrefix(data, []byte(derive.Header)), nil
}

// removeGenerated deletes a previous output once its source no longer
// requests anything. Files without the header are left alone.
func removeGenerated(path string) error {
	ok, err := isGenerated(path)
	if err != nil || !ok {
		return err
	}
	return os.Remove(path)
}

// writeAtomic writes through a temp file in the same directory.
func writeAtomic(path string, content []byte) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(content); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
