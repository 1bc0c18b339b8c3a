package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/observ"
	"phpsniff/internal/source"
	"phpsniff/internal/version"
)

// DefaultTimeout bounds the scan of a single file.
const DefaultTimeout = 30 * time.Second

// Options configures Run.
type Options struct {
	// Jobs is the worker count; zero means GOMAXPROCS.
	Jobs int
	// Timeout bounds each file; zero means DefaultTimeout, negative disables it.
	Timeout time.Duration
	// MaxDiagnostics caps diagnostics kept per file; zero keeps all.
	MaxDiagnostics int
	// Cache, when set, serves and stores lint results. Fix runs bypass it.
	Cache *DiskCache

	Fix        bool
	FixOptions engine.FixOptions
	// DryRun computes fixes without writing files.
	DryRun bool

	// Events receives progress; Run closes it when done.
	Events chan<- Event
}

// FixSummary describes what the fixer did to one file.
type FixSummary struct {
	Passes    int
	Converged bool
	Changed   bool
	Written   bool
	Applied   int
	Output    []byte
}

// FileResult is the outcome for one file. Diagnostics are sorted and their
// spans resolve against Report.FileSet.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	Dropped     int
	Aborted     bool
	Cached      bool
	TimedOut    bool
	Err         error
	Fix         *FixSummary
}

// Report is the outcome of a run, in discovery order.
type Report struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings observ.Report
	Stats   Stats
}

// Stats are run counters.
type Stats struct {
	Files    int64
	Cached   int64
	TimedOut int64
	Failed   int64
	Changed  int64
}

// Counts sums diagnostics over all files.
func (r *Report) Counts() (errs, warns, fixable int) {
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			switch {
			case d.Severity >= diag.SevError:
				errs++
			case d.Severity == diag.SevWarning:
				warns++
			}
			if d.Fixable() {
				fixable++
			}
		}
	}
	return errs, warns, fixable
}

type runMetrics struct {
	files    atomic.Int64
	cached   atomic.Int64
	timedOut atomic.Int64
	failed   atomic.Int64
	changed  atomic.Int64
}

func (m *runMetrics) snapshot() Stats {
	return Stats{
		Files:    m.files.Load(),
		Cached:   m.cached.Load(),
		TimedOut: m.timedOut.Load(),
		Failed:   m.failed.Load(),
		Changed:  m.changed.Load(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("files: %d | cached: %d | timed out: %d | failed: %d | changed: %d",
		s.Files, s.Cached, s.TimedOut, s.Failed, s.Changed)
}

// Run discovers files under paths, scans (or fixes) them in parallel and
// collects the results. Per-file failures are reported in their FileResult;
// the returned error is for discovery problems and cancellation.
func Run(ctx context.Context, eng *engine.Engine, paths []string, opts Options) (*Report, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	log := zerolog.Ctx(ctx)
	timer := observ.NewTimer()
	cfg := eng.Config()

	phase := timer.Begin("discover")
	files, err := Discover(paths, cfg.Config.Files)
	timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}

	phase = timer.Begin("load")
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(files))
	loaded := make([]bool, len(files))
	for i, path := range files {
		results[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = errors.Errorf("load %s: %w", path, err)
			// placeholder so the error diagnostic has a file to point at
			results[i].FileID = fileSet.AddVirtual(path, nil)
			continue
		}
		results[i].FileID = id
		loaded[i] = true
		opts.emit(ctx, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	timer.End(phase, "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var metrics runMetrics

	phase = timer.Begin("scan")
	var g errgroup.Group
	g.SetLimit(max(1, min(jobs, len(files))))
	for i := range files {
		if ctx.Err() != nil {
			break
		}
		if !loaded[i] {
			metrics.failed.Add(1)
			opts.emit(ctx, Event{File: files[i], Stage: StageLoad, Status: StatusError})
			continue
		}
		g.Go(func() error {
			file := fileSet.Get(results[i].FileID)
			results[i] = scanFile(ctx, eng, file, &opts, &metrics)
			return nil
		})
	}
	_ = g.Wait()
	timer.End(phase, "")
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("run: %w", err)
	}

	phase = timer.Begin("collect")
	for i := range results {
		r := &results[i]
		if r.Err != nil && len(r.Diagnostics) == 0 {
			d := diag.NewError(diag.IntFileError, source.Span{File: r.FileID}, r.Err.Error())
			d.Token = diag.NoToken
			r.Diagnostics = []diag.Diagnostic{d}
		}
		if r.Fix != nil && r.Fix.Changed {
			// final diagnostics point into the rewritten text
			r.FileID = fileSet.Replace(r.FileID, r.Fix.Output)
			r.Diagnostics = rebind(r.Diagnostics, r.FileID)
		}
		bag := diag.NewBag(opts.MaxDiagnostics)
		for _, d := range r.Diagnostics {
			bag.Add(d)
		}
		bag.Sort()
		r.Diagnostics = bag.Items()
		r.Dropped = bag.Dropped()
	}
	timer.End(phase, "")

	stats := metrics.snapshot()
	log.Debug().Str("stats", stats.String()).Msg("run finished")
	return &Report{FileSet: fileSet, Files: results, Timings: timer.Report(), Stats: stats}, nil
}

// scanFile runs one file under its own deadline. When the deadline passes the
// result is replaced by a timeout diagnostic and the worker moves on.
func scanFile(ctx context.Context, eng *engine.Engine, file *source.File, opts *Options, m *runMetrics) FileResult {
	m.files.Add(1)
	var res FileResult
	log := zerolog.Ctx(ctx).With().Str("path", file.Path).Logger()

	var key Digest
	if opts.Cache != nil && !opts.Fix {
		key = CacheKey(file, eng.Config().Fingerprint, version.Version)
		var cached CachedFile
		hit, err := opts.Cache.Get(key, &cached)
		if err != nil {
			log.Debug().Err(err).Msg("cache read failed")
		}
		if hit {
			m.cached.Add(1)
			res = FileResult{Path: file.Path, FileID: file.ID, Cached: true}
			res.Aborted = cached.Aborted
			res.Diagnostics = rebind(cached.Diagnostics, file.ID)
			opts.emit(ctx, Event{File: file.Path, Stage: StageScan, Status: StatusCached, Diagnostics: len(res.Diagnostics)})
			return res
		}
		log.Debug().Msg("cache miss")
	}

	stage := StageScan
	if opts.Fix {
		stage = StageFix
	}
	opts.emit(ctx, Event{File: file.Path, Stage: stage, Status: StatusWorking})

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	fctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan FileResult, 1)
	go func() {
		done <- runOne(fctx, eng, file, opts)
	}()

	select {
	case res = <-done:
	case <-fctx.Done():
	}
	if fctx.Err() != nil && (res.Err != nil || res.Path == "") {
		if ctx.Err() != nil {
			return FileResult{Path: file.Path, FileID: file.ID, Err: ctx.Err()}
		}
		m.timedOut.Add(1)
		log.Warn().Dur("timeout", timeout).Msg("scan timed out")
		d := diag.NewError(diag.IntScanTimeout, source.Span{File: file.ID},
			fmt.Sprintf("scan timed out after %s; results for this file were dropped", timeout))
		d.Token = diag.NoToken
		opts.emit(ctx, Event{File: file.Path, Stage: stage, Status: StatusError})
		return FileResult{Path: file.Path, FileID: file.ID, TimedOut: true, Diagnostics: []diag.Diagnostic{d}}
	}

	if res.Err != nil {
		m.failed.Add(1)
		log.Error().Err(res.Err).Msg("file failed")
		opts.emit(ctx, Event{File: file.Path, Stage: stage, Status: StatusError})
		return res
	}

	if res.Fix != nil && res.Fix.Changed {
		m.changed.Add(1)
		if !opts.DryRun {
			opts.emit(ctx, Event{File: file.Path, Stage: StageWrite, Status: StatusWorking})
			if err := writeBack(file.Path, res.Fix.Output, file.Flags); err != nil {
				m.failed.Add(1)
				log.Error().Err(err).Msg("write failed")
				d := diag.NewError(diag.IntFileError, source.Span{File: file.ID}, err.Error())
				d.Token = diag.NoToken
				res.Diagnostics = append([]diag.Diagnostic{d}, res.Diagnostics...)
			} else {
				res.Fix.Written = true
			}
		}
	}

	if key != (Digest{}) {
		payload := &CachedFile{Path: file.Path, Aborted: res.Aborted, Diagnostics: res.Diagnostics}
		if err := opts.Cache.Put(key, payload); err != nil {
			log.Debug().Err(err).Msg("cache write failed")
		} else {
			log.Debug().Msg("cache stored")
		}
	}

	opts.emit(ctx, Event{File: file.Path, Stage: stage, Status: StatusDone, Diagnostics: len(res.Diagnostics)})
	return res
}

func runOne(ctx context.Context, eng *engine.Engine, file *source.File, opts *Options) FileResult {
	res := FileResult{Path: file.Path, FileID: file.ID}
	if !opts.Fix {
		lint, err := eng.Lint(ctx, file)
		if err != nil {
			res.Err = err
			return res
		}
		res.Diagnostics = lint.Diagnostics
		res.Aborted = lint.Aborted
		return res
	}

	fixed, err := eng.Fix(ctx, file, opts.FixOptions)
	if err != nil {
		res.Err = err
		return res
	}
	res.Diagnostics = fixed.Final.Diagnostics
	res.Aborted = fixed.Final.Aborted
	res.Fix = &FixSummary{
		Passes:    fixed.Passes,
		Converged: fixed.Converged,
		Changed:   fixed.Changed,
		Applied:   len(fixed.Applied),
		Output:    fixed.Output,
	}
	return res
}
