package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"rbfmt/internal/format"
	"rbfmt/internal/observ"
	"rbfmt/internal/pipeline"
	"rbfmt/internal/printer"
	"rbfmt/internal/project"
	"rbfmt/internal/source"
	"rbfmt/internal/testkit"
	"rbfmt/internal/trace"
	"rbfmt/internal/version"
)

// ErrNoSourceFiles is returned when the given paths hold nothing to format.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatOptions configures code formatting.
type FormatOptions struct {
	// Check leaves files alone; Changed tells whether they would change.
	Check bool
	// Stdout returns the output in FormatResult.Formatted instead of writing.
	Stdout bool
	// Diff fills FormatResult.Diff for changed files.
	Diff bool
	// Verify formats the output again and compares comments with the input.
	Verify bool
	Color  bool

	// LineWidth overrides Config.Format.LineWidth when positive.
	LineWidth      int
	Jobs           int
	MaxDiagnostics int

	Config   project.Config
	Cache    *DiskCache
	Progress pipeline.ProgressSink
	Timer    *observ.Timer
}

func (o FormatOptions) width() int {
	if o.LineWidth > 0 {
		return o.LineWidth
	}
	if o.Config.Format.LineWidth > 0 {
		return o.Config.Format.LineWidth
	}
	return project.DefaultLineWidth
}

func (o FormatOptions) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (o FormatOptions) formatter() *format.Formatter {
	return format.New(printer.Frontend{MaxErrors: o.MaxDiagnostics}, format.Options{LineWidth: o.width()})
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	Cached  bool
	Err     error
	// Formatted is set with Stdout.
	Formatted []byte
	Diff      string
	Timings   pipeline.Timings
}

// FormatPaths formats the given files and directories. Files are formatted
// in parallel; a failure of one file lands in its FormatResult.Err and does
// not stop the others. The returned error is reserved for collection
// problems and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "fmt")
	detail := ""
	defer func() { span.End(detail) }()

	discoverStart := time.Now()
	pipeline.Emit(opts.Progress, "", pipeline.StageDiscover, pipeline.StatusWorking, nil, 0)
	_, discover := trace.Start(ctx, trace.ScopePass, "discover")
	files, err := CollectFiles(ctx, paths, opts.Config)
	discover.WithExtra("files", fmt.Sprint(len(files))).EndErr(err)
	discoverElapsed := time.Since(discoverStart)
	if err != nil {
		pipeline.Emit(opts.Progress, "", pipeline.StageDiscover, pipeline.StatusError, err, discoverElapsed)
		return nil, err
	}
	pipeline.Emit(opts.Progress, "", pipeline.StageDiscover, pipeline.StatusDone, nil, discoverElapsed)
	if opts.Timer != nil {
		opts.Timer.Record("discover", discoverElapsed, fmt.Sprintf("%d files", len(files)))
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	pipeline.EmitQueued(opts.Progress, files)

	fmtr := opts.formatter()
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return nil
			}
			results[i] = formatPath(gctx, fmtr, path, opts)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	detail = fmt.Sprintf("failed=%d", failed)
	return results, ctx.Err()
}

// formatPath runs one file through read, format, verify and write.
func formatPath(ctx context.Context, fmtr *format.Formatter, path string, opts FormatOptions) (res FormatResult) {
	res.Path = path
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", path)
	defer func() {
		switch {
		case res.Err != nil:
			span.EndErr(res.Err)
		case res.Changed:
			span.End("changed")
		default:
			span.End("unchanged")
		}
	}()

	stage := func(st pipeline.Stage, f func() error) bool {
		pipeline.Emit(opts.Progress, path, st, pipeline.StatusWorking, nil, 0)
		start := time.Now()
		err := f()
		elapsed := time.Since(start)
		res.Timings.Add(st, elapsed)
		if opts.Timer != nil {
			opts.Timer.Accumulate(string(st), elapsed)
		}
		if err != nil {
			res.Err = err
			pipeline.Emit(opts.Progress, path, st, pipeline.StatusError, err, elapsed)
			return false
		}
		return true
	}

	var raw []byte
	if !stage(pipeline.StageRead, func() (err error) {
		// #nosec G304 -- path comes from the command line or a directory walk
		raw, err = os.ReadFile(path)
		return err
	}) {
		return res
	}

	var out []byte
	if !stage(pipeline.StageFormat, func() (err error) {
		out, res.Cached, err = formatCached(ctx, fmtr, path, raw, opts)
		return err
	}) {
		return res
	}

	if opts.Verify && !res.Cached {
		if !stage(pipeline.StageVerify, func() error {
			return verifyOutput(ctx, fmtr, path, source.Normalize(raw), out)
		}) {
			return res
		}
	}

	res.Changed = !bytes.Equal(raw, out)
	if opts.Diff && res.Changed {
		res.Diff = UnifiedDiff(path, raw, out, opts.Color)
	}
	if opts.Stdout {
		res.Formatted = out
	}
	if res.Changed && !opts.Check && !opts.Stdout {
		if !stage(pipeline.StageWrite, func() error { return writeFileAtomic(path, out) }) {
			return res
		}
	}
	outcome := pipeline.OutcomeUnchanged
	if res.Changed {
		outcome = pipeline.OutcomeChanged
	}
	pipeline.EmitResult(opts.Progress, path, outcome, res.Cached, res.Timings.Sum(pipeline.StageRead, pipeline.StageFormat, pipeline.StageVerify, pipeline.StageWrite))
	return res
}

// formatCached consults the disk cache before running the formatter. Only
// successful results are cached; parse errors are reported every run.
func formatCached(ctx context.Context, fmtr *format.Formatter, path string, raw []byte, opts FormatOptions) ([]byte, bool, error) {
	var key project.Digest
	if opts.Cache != nil {
		key = CacheKey(raw, opts.width(), version.Version)
		var entry CacheEntry
		if ok, err := opts.Cache.Get(key, &entry); err == nil && ok {
			if !entry.Changed {
				return raw, true, nil
			}
			return entry.Output, true, nil
		}
	}

	out, err := FormatSource(ctx, fmtr, path, raw)
	if err != nil {
		return nil, false, err
	}
	if opts.Cache != nil {
		entry := CacheEntry{Path: path, Width: opts.width(), Changed: !bytes.Equal(raw, out)}
		if entry.Changed {
			entry.Output = out
		}
		// кэш не должен ломать форматирование
		_ = opts.Cache.Put(key, &entry)
	}
	return out, false, nil
}

// FormatSource formats one in-memory file. The input is normalized first:
// a BOM is dropped and CRLF becomes LF.
func FormatSource(ctx context.Context, fmtr *format.Formatter, path string, src []byte) ([]byte, error) {
	return fmtr.Format(ctx, path, source.Normalize(src))
}

// FormatBytes formats src the way FormatPaths would, including Verify.
func FormatBytes(ctx context.Context, path string, src []byte, opts FormatOptions) ([]byte, error) {
	fmtr := opts.formatter()
	out, err := FormatSource(ctx, fmtr, path, src)
	if err != nil {
		return nil, err
	}
	if opts.Verify {
		if err := verifyOutput(ctx, fmtr, path, source.Normalize(src), out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// verifyOutput checks that formatting out again changes nothing and that
// no comment of src got lost or duplicated.
func verifyOutput(ctx context.Context, fmtr *format.Formatter, path string, src, out []byte) error {
	again := func(b []byte) ([]byte, error) { return fmtr.Format(ctx, path, b) }
	return errors.Join(
		testkit.CheckIdempotent(again, out),
		testkit.CheckComments(src, out),
	)
}
