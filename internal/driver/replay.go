package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ion/internal/diag"
	"ion/internal/observ"
)

// Options управляют прогоном записей.
type Options struct {
	// Out receives warning output. Defaults to os.Stderr via the Reporter.
	Out io.Writer
	// Session observes warnings during the replay. Optional.
	Session diag.Session
	// EnableTimings collects per-phase durations into FileResult.Timing.
	EnableTimings bool
	// Progress receives per-recording events. Optional.
	Progress ProgressSink
}

// FileResult is the outcome of replaying one recording.
type FileResult struct {
	Path string
	// Records counts replayed records, the raising one included.
	Records int
	// Fatal is the first raised diagnostic; nil when the unit replays clean.
	Fatal *diag.Diagnostic
	// Err reports a recording that could not be loaded or replayed.
	Err    error
	Timing *observ.Report
}

// Failed reports whether the replay ended in a raise or an input error.
func (r *FileResult) Failed() bool {
	return r.Fatal != nil || r.Err != nil
}

// HasErrors reports whether any recording failed.
func HasErrors(results []FileResult) bool {
	for i := range results {
		if results[i].Failed() {
			return true
		}
	}
	return false
}

// FatalDiagnostics collects raised diagnostics across results in input order.
func FatalDiagnostics(results []FileResult) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for i := range results {
		if results[i].Fatal != nil {
			out = append(out, results[i].Fatal)
		}
	}
	return out
}

// ReplayFile replays one recording through a fresh Reporter. Warnings
// print as they are replayed; the first raising record ends the unit the
// way a crashed compile run abandons the rest of its input.
func ReplayFile(path string, opts Options) FileResult {
	res := FileResult{Path: path}
	start := time.Now()

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	emitEvent(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	loadDone := timer.Track("load")
	rec, err := LoadRecording(path)
	if err != nil {
		loadDone("error")
		res.Err = err
		res.Timing = reportOf(timer)
		emitEvent(opts.Progress, path, StageLoad, StatusError, err, time.Since(start))
		return res
	}
	loadDone(fmt.Sprintf("records=%d", len(rec.Records)))

	reporter := diag.NewReporter(diag.Options{Out: opts.Out, Session: opts.Session})

	emitEvent(opts.Progress, path, StageReplay, StatusWorking, nil, 0)
	replayDone := timer.Track("replay")
	replayRecords(rec, reporter, &res)
	switch {
	case res.Fatal != nil:
		replayDone("raised")
	case res.Err != nil:
		replayDone("error")
	default:
		replayDone("")
	}

	res.Timing = reportOf(timer)
	status := StatusDone
	eventErr := res.Err
	if res.Failed() {
		status = StatusError
		if eventErr == nil {
			eventErr = res.Fatal
		}
	}
	emitEvent(opts.Progress, path, StageReplay, status, eventErr, time.Since(start))
	return res
}

// replayRecords replays records in order and stops at the first raise.
func replayRecords(rec *Recording, reporter *diag.Reporter, res *FileResult) {
	for i := range rec.Records {
		r := &rec.Records[i]
		res.Records++

		if r.Kind == RecordWarning {
			file, line := r.Meta().Resolve(r.resolveFile(rec.Source))
			if file == "" {
				reporter.WarnPlain(r.Text)
			} else {
				reporter.Warn(line, file, r.Text)
			}
			continue
		}

		fatal, err := catchRecord(func() { raiseRecord(r, rec.Source) })
		if err != nil {
			res.Err = fmt.Errorf("record %d: %w", i, err)
			return
		}
		res.Fatal = fatal
		return
	}
}

func raiseRecord(r *Record, recordingSource string) {
	switch r.Kind {
	case RecordCompileError:
		diag.CompileError(r.Meta(), r.resolveFile(recordingSource), r.Text)
	default:
		diag.ParseError(r.Line, r.resolveFile(recordingSource), r.ErrorPair(), r.Token)
	}
}

// catchRecord recovers the raised diagnostic. Decode errors from
// malformed serialized tokens re-panic out of diag.Catch as plain
// errors; here they turn into input errors for the recording.
func catchRecord(fn func()) (fatal *diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	fatal = diag.Catch(fn)
	return fatal, nil
}

func reportOf(timer *observ.Timer) *observ.Report {
	if timer == nil {
		return nil
	}
	report := timer.Report()
	return &report
}

// ReplayDir replays every recording under dir in parallel. Results come
// back in the sorted file order regardless of completion order; warning
// output from concurrent units interleaves, but stays ordered within
// each unit.
func ReplayDir(ctx context.Context, dir string, opts Options, jobs int) ([]FileResult, error) {
	files, err := ListRecordings(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	emitQueued(opts.Progress, files)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = ReplayFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ListRecordings возвращает отсортированный список всех *.json записей в директории
func ListRecordings(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
