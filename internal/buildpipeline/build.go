// Package buildpipeline compiles a set of source files into .ll artefacts,
// one independent compilation per file.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/driver"
	"github.com/maciek-pioro/compiler/internal/observ"
	"github.com/maciek-pioro/compiler/internal/project"
	"github.com/maciek-pioro/compiler/internal/source"
)

var (
	// ErrDuplicateArtifact is returned when two inputs map to one .ll name.
	ErrDuplicateArtifact = errors.New("duplicate artifact")
	ErrNoInputs          = errors.New("no input files")
)

// Request configures a build.
type Request struct {
	Files []string
	// BaseDir shortens file names in events; usually the project root.
	BaseDir        string
	OutDir         string
	Jobs           int // <= 0 means GOMAXPROCS
	TargetTriple   string
	MaxDiagnostics int
	Compiler       string     // compiler version, part of the cache key
	Cache          *DiskCache // nil disables caching
	Progress       ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome for one input.
type FileResult struct {
	Source      string // path as given
	Display     string // name used in events
	Artifact    string // written .ll path, empty on failure
	IR          string
	FileSet     *source.FileSet // for rendering Diagnostics
	Diagnostics []diag.Diagnostic
	Cached      bool
	OK          bool
	Err         error // I/O failure; compile errors are in Diagnostics
}

// Result preserves the order of Request.Files.
type Result struct {
	Files   []FileResult
	OK      bool
	Elapsed time.Duration
}

// Failed returns the results that did not produce an artefact.
func (r Result) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK {
			out = append(out, f)
		}
	}
	return out
}

// Build compiles every file of req. A failing file does not stop the others;
// the returned error is reserved for bad requests and cancellation.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Files) == 0 {
		return result, ErrNoInputs
	}
	if err := checkArtifacts(req.Files); err != nil {
		return result, err
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = "target"
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return result, fmt.Errorf("failed to create output dir: %w", err)
	}

	start := time.Now()
	display := DisplayNames(req.Files, req.BaseDir)
	emitQueued(req.Progress, display)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	result.Files = make([]FileResult, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			w := &worker{req: req, outDir: outDir, display: display[i]}
			result.Files[i] = w.run(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.OK = true
	for _, f := range result.Files {
		result.OK = result.OK && f.OK
	}
	result.Elapsed = time.Since(start)
	status := StatusDone
	if !result.OK {
		status = StatusError
	}
	emit(req.Progress, Event{Stage: StageWrite, Status: status, Elapsed: result.Elapsed})
	return result, nil
}

type worker struct {
	req     *Request
	outDir  string
	display string
	failed  bool // an error event was sent
}

func (w *worker) event(stage Stage, status Status, err error, elapsed time.Duration) {
	if status == StatusError {
		w.failed = true
	}
	emit(w.req.Progress, Event{File: w.display, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func (w *worker) fail(res FileResult, stage Stage, err error) FileResult {
	res.Err = err
	w.event(stage, StatusError, err, 0)
	return res
}

func (w *worker) run(ctx context.Context, path string) FileResult {
	started := time.Now()
	res := FileResult{Source: path, Display: w.display}

	w.event(StageLoad, StatusWorking, nil, 0)
	fs := source.NewFileSet()
	res.FileSet = fs
	id, err := fs.Load(path)
	if err != nil {
		res.Diagnostics = []diag.Diagnostic{
			diag.NewError(diag.IOLoadFileError, source.Pos{}, "failed to load file: "+err.Error()),
		}
		return w.fail(res, StageLoad, err)
	}
	file := fs.Get(id)

	key := CacheKey(project.Digest(file.Hash), w.req.Compiler, w.req.TargetTriple)
	var entry CacheEntry
	hit, err := w.req.Cache.Get(key, &entry)
	if err != nil {
		// битый кеш не мешает сборке
		hit = false
	}
	if hit {
		res.IR = entry.IR
		res.Cached = true
		w.event(StageLoad, StatusCached, nil, time.Since(started))
	} else {
		out := driver.CompileFile(ctx, fs, id, driver.Options{
			MaxDiagnostics: w.req.MaxDiagnostics,
			TargetTriple:   w.req.TargetTriple,
			Timer:          w.req.Timer,
			Observer:       w.observe,
		})
		res.Diagnostics = out.Diagnostics
		if !out.OK {
			if !w.failed {
				w.event(StageSema, StatusError, nil, time.Since(started))
			}
			return res
		}
		res.IR = out.IR
		if err := w.req.Cache.Put(key, &CacheEntry{
			Source:   file.Path,
			Compiler: w.req.Compiler,
			Triple:   w.req.TargetTriple,
			IR:       out.IR,
		}); err != nil {
			res.Err = fmt.Errorf("cache: %w", err)
		}
	}

	w.event(StageWrite, StatusWorking, nil, 0)
	artifact := filepath.Join(w.outDir, ArtifactName(path))
	if err := writeAtomic(artifact, []byte(res.IR)); err != nil {
		return w.fail(res, StageWrite, err)
	}
	res.Artifact = artifact
	res.OK = true
	w.event(StageWrite, StatusDone, nil, time.Since(started))
	return res
}

// observe turns driver phase boundaries into progress events.
func (w *worker) observe(ev driver.PhaseEvent) {
	switch ev.Status {
	case driver.PhaseStart:
		w.event(Stage(ev.Name), StatusWorking, nil, 0)
	case driver.PhaseEnd:
		status := StatusDone
		if !ev.OK {
			status = StatusError
		}
		w.event(Stage(ev.Name), status, nil, ev.Elapsed)
	}
}

func writeAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.ll")
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return os.Rename(f.Name(), path)
}

// Clean removes the output directory and, when given, the cache.
func Clean(outDir string, cache *DiskCache) error {
	if outDir != "" {
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("remove %s: %w", outDir, err)
		}
	}
	return cache.DropAll()
}
