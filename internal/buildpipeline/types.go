package buildpipeline

import (
	"time"

	"github.com/maciek-pioro/compiler/internal/driver"
)

// Stage describes a phase of one file's build.
type Stage string

const (
	// StageLoad reads the source from disk and consults the cache.
	StageLoad  Stage = "load"
	StageParse Stage = Stage(driver.PhaseParse)
	StageSema  Stage = Stage(driver.PhaseSema)
	StageHoist Stage = Stage(driver.PhaseHoist)
	StageEmit  Stage = Stage(driver.PhaseEmit)
	// StageWrite stores the .ll artefact.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusCached indicates the artefact came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall build when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Build calls it from worker
// goroutines, so implementations must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		emit(sink, Event{File: f, Stage: StageLoad, Status: StatusQueued})
	}
}
