package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one compilation.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	OK      bool // valid on PhaseEnd
}

// PhaseObserver receives phase events emitted by the compile functions.
// It is called synchronously on the compiling goroutine.
type PhaseObserver func(PhaseEvent)

// Phase names, in pipeline order.
const (
	PhaseParse = "parse"
	PhaseSema  = "sema"
	PhaseHoist = "hoist"
	PhaseEmit  = "emit"
)

// phase ties a trace span, a timer entry and observer events together.
type phase struct {
	name    string
	started time.Time
	done    func(string)
	end     func(string) time.Duration
	observe PhaseObserver
}

func (c *compilation) begin(name string) *phase {
	ph := &phase{
		name:    name,
		started: time.Now(),
		done:    c.opts.Timer.Track(name),
		observe: c.opts.Observer,
	}
	ctx, span := startPassSpan(c.ctx, name)
	c.spanCtx = ctx
	ph.end = span.End
	if ph.observe != nil {
		ph.observe(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return ph
}

func (ph *phase) finish(ok bool) {
	note := "ok"
	if !ok {
		note = "failed"
	}
	ph.end(note)
	ph.done(note)
	if ph.observe != nil {
		ph.observe(PhaseEvent{Name: ph.name, Status: PhaseEnd, Elapsed: time.Since(ph.started), OK: ok})
	}
}
