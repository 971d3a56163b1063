// Package trace records what the compiler is doing as a stream of span
// events.
//
// Tracing is switched on from the command line:
//
//	minic build --trace=- --trace-level=pass src/main.mini
//
// Three tracers exist. StreamTracer writes every event as soon as it is
// emitted (text or NDJSON), RingTracer keeps the most recent events in
// memory so they can be dumped after a failed build, and MultiTracer fans
// out to several tracers. Nop costs nothing and is what FromContext returns
// when no tracer was attached.
//
// Events carry a Scope: ScopeDriver for the command, ScopeFile for one
// compilation unit, ScopePass for lex/parse/sema/hoist/emit and ScopeNode
// for anything finer. The Level decides which scopes reach the output.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "compile:main.mini")
//	defer span.End("")
package trace
