// Package trace records spans for the rbfmt pipeline: CLI commands, the
// per-file stages (read, format, verify, write) and, at debug level, the
// phases inside the formatting core.
//
// # Usage
//
//	rbfmt fmt --trace=- --trace-level=detail lib/
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
//	defer span.End("")
//
// Open ScopeFile spans are listed by OpenFiles; the heartbeat reports the
// oldest one, which points at a file that hangs.
//
// # Implementations
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows ScopeDriver and ScopePass, LevelDetail adds ScopeFile,
// LevelDebug adds ScopeNode (parse/walk/resolve inside the core).
package trace
