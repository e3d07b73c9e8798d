// Package trace records what rsderive is doing while it expands files.
//
// Tracing is off by default and enabled from the command line:
//
//	rsderive expand --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved, emits nothing by itself
//   - LevelPhase: the command and every input file
//   - LevelDetail: per-file stages (load, parse, expand, write)
//   - LevelDebug: every derive request and seq! invocation
//
// # Scopes
//
//   - ScopeDriver: the CLI command
//   - ScopeFile: one input file
//   - ScopePass: one stage of one file
//   - ScopeNode: one generator request
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
