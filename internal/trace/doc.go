// Package trace records what the decompiler does and how long it takes.
//
// Enable tracing from the command line:
//
//	spvdecomp --trace=- --trace-level=stage shader.spv
//
// Tracers:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels go from off through error and stage to detail. Stage traces the
// driver and the pipeline stages (read, decode, build, render); detail adds
// one span per rendered function.
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "decode", 0)
//	defer span.End("")
package trace
