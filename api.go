// Package regionz traces the lifecycle of a task-parallel execution engine.
//
// regionz turns host notifications (parallel regions, work-sharing
// constructs, implicit tasks, synchronization) into one timestamped text
// line each, so that wall-clock timing can be correlated with concurrency
// structure without touching the instrumented program.
//
// Core Components:.
//   - Activation: one-time, latched check of an environment variable.
//   - Timestamps: monotonic microsecond clock with a fixed epoch.
//   - Tracer: lifecycle handlers plus the annotation primitive.
//   - StartTool: the entry point a host calls to attach the tracer.
//
// Basic Usage:.
//
//	tracer := regionz.New()
//	rt := engine.New(engine.WithTool(tracer.StartTool))
//	defer rt.Close()
//
//	tracer.MarkROIStart(ctx)
//	rt.Parallel(ctx, 4, func(ctx context.Context) { ... })
//	tracer.MarkROIEnd(ctx)
//
// Output Format:.
//
//	[OMPT] Thread 2 PARALLEL BEGIN at 12.345 ms (requested threads: 4)
//	[OMPT_annotation] Thread 0 Annotation at 12.001 ms: ROI_START
//
// Timestamps are milliseconds since a process-wide epoch. Within a worker,
// records are ordered; across workers only the timestamp is authoritative.
//
// Thread Safety:.
//
// Every handler is safe for concurrent use. Each record is written with a
// single Write call, but lines from different workers sharing a stream are
// not guaranteed to be atomic.
//
// Activation:.
//
// Nothing is emitted unless the environment variable named by
// DefaultActivationVar is present when the first record is attempted.
// The answer is latched for the life of the process.
package regionz

// Line prefixes distinguishing lifecycle records from annotations.
const (
	EventPrefix      = "[OMPT]"
	AnnotationPrefix = "[OMPT_annotation]"
)

// ROI labels written by MarkROIStart and MarkROIEnd.
const (
	ROIStart = "ROI_START"
	ROIEnd   = "ROI_END"
)
