// Package engine is a small task-parallel runtime that exposes its lifecycle
// to tools through the ompt contract.
//
// A Runtime forks teams of workers for parallel regions and offers the usual
// work-sharing constructs inside them: static loops, sections, single and
// barriers. Tool callbacks run synchronously on the goroutine that triggers
// the transition, with that worker's number in the context.
package engine

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/regionz/internal/logging"
	"github.com/zoobzio/regionz/ompt"
)

// Version reported to tools at discovery.
const (
	OMPVersion     uint = 202011
	RuntimeVersion      = "regionz-engine 0.1.0"
)

var (
	// ErrClosed is returned by constructs started after Close.
	ErrClosed = errors.New("runtime closed")
	// ErrNilBody is returned when a construct is given no work.
	ErrNilBody = errors.New("nil body")
	// ErrNegativeCount is returned by loops with a negative trip count.
	ErrNegativeCount = errors.New("negative iteration count")
)

// callbacks is the table a tool fills during Initialize. It is written only
// while the runtime is being constructed and read-only afterwards.
type callbacks struct {
	parallelBegin ompt.ParallelBeginFunc
	parallelEnd   ompt.ParallelEndFunc
	work          ompt.WorkFunc
	implicitTask  ompt.ImplicitTaskFunc
	syncRegion    ompt.SyncRegionFunc
}

// Runtime runs parallel regions on a pool of workers.
// Safe for concurrent use by multiple goroutines.
//
//nolint:govet // Field order optimized for functionality over memory
type Runtime struct {
	callbacks   callbacks
	pool        *workerPool
	tool        *ompt.StartToolResult
	start       ompt.StartToolFunc
	logger      *slog.Logger
	maxThreads  int
	registering atomic.Bool
	closed      atomic.Bool
	closeOnce   sync.Once
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithMaxThreads caps team sizes. Defaults to the number of CPUs.
func WithMaxThreads(n int) Option {
	return func(rt *Runtime) {
		rt.maxThreads = n
	}
}

// WithTool attaches the tool discovered through start.
func WithTool(start ompt.StartToolFunc) Option {
	return func(rt *Runtime) {
		rt.start = start
	}
}

// WithLogger sets the logger used for runtime diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// New creates a runtime and attaches the configured tool, if any.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		maxThreads: runtime.NumCPU(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.maxThreads < 1 {
		rt.maxThreads = 1
	}

	rt.pool = newWorkerPool(rt.maxThreads - 1)
	rt.attach()
	return rt
}

// attach runs the tool's discovery and initialization. The callback table is
// only writable for the duration of Initialize.
func (rt *Runtime) attach() {
	if rt.start == nil {
		return
	}

	result := rt.start(OMPVersion, RuntimeVersion)
	if result == nil || result.Initialize == nil {
		rt.logger.Debug("tool declined attachment")
		return
	}

	rt.registering.Store(true)
	keep := result.Initialize(rt.lookup, 0, &result.ToolData)
	rt.registering.Store(false)

	if keep == 0 {
		rt.callbacks = callbacks{}
		rt.logger.Debug("tool detached at initialize")
		return
	}

	rt.tool = result
	rt.logger.Debug("tool attached")
}

func (rt *Runtime) lookup(name string) any {
	if name == ompt.SetCallbackName {
		return ompt.SetCallbackFunc(rt.setCallback)
	}
	return nil
}

func (rt *Runtime) setCallback(which ompt.Callback, handler any) ompt.SetResult {
	if !rt.registering.Load() {
		return ompt.SetError
	}

	var ok bool
	switch which {
	case ompt.CallbackParallelBegin:
		rt.callbacks.parallelBegin, ok = handler.(ompt.ParallelBeginFunc)
	case ompt.CallbackParallelEnd:
		rt.callbacks.parallelEnd, ok = handler.(ompt.ParallelEndFunc)
	case ompt.CallbackWork:
		rt.callbacks.work, ok = handler.(ompt.WorkFunc)
	case ompt.CallbackImplicitTask:
		rt.callbacks.implicitTask, ok = handler.(ompt.ImplicitTaskFunc)
	case ompt.CallbackSyncRegion:
		rt.callbacks.syncRegion, ok = handler.(ompt.SyncRegionFunc)
	default:
		return ompt.SetNever
	}

	if !ok {
		rt.logger.Warn("callback handler has the wrong type", "callback", which.String())
		return ompt.SetError
	}
	return ompt.SetAlways
}

// Attached reports whether a tool stayed attached after initialization.
func (rt *Runtime) Attached() bool {
	return rt.tool != nil
}

// MaxThreads returns the largest team the runtime will form.
func (rt *Runtime) MaxThreads() int {
	return rt.maxThreads
}

// Overflow returns how many team members ran outside the pool because every
// pooled worker was busy.
func (rt *Runtime) Overflow() uint64 {
	return rt.pool.overflow.Load()
}

// Close finalizes the attached tool and stops the worker pool.
// Safe to call multiple times.
func (rt *Runtime) Close() {
	rt.closeOnce.Do(func() {
		rt.closed.Store(true)
		if rt.tool != nil && rt.tool.Finalize != nil {
			rt.tool.Finalize(&rt.tool.ToolData)
		}
		rt.pool.shutdown()
	})
}
