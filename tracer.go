package regionz

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/regionz/internal/logging"
	"github.com/zoobzio/regionz/ompt"
)

// Tracer turns host lifecycle notifications and application annotations
// into trace records.
// Safe for concurrent use by multiple goroutines.
//
//nolint:govet // Field order optimized for functionality over memory
type Tracer struct {
	out        io.Writer
	activation *Activation
	timestamps *Timestamps
	pool       *BufPool
	logger     *slog.Logger
	registered *atomic.Int32
}

// New creates a tracer writing to stdout, gated on the process activation.
// Uses the real clock for production behavior.
func New() *Tracer {
	return &Tracer{
		out:        os.Stdout,
		activation: processActivation,
		timestamps: defaultTimestamps(),
		pool:       NewBufPool(runtime.NumCPU() * 4),
		logger:     logging.New(slog.LevelInfo),
		registered: new(atomic.Int32),
	}
}

// WithClock returns a copy of the tracer reading the specified clock.
// Enables clock injection for deterministic testing.
func (t *Tracer) WithClock(clock clockz.Clock) *Tracer {
	c := t.clone()
	c.timestamps = NewTimestamps(clock)
	return c
}

// WithOutput returns a copy of the tracer writing records to w.
func (t *Tracer) WithOutput(w io.Writer) *Tracer {
	c := t.clone()
	c.out = w
	return c
}

// WithActivation returns a copy of the tracer gated on a instead of the
// process activation.
func (t *Tracer) WithActivation(a *Activation) *Tracer {
	c := t.clone()
	c.activation = a
	return c
}

// WithLogger returns a copy of the tracer reporting diagnostics to logger.
func (t *Tracer) WithLogger(logger *slog.Logger) *Tracer {
	c := t.clone()
	c.logger = logger
	return c
}

func (t *Tracer) clone() *Tracer {
	c := *t
	c.registered = new(atomic.Int32)
	return &c
}

// Enabled reports whether records are emitted.
func (t *Tracer) Enabled() bool {
	return t.activation.Enabled()
}

// ParallelBegin records a worker entering a parallel region.
func (t *Tracer) ParallelBegin(ctx context.Context, requested uint32, _ int) {
	l, ok := t.open(ctx, EventPrefix)
	if !ok {
		return
	}
	l.event("PARALLEL BEGIN", "")
	l.attrUint("requested threads", uint64(requested))
	t.flush(&l)
}

// ParallelEnd records a worker leaving a parallel region.
func (t *Tracer) ParallelEnd(ctx context.Context, _ int) {
	l, ok := t.open(ctx, EventPrefix)
	if !ok {
		return
	}
	l.event("PARALLEL END", "")
	t.flush(&l)
}

// Work records the start or end of a work-sharing construct.
func (t *Tracer) Work(ctx context.Context, kind ompt.WorkKind, endpoint ompt.Endpoint, count uint64) {
	l, ok := t.open(ctx, EventPrefix)
	if !ok {
		return
	}
	direction := "END"
	if endpoint == ompt.EndpointBegin {
		direction = "START"
	}
	l.event("WORK", direction)
	l.attrString("type", kind.String())
	l.attrUint("count", count)
	t.flush(&l)
}

// ImplicitTask records a worker starting or finishing its implicit task.
func (t *Tracer) ImplicitTask(ctx context.Context, endpoint ompt.Endpoint, teamSize, _ uint32, _ int) {
	l, ok := t.open(ctx, EventPrefix)
	if !ok {
		return
	}
	name := "TASK FINISH"
	if endpoint == ompt.EndpointBegin {
		name = "TASK START"
	}
	l.event(name, "")
	l.attrUint("team size", uint64(teamSize))
	t.flush(&l)
}

// SyncRegion records a worker entering or leaving a synchronization region.
func (t *Tracer) SyncRegion(ctx context.Context, kind ompt.SyncKind, endpoint ompt.Endpoint) {
	l, ok := t.open(ctx, EventPrefix)
	if !ok {
		return
	}
	direction := "EXIT"
	if endpoint == ompt.EndpointBegin {
		direction = "ENTER"
	}
	l.event(direction, kind.String())
	t.flush(&l)
}

// Annotate records label at the current time. The label is written as is.
func (t *Tracer) Annotate(ctx context.Context, label string) {
	l, ok := t.open(ctx, AnnotationPrefix)
	if !ok {
		return
	}
	l.event("Annotation", "")
	l.buf = append(l.buf, ": "...)
	l.buf = append(l.buf, label...)
	t.flush(&l)
}

// MarkROIStart annotates the start of a region of interest.
func (t *Tracer) MarkROIStart(ctx context.Context) {
	t.Annotate(ctx, ROIStart)
}

// MarkROIEnd annotates the end of a region of interest.
func (t *Tracer) MarkROIEnd(ctx context.Context) {
	t.Annotate(ctx, ROIEnd)
}

// open is the guard every emission goes through. When tracing is disabled it
// returns before the clock is read.
func (t *Tracer) open(ctx context.Context, prefix string) (line, bool) {
	if !t.activation.Enabled() {
		return line{}, false
	}

	l := line{
		buf: t.pool.Get(),
		ms:  t.timestamps.Millis(),
	}
	l.buf = append(l.buf, prefix...)
	l.buf = append(l.buf, " Thread "...)
	l.buf = strconv.AppendInt(l.buf, int64(ompt.ThreadNum(ctx)), 10)
	l.buf = append(l.buf, ' ')
	return l, true
}

// flush terminates the line and writes it with a single call.
func (t *Tracer) flush(l *line) {
	if l.attrs {
		l.buf = append(l.buf, ')')
	}
	l.buf = append(l.buf, '\n')
	// Write errors are dropped; the host never sees a failure from a handler.
	_, _ = t.out.Write(l.buf)
	t.pool.Put(l.buf)
}

// line is one record under construction.
type line struct {
	buf   []byte
	ms    float64
	attrs bool
}

func (l *line) event(name, qualifier string) {
	l.buf = append(l.buf, name...)
	if qualifier != "" {
		l.buf = append(l.buf, ' ')
		l.buf = append(l.buf, qualifier...)
	}
	l.buf = append(l.buf, " at "...)
	l.buf = strconv.AppendFloat(l.buf, l.ms, 'f', 3, 64)
	l.buf = append(l.buf, " ms"...)
}

func (l *line) attr(key string) {
	if l.attrs {
		l.buf = append(l.buf, ", "...)
	} else {
		l.buf = append(l.buf, " ("...)
		l.attrs = true
	}
	l.buf = append(l.buf, key...)
	l.buf = append(l.buf, ": "...)
}

func (l *line) attrUint(key string, v uint64) {
	l.attr(key)
	l.buf = strconv.AppendUint(l.buf, v, 10)
}

func (l *line) attrString(key, v string) {
	l.attr(key)
	l.buf = append(l.buf, v...)
}

var std atomic.Pointer[Tracer]

func init() {
	std.Store(New())
}

// Default returns the tracer used by the package-level annotation functions.
func Default() *Tracer {
	return std.Load()
}

// SetDefault replaces the tracer used by the package-level annotation
// functions. A nil tracer is ignored.
func SetDefault(t *Tracer) {
	if t != nil {
		std.Store(t)
	}
}

// Annotate records label on the default tracer.
func Annotate(ctx context.Context, label string) {
	Default().Annotate(ctx, label)
}

// MarkROIStart marks the start of a region of interest on the default tracer.
func MarkROIStart(ctx context.Context) {
	Default().MarkROIStart(ctx)
}

// MarkROIEnd marks the end of a region of interest on the default tracer.
func MarkROIEnd(ctx context.Context) {
	Default().MarkROIEnd(ctx)
}
