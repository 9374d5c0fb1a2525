// Package integration exercises the tracer attached to the reference engine.
package integration

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/zoobzio/regionz"
	"github.com/zoobzio/regionz/engine"
	"github.com/zoobzio/regionz/internal/logging"
)

// LineCollector is a concurrency-safe output stream that parses what the
// tracer writes.
//
//nolint:govet // Field alignment optimized for test helper readability
type LineCollector struct {
	buf bytes.Buffer
	t   *testing.T
	mu  sync.Mutex
}

// NewLineCollector creates a collector reporting parse failures to t.
func NewLineCollector(t *testing.T) *LineCollector {
	return &LineCollector{t: t}
}

// Write implements io.Writer.
func (c *LineCollector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Lines returns every complete line written so far.
func (c *LineCollector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := strings.TrimSuffix(c.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Records parses every line, failing the test on anything unparseable.
func (c *LineCollector) Records() []regionz.Record {
	lines := c.Lines()
	records := make([]regionz.Record, 0, len(lines))
	for _, line := range lines {
		rec, err := regionz.ParseRecord(line)
		if err != nil {
			c.t.Errorf("unparseable line %q: %v", line, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// ByWorker groups records by emitting worker, preserving write order.
func ByWorker(records []regionz.Record) map[int][]regionz.Record {
	out := make(map[int][]regionz.Record)
	for _, rec := range records {
		out[rec.Worker] = append(out[rec.Worker], rec)
	}
	return out
}

// CountEvents returns how many records carry each event name.
func CountEvents(records []regionz.Record) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		out[rec.Event]++
	}
	return out
}

// NewTracedRuntime builds an enabled tracer writing to a collector and a
// runtime with it attached. The runtime is closed when the test ends.
func NewTracedRuntime(t *testing.T, maxThreads int) (*regionz.Tracer, *engine.Runtime, *LineCollector) {
	t.Helper()
	collector := NewLineCollector(t)
	tracer := regionz.New().
		WithOutput(collector).
		WithActivation(regionz.ForceActivation(true)).
		WithLogger(logging.NewNop())
	rt := engine.New(
		engine.WithMaxThreads(maxThreads),
		engine.WithTool(tracer.StartTool),
	)
	t.Cleanup(rt.Close)
	return tracer, rt, collector
}
