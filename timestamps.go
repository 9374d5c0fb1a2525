package regionz

import (
	"time"

	"github.com/zoobzio/clockz"
)

// processEpoch anchors the default timestamps so every tracer in the process
// reports on the same axis.
var processEpoch = clockz.RealClock.Now()

// Timestamps reads elapsed time since a fixed epoch.
// Safe for concurrent use.
type Timestamps struct {
	clock clockz.Clock
	epoch time.Time
}

// NewTimestamps uses clock with the epoch set to the clock's current time.
func NewTimestamps(clock clockz.Clock) *Timestamps {
	return &Timestamps{clock: clock, epoch: clock.Now()}
}

// defaultTimestamps reads the real clock against the process epoch.
func defaultTimestamps() *Timestamps {
	return &Timestamps{clock: clockz.RealClock, epoch: processEpoch}
}

// Micros returns microseconds since the epoch. The real clock carries a
// monotonic reading, so successive calls never decrease.
func (ts *Timestamps) Micros() float64 {
	elapsed := ts.clock.Now().Sub(ts.epoch)
	return float64(elapsed.Nanoseconds()) / 1000.0
}

// Millis returns milliseconds since the epoch.
func (ts *Timestamps) Millis() float64 {
	return ts.Micros() / 1000.0
}
