package regionz

import (
	"os"
	"sync"
	"sync/atomic"
)

// DefaultActivationVar is the environment variable whose presence enables
// tracing. Its value is ignored.
const DefaultActivationVar = "REGIONZ_TOOL_LIBRARIES"

// processActivation gates every tracer built by New, including the default
// tracer behind the package-level annotation functions. It latches on first
// use like any other Activation.
var processActivation = NewActivation(DefaultActivationVar)

// ProcessActivation returns the activation shared by every tracer built with
// New. Tracers given another activation through WithActivation do not consult
// it.
func ProcessActivation() *Activation {
	return processActivation
}

// LookupEnvFunc reports whether an environment variable is set.
type LookupEnvFunc func(key string) (string, bool)

// Activation decides once whether tracing is enabled.
// Safe for concurrent use; concurrent first callers all observe the same
// answer and the environment is read exactly once.
type Activation struct {
	lookup  LookupEnvFunc
	name    string
	once    sync.Once
	enabled atomic.Bool
}

// NewActivation creates an activation gated on the named variable.
func NewActivation(name string) *Activation {
	return NewActivationWithLookup(name, os.LookupEnv)
}

// NewActivationWithLookup creates an activation that reads the environment
// through lookup instead of the process environment.
func NewActivationWithLookup(name string, lookup LookupEnvFunc) *Activation {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Activation{name: name, lookup: lookup}
}

// ForceActivation returns an activation already latched to enabled.
func ForceActivation(enabled bool) *Activation {
	a := &Activation{}
	a.once.Do(func() {
		a.enabled.Store(enabled)
	})
	return a
}

// Enabled reports whether tracing is on. The first call performs the lookup;
// later calls return the latched answer even if the environment changed.
func (a *Activation) Enabled() bool {
	a.once.Do(a.check)
	return a.enabled.Load()
}

// Name returns the variable this activation is gated on.
func (a *Activation) Name() string {
	return a.name
}

func (a *Activation) check() {
	_, present := a.lookup(a.name)
	a.enabled.Store(present)
}
