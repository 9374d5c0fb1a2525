// Command regionz runs a demonstration workload on the reference engine with
// the tracer attached.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	atexit.Register(closeActive)
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
