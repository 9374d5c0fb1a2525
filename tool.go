package regionz

import "github.com/zoobzio/regionz/ompt"

// StartTool is the tracer's discovery entry point. A host calls it once and
// receives the initialize and finalize hooks.
func (t *Tracer) StartTool(ompVersion uint, runtimeVersion string) *ompt.StartToolResult {
	t.logger.Debug("tool discovered", "omp_version", ompVersion, "runtime", runtimeVersion)
	return &ompt.StartToolResult{
		Initialize: t.initialize,
		Finalize:   t.finalize,
	}
}

// Registered returns how many callbacks the host accepted at the most recent
// attach.
func (t *Tracer) Registered() int {
	return int(t.registered.Load())
}

type registration struct {
	handler any
	which   ompt.Callback
}

func (t *Tracer) registrations() []registration {
	return []registration{
		{which: ompt.CallbackParallelBegin, handler: ompt.ParallelBeginFunc(t.ParallelBegin)},
		{which: ompt.CallbackParallelEnd, handler: ompt.ParallelEndFunc(t.ParallelEnd)},
		{which: ompt.CallbackWork, handler: ompt.WorkFunc(t.Work)},
		{which: ompt.CallbackImplicitTask, handler: ompt.ImplicitTaskFunc(t.ImplicitTask)},
		{which: ompt.CallbackSyncRegion, handler: ompt.SyncRegionFunc(t.SyncRegion)},
	}
}

// initialize registers every handler through the host's set-callback entry.
// Without one the tracer stays attached for annotations only.
func (t *Tracer) initialize(lookup ompt.LookupFunc, initialDeviceNum int, _ *ompt.ToolData) int {
	t.logger.Info("OMPT tool initialized", "device", initialDeviceNum)
	t.registered.Store(0)

	setCallback := resolveSetCallback(lookup)
	if setCallback == nil {
		t.logger.Warn("could not register OMPT callbacks", "entry", ompt.SetCallbackName)
		return 1
	}

	for _, reg := range t.registrations() {
		result := setCallback(reg.which, reg.handler)
		switch result {
		case ompt.SetError, ompt.SetNever, ompt.SetImpossible:
			t.logger.Warn("callback rejected", "callback", reg.which.String(), "result", result.String())
		default:
			t.registered.Add(1)
			t.logger.Debug("callback registered", "callback", reg.which.String(), "result", result.String())
		}
	}

	if t.Registered() == 0 {
		t.logger.Warn("host accepted no OMPT callbacks")
		return 1
	}
	t.logger.Info("OMPT callbacks registered successfully", "count", t.Registered())
	return 1
}

func (t *Tracer) finalize(_ *ompt.ToolData) {
	t.logger.Info("OMPT tool finalized")
}

func resolveSetCallback(lookup ompt.LookupFunc) ompt.SetCallbackFunc {
	if lookup == nil {
		return nil
	}
	switch fn := lookup(ompt.SetCallbackName).(type) {
	case ompt.SetCallbackFunc:
		return fn
	case func(ompt.Callback, any) ompt.SetResult:
		return fn
	}
	return nil
}
