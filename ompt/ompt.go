// Package ompt declares the contract between a task-parallel host runtime
// and a tool that observes it.
//
// The numbering of callbacks and kinds follows the OpenMP tools interface so
// that traces line up with those produced against a native runtime. The host
// owns these declarations; tools only consume them.
package ompt

import "context"

// Callback identifies a lifecycle event a tool can subscribe to.
type Callback int

// Callback identifiers.
const (
	CallbackThreadBegin   Callback = 1
	CallbackThreadEnd     Callback = 2
	CallbackParallelBegin Callback = 3
	CallbackParallelEnd   Callback = 4
	CallbackTaskCreate    Callback = 5
	CallbackTaskSchedule  Callback = 6
	CallbackImplicitTask  Callback = 7
	CallbackWork          Callback = 20
	CallbackSyncRegion    Callback = 21
)

var callbackNames = map[Callback]string{
	CallbackThreadBegin:   "thread_begin",
	CallbackThreadEnd:     "thread_end",
	CallbackParallelBegin: "parallel_begin",
	CallbackParallelEnd:   "parallel_end",
	CallbackTaskCreate:    "task_create",
	CallbackTaskSchedule:  "task_schedule",
	CallbackImplicitTask:  "implicit_task",
	CallbackWork:          "work",
	CallbackSyncRegion:    "sync_region",
}

func (c Callback) String() string {
	if name, ok := callbackNames[c]; ok {
		return name
	}
	return Unknown
}

// Endpoint tells whether a scoped event is being entered or left.
type Endpoint int

// Scope endpoints.
const (
	EndpointBegin    Endpoint = 1
	EndpointEnd      Endpoint = 2
	EndpointBeginEnd Endpoint = 3
)

func (e Endpoint) String() string {
	switch e {
	case EndpointBegin:
		return "begin"
	case EndpointEnd:
		return "end"
	case EndpointBeginEnd:
		return "beginend"
	}
	return Unknown
}

// WorkKind is the kind of work-sharing construct reported by CallbackWork.
type WorkKind int

// Work-sharing kinds.
const (
	WorkLoop           WorkKind = 1
	WorkSections       WorkKind = 2
	WorkSingleExecutor WorkKind = 3
	WorkSingleOther    WorkKind = 4
	WorkWorkshare      WorkKind = 5
	WorkDistribute     WorkKind = 6
	WorkTaskloop       WorkKind = 7
	WorkScope          WorkKind = 8
)

func (w WorkKind) String() string {
	switch w {
	case WorkLoop:
		return "loop"
	case WorkSections:
		return "sections"
	case WorkSingleExecutor:
		return "single"
	case WorkSingleOther:
		return "single_other"
	case WorkWorkshare:
		return "workshare"
	case WorkDistribute:
		return "distribute"
	case WorkTaskloop:
		return "taskloop"
	}
	return Unknown
}

// SyncKind is the kind of synchronization reported by CallbackSyncRegion.
type SyncKind int

// Synchronization kinds.
const (
	SyncBarrier               SyncKind = 1
	SyncBarrierImplicit       SyncKind = 2
	SyncBarrierExplicit       SyncKind = 3
	SyncBarrierImplementation SyncKind = 4
	SyncTaskwait              SyncKind = 5
	SyncTaskgroup             SyncKind = 6
	SyncReduction             SyncKind = 7
)

func (s SyncKind) String() string {
	switch s {
	case SyncBarrier:
		return "barrier"
	case SyncBarrierImplicit:
		return "implicit_barrier"
	case SyncBarrierExplicit:
		return "explicit_barrier"
	case SyncBarrierImplementation:
		return "implementation_barrier"
	case SyncTaskwait:
		return "taskwait"
	case SyncTaskgroup:
		return "taskgroup"
	case SyncReduction:
		return "reduction"
	}
	return Unknown
}

// Unknown is the display name of any value the host did not declare.
const Unknown = "unknown"

// SetResult is what the host answers when a tool registers a callback.
type SetResult int

// Registration results.
const (
	SetError           SetResult = 0
	SetNever           SetResult = 1
	SetImpossible      SetResult = 2
	SetSometimes       SetResult = 3
	SetSometimesPaired SetResult = 4
	SetAlways          SetResult = 5
)

func (r SetResult) String() string {
	switch r {
	case SetError:
		return "error"
	case SetNever:
		return "never"
	case SetImpossible:
		return "impossible"
	case SetSometimes:
		return "sometimes"
	case SetSometimesPaired:
		return "sometimes_paired"
	case SetAlways:
		return "always"
	}
	return Unknown
}

// Handler signatures. The host invokes them synchronously on the worker that
// triggered the transition; ctx carries that worker's identity.
type (
	ParallelBeginFunc func(ctx context.Context, requested uint32, flags int)
	ParallelEndFunc   func(ctx context.Context, flags int)
	WorkFunc          func(ctx context.Context, kind WorkKind, endpoint Endpoint, count uint64)
	ImplicitTaskFunc  func(ctx context.Context, endpoint Endpoint, teamSize, threadNum uint32, flags int)
	SyncRegionFunc    func(ctx context.Context, kind SyncKind, endpoint Endpoint)
)

// SetCallbackName is the entry name under which a host exposes its
// SetCallbackFunc through LookupFunc.
const SetCallbackName = "ompt_set_callback"

// SetCallbackFunc registers handler for the given callback. The handler must
// be the function type matching the callback.
type SetCallbackFunc func(which Callback, handler any) SetResult

// LookupFunc resolves a host entry point by name. It returns nil for names
// the host does not provide.
type LookupFunc func(name string) any

// ToolData is opaque per-tool storage the host hands back on every entry
// point call.
type ToolData struct {
	Ptr   any
	Value uint64
}

// InitializeFunc is called once when the host attaches the tool. A non-zero
// return keeps the tool attached.
type InitializeFunc func(lookup LookupFunc, initialDeviceNum int, data *ToolData) int

// FinalizeFunc is called once when the host shuts down.
type FinalizeFunc func(data *ToolData)

// StartToolResult is what a tool returns from its start entry point.
type StartToolResult struct {
	Initialize InitializeFunc
	Finalize   FinalizeFunc
	ToolData   ToolData
}

// StartToolFunc is the entry point a host calls to discover a tool. A nil
// result declines attachment.
type StartToolFunc func(ompVersion uint, runtimeVersion string) *StartToolResult

// Flags passed with parallel and implicit-task events.
const (
	ParallelInvokerProgram = 0x1
	ParallelInvokerRuntime = 0x2

	TaskInitial  = 0x1
	TaskImplicit = 0x2
)
