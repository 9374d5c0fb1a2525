package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/regionz/ompt"
)

// memberKeyType is a private type for context keys to avoid collisions.
type memberKeyType string

const memberKey memberKeyType = "engine.member"

// team is the set of workers executing one parallel region.
//
//nolint:govet // Field order optimized for functionality over memory
type team struct {
	barrier    *barrier
	size       int
	singles    atomic.Int64
	panicOnce  sync.Once
	panicValue any
}

func newTeam(size int) *team {
	return &team{size: size, barrier: newBarrier(size)}
}

// member is one worker's view of its team.
type member struct {
	team    *team
	num     int
	singles int64
}

// memberOf returns the caller's team membership. Code outside any parallel
// region behaves as the only member of a team of one.
func memberOf(ctx context.Context) *member {
	if m, ok := ctx.Value(memberKey).(*member); ok {
		return m
	}
	return &member{team: newTeam(1), num: ompt.ThreadNum(ctx)}
}

func inTeam(ctx context.Context) bool {
	_, ok := ctx.Value(memberKey).(*member)
	return ok
}

// Parallel runs body on a team of numThreads workers and returns once every
// member has passed the region's closing barrier. numThreads <= 0 requests
// the runtime maximum. Nested regions run with a team of one.
//
// A panic in body is re-raised on the calling goroutine after the region
// ends. It aborts the team's barrier, so the other members run on without
// synchronizing until they finish their bodies.
func (rt *Runtime) Parallel(ctx context.Context, numThreads int, body func(ctx context.Context)) error {
	if rt.closed.Load() {
		return ErrClosed
	}
	if body == nil {
		return fmt.Errorf("parallel: %w", ErrNilBody)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requested := numThreads
	if requested <= 0 {
		requested = rt.maxThreads
	}
	size := requested
	if size > rt.maxThreads {
		size = rt.maxThreads
	}
	if inTeam(ctx) {
		size = 1
	}

	if cb := rt.callbacks.parallelBegin; cb != nil {
		cb(ctx, uint32(requested), ompt.ParallelInvokerProgram)
	}

	t := newTeam(size)
	var wg sync.WaitGroup
	wg.Add(size - 1)
	for i := 1; i < size; i++ {
		num := i
		rt.pool.submit(func() {
			defer wg.Done()
			rt.runMember(ctx, t, num, body)
		})
	}
	rt.runMember(ctx, t, 0, body)
	wg.Wait()

	if cb := rt.callbacks.parallelEnd; cb != nil {
		cb(ctx, ompt.ParallelInvokerProgram)
	}

	if t.panicValue != nil {
		panic(t.panicValue)
	}
	return nil
}

func (rt *Runtime) runMember(parent context.Context, t *team, num int, body func(ctx context.Context)) {
	m := &member{team: t, num: num}
	ctx := context.WithValue(ompt.WithThreadNum(parent, num), memberKey, m)

	if cb := rt.callbacks.implicitTask; cb != nil {
		cb(ctx, ompt.EndpointBegin, uint32(t.size), uint32(num), ompt.TaskImplicit)
	}

	rt.runBody(ctx, t, body)
	rt.synchronize(ctx, m, ompt.SyncBarrierImplicit)

	if cb := rt.callbacks.implicitTask; cb != nil {
		cb(ctx, ompt.EndpointEnd, uint32(t.size), uint32(num), ompt.TaskImplicit)
	}
}

func (rt *Runtime) runBody(ctx context.Context, t *team, body func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			t.panicOnce.Do(func() {
				t.panicValue = r
			})
			t.barrier.abort()
		}
	}()
	body(ctx)
}

// synchronize waits for the whole team, reporting the wait as kind.
func (rt *Runtime) synchronize(ctx context.Context, m *member, kind ompt.SyncKind) {
	if cb := rt.callbacks.syncRegion; cb != nil {
		cb(ctx, kind, ompt.EndpointBegin)
	}
	m.team.barrier.wait()
	if cb := rt.callbacks.syncRegion; cb != nil {
		cb(ctx, kind, ompt.EndpointEnd)
	}
}

// barrier is a reusable rendezvous for a fixed number of workers. Once
// aborted it releases every waiter and no longer blocks.
type barrier struct {
	cond       *sync.Cond
	mu         sync.Mutex
	parties    int
	waiting    int
	generation uint64
	aborted    bool
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.aborted {
		return
	}
	generation := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for generation == b.generation && !b.aborted {
		b.cond.Wait()
	}
}

func (b *barrier) abort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.aborted = true
	b.cond.Broadcast()
}
