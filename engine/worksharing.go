package engine

import (
	"context"
	"fmt"

	"github.com/zoobzio/regionz/ompt"
)

// For splits iterations [0, count) statically across the caller's team and
// waits for the team at the end of the loop.
func (rt *Runtime) For(ctx context.Context, count int, body func(ctx context.Context, i int)) error {
	return rt.loop(ctx, count, body, true)
}

// ForNoWait is For without the closing barrier.
func (rt *Runtime) ForNoWait(ctx context.Context, count int, body func(ctx context.Context, i int)) error {
	return rt.loop(ctx, count, body, false)
}

func (rt *Runtime) loop(ctx context.Context, count int, body func(ctx context.Context, i int), wait bool) error {
	if rt.closed.Load() {
		return ErrClosed
	}
	if body == nil {
		return fmt.Errorf("for: %w", ErrNilBody)
	}
	if count < 0 {
		return fmt.Errorf("for %d: %w", count, ErrNegativeCount)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := memberOf(ctx)
	lo, hi := staticChunk(count, m.team.size, m.num)

	rt.work(ctx, ompt.WorkLoop, ompt.EndpointBegin, uint64(hi-lo))
	for i := lo; i < hi; i++ {
		body(ctx, i)
	}
	rt.work(ctx, ompt.WorkLoop, ompt.EndpointEnd, uint64(hi-lo))

	if wait {
		rt.synchronize(ctx, m, ompt.SyncBarrierImplicit)
	}
	return nil
}

// staticChunk returns the contiguous block of iterations owned by member num.
func staticChunk(count, size, num int) (lo, hi int) {
	chunk := (count + size - 1) / size
	lo = num * chunk
	if lo > count {
		lo = count
	}
	hi = lo + chunk
	if hi > count {
		hi = count
	}
	return lo, hi
}

// Sections runs each section exactly once, distributed round-robin across the
// team, then waits for the team.
func (rt *Runtime) Sections(ctx context.Context, sections ...func(ctx context.Context)) error {
	if rt.closed.Load() {
		return ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for i, section := range sections {
		if section == nil {
			return fmt.Errorf("section %d: %w", i, ErrNilBody)
		}
	}

	m := memberOf(ctx)
	var mine uint64
	for i := m.num; i < len(sections); i += m.team.size {
		mine++
	}

	rt.work(ctx, ompt.WorkSections, ompt.EndpointBegin, mine)
	for i := m.num; i < len(sections); i += m.team.size {
		sections[i](ctx)
	}
	rt.work(ctx, ompt.WorkSections, ompt.EndpointEnd, mine)

	rt.synchronize(ctx, m, ompt.SyncBarrierImplicit)
	return nil
}

// Single runs body on the first member of the team to arrive; the others skip
// it. Every member then waits for the team.
func (rt *Runtime) Single(ctx context.Context, body func(ctx context.Context)) error {
	if rt.closed.Load() {
		return ErrClosed
	}
	if body == nil {
		return fmt.Errorf("single: %w", ErrNilBody)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := memberOf(ctx)
	m.singles++
	// The closing barrier keeps every member on the same single construct, so
	// the first to advance the team counter owns it.
	executor := m.team.singles.CompareAndSwap(m.singles-1, m.singles)

	kind := ompt.WorkSingleOther
	if executor {
		kind = ompt.WorkSingleExecutor
	}

	rt.work(ctx, kind, ompt.EndpointBegin, 1)
	if executor {
		body(ctx)
	}
	rt.work(ctx, kind, ompt.EndpointEnd, 1)

	rt.synchronize(ctx, m, ompt.SyncBarrierImplicit)
	return nil
}

// Barrier waits until every member of the caller's team has arrived.
func (rt *Runtime) Barrier(ctx context.Context) error {
	if rt.closed.Load() {
		return ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rt.synchronize(ctx, memberOf(ctx), ompt.SyncBarrierExplicit)
	return nil
}

func (rt *Runtime) work(ctx context.Context, kind ompt.WorkKind, endpoint ompt.Endpoint, count uint64) {
	if cb := rt.callbacks.work; cb != nil {
		cb(ctx, kind, endpoint, count)
	}
}
