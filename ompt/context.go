package ompt

import "context"

// threadKeyType is a private type for context keys to avoid collisions.
type threadKeyType string

const threadKey threadKeyType = "ompt.thread"

// WithThreadNum returns a context identifying the calling worker as n within
// its team.
func WithThreadNum(ctx context.Context, n int) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, threadKey, n)
}

// ThreadNum returns the worker number carried by ctx. Code running outside
// any team is worker 0.
func ThreadNum(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if n, ok := ctx.Value(threadKey).(int); ok {
		return n
	}
	return 0
}
