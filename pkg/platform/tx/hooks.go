package tx

import (
	"context"
	"sync"
)

type hooksKey struct{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

// WithCommitHooks returns a context that collects AfterCommit callbacks and a
// function that runs them in registration order. A context that already
// carries hooks is returned unchanged with a no-op runner, so only the
// outermost transaction fires them.
func WithCommitHooks(ctx context.Context) (context.Context, func(context.Context)) {
	if _, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		return ctx, func(context.Context) {}
	}
	hooks := &commitHooks{}
	return context.WithValue(ctx, hooksKey{}, hooks), hooks.run
}

// AfterCommit registers fn to run once the enclosing transaction commits. It
// reports false when ctx is not inside a transaction that supports hooks; the
// caller then owns running fn itself.
func AfterCommit(ctx context.Context, fn func(context.Context)) bool {
	hooks, ok := ctx.Value(hooksKey{}).(*commitHooks)
	if !ok {
		return false
	}
	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
	return true
}

func (h *commitHooks) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}
