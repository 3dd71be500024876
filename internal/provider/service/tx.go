package service

import (
	"context"
	"sync"
	"time"

	dErrors "provider-registry/pkg/domain-errors"
	txcontext "provider-registry/pkg/platform/tx"
)

// StoreTx is the single-writer boundary around the primary store and the
// principal index. Implementations may wrap a database transaction or,
// in-memory, a coarse lock. The callback receives a context that carries the
// transaction; stores must use it for every call made inside the callback.
// Implementations that support txcontext.AfterCommit run the registered callbacks
// only once the callback's writes are durable.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// defaultTxTimeout bounds how long a writer may wait for and hold the lock.
const defaultTxTimeout = 5 * time.Second

// inMemoryStoreTx serializes all writers behind one mutex. Reads do not take
// it; the in-memory store guards its own maps. Commit hooks run before the
// lock is released so they observe writers in commit order.
type inMemoryStoreTx struct {
	mu      sync.Mutex
	timeout time.Duration
}

func newInMemoryStoreTx(timeout time.Duration) *inMemoryStoreTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &inMemoryStoreTx{timeout: timeout}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	ctx, runHooks := txcontext.WithCommitHooks(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	runHooks(ctx)
	return nil
}
