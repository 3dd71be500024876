package main

import (
	"context"
	"time"

	dErrors "provider-registry/pkg/domain-errors"
	txcontext "provider-registry/pkg/platform/tx"
)

const defaultStoreTxTimeout = 5 * time.Second

// sqlStoreTx bounds every registry transaction with a deadline and maps
// cancellation to a timeout error before any work starts.
type sqlStoreTx struct {
	runner  *txcontext.Runner
	timeout time.Duration
}

func newSQLStoreTx(runner *txcontext.Runner, timeout time.Duration) *sqlStoreTx {
	return &sqlStoreTx{runner: runner, timeout: timeout}
}

func (t *sqlStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultStoreTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := t.runner.RunInTx(ctx, fn); err != nil {
		if _, coded := dErrors.CodeOf(err); !coded && ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: deadline exceeded")
		}
		return err
	}
	return nil
}
