package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exec returns the transaction carried by ctx, or db when there is none.
func Exec(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

// Runner executes callbacks inside a database transaction.
type Runner struct {
	db *sql.DB
	// lockStmt runs first in every transaction. Postgres uses an advisory
	// transaction lock so all writers are serialized.
	lockStmt string
}

type RunnerOption func(*Runner)

// WithLockStatement sets a statement executed at the start of each transaction.
func WithLockStatement(stmt string) RunnerOption {
	return func(r *Runner) {
		r.lockStmt = stmt
	}
}

func NewRunner(db *sql.DB, opts ...RunnerOption) *Runner {
	r := &Runner{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunInTx begins a transaction, stores it in the context passed to fn, and
// commits when fn returns nil. Nested calls reuse the outer transaction.
// AfterCommit callbacks registered by fn run only after a successful commit.
func (r *Runner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	ctx, runHooks := WithCommitHooks(ctx)
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if r.lockStmt != "" {
		if _, err = sqlTx.ExecContext(ctx, r.lockStmt); err != nil {
			return fmt.Errorf("acquire writer lock: %w", err)
		}
	}
	if err = fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	runHooks(ctx)
	return nil
}
