// Package clock supplies logical time for provider records.
//
// Logical time is a strictly increasing counter, comparable to a ledger's block
// height. Services read it inside the write transaction so that commit order
// and timestamp order agree.
package clock

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	txcontext "provider-registry/pkg/platform/tx"
)

// Logical is an in-process counter. Safe for concurrent use.
type Logical struct {
	seq atomic.Int64
}

// NewLogical creates a clock whose first tick is 1.
func NewLogical() *Logical {
	return &Logical{}
}

// NewLogicalAt creates a clock that resumes after start, typically the
// highest logical time already persisted.
func NewLogicalAt(start int64) *Logical {
	c := &Logical{}
	c.seq.Store(start)
	return c
}

// Next returns the next tick.
func (c *Logical) Next(_ context.Context) (int64, error) {
	return c.seq.Add(1), nil
}

// Current returns the last issued tick without advancing.
func (c *Logical) Current() int64 {
	return c.seq.Load()
}

// Sequence draws ticks from a PostgreSQL sequence, so every instance sharing
// the database observes one timeline.
type Sequence struct {
	db   *sql.DB
	name string
}

// NewSequence uses the given sequence name, which must already exist.
func NewSequence(db *sql.DB, name string) *Sequence {
	return &Sequence{db: db, name: name}
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	var tick int64
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT nextval($1::regclass)`, s.name).Scan(&tick)
	if err != nil {
		return 0, fmt.Errorf("next logical time: %w", err)
	}
	return tick, nil
}
