// Package outbox relays audit_outbox rows to a message broker.
package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	txcontext "provider-registry/pkg/platform/tx"
)

// Message is one outbox row ready for publishing.
type Message struct {
	ID        string
	Key       string
	EventType string
	Payload   []byte
}

// Producer publishes a batch and returns only when every message is acknowledged.
type Producer interface {
	Publish(ctx context.Context, msgs []Message) error
}

// Relay polls the outbox and publishes unpublished rows in creation order.
// Rows are locked with SKIP LOCKED so several relays can run side by side.
type Relay struct {
	db       *sql.DB
	tx       *txcontext.Runner
	producer Producer
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func NewRelay(db *sql.DB, producer Producer, logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		db:       db,
		tx:       txcontext.NewRunner(db),
		producer: producer,
		logger:   logger,
		interval: time.Second,
		batch:    100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled. Publish failures are logged and retried
// on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := r.RelayOnce(ctx)
			if err != nil {
				r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.DebugContext(ctx, "outbox relayed", "count", n)
			}
		}
	}
}

// RelayOnce publishes one batch and marks it published in the same transaction.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	var relayed int
	err := r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exec := txcontext.Exec(txCtx, r.db)
		rows, err := exec.QueryContext(txCtx, `
			SELECT id, aggregate_id, event_type, payload
			FROM audit_outbox
			WHERE published_at IS NULL
			ORDER BY created_at, id
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		`, r.batch)
		if err != nil {
			return fmt.Errorf("select outbox: %w", err)
		}
		var msgs []Message
		for rows.Next() {
			var m Message
			if err := rows.Scan(&m.ID, &m.Key, &m.EventType, &m.Payload); err != nil {
				rows.Close()
				return fmt.Errorf("scan outbox: %w", err)
			}
			msgs = append(msgs, m)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate outbox: %w", err)
		}
		if len(msgs) == 0 {
			return nil
		}

		if err := r.producer.Publish(txCtx, msgs); err != nil {
			return fmt.Errorf("publish outbox batch: %w", err)
		}

		ids := make([]string, len(msgs))
		for i, m := range msgs {
			ids[i] = m.ID
		}
		if _, err := exec.ExecContext(txCtx,
			`UPDATE audit_outbox SET published_at = now() WHERE id::text = ANY($1)`,
			pq.Array(ids),
		); err != nil {
			return fmt.Errorf("mark outbox published: %w", err)
		}
		relayed = len(msgs)
		return nil
	})
	return relayed, err
}
