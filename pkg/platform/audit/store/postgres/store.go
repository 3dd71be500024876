package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "provider-registry/pkg/platform/audit"
	txcontext "provider-registry/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to audit_outbox in the caller's transaction (when one is
// carried by the context) and published to Kafka by the outbox relay.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Payload is the JSON structure published to Kafka.
type Payload struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
	ActorID     string `json:"actor_id,omitempty"`
	Subject     string `json:"subject"`
	Action      string `json:"action"`
	Reason      string `json:"reason,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	LogicalTime int64  `json:"logical_time,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	payload, err := json.Marshal(Payload{
		ID:          eventID.String(),
		Category:    string(category),
		Timestamp:   event.Timestamp.UTC().Format(time.RFC3339Nano),
		ActorID:     event.ActorID,
		Subject:     event.Subject,
		Action:      event.Action,
		Reason:      event.Reason,
		RequestID:   event.RequestID,
		LogicalTime: event.LogicalTime,
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = txcontext.Exec(ctx, s.db).ExecContext(ctx, query,
		eventID,
		"provider",
		event.Subject,
		event.Action,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// ListBySubject reads outbox entries for a provider, oldest first. Published
// entries are kept so the outbox doubles as the queryable audit log.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT payload FROM audit_outbox
		WHERE aggregate_type = 'provider' AND aggregate_id = $1
		ORDER BY created_at, id
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event, err := DecodePayload(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// DecodePayload converts a stored outbox payload back into an Event.
func DecodePayload(raw []byte) (audit.Event, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return audit.Event{}, fmt.Errorf("decode audit payload: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return audit.Event{}, fmt.Errorf("decode audit timestamp: %w", err)
	}
	return audit.Event{
		Category:    audit.EventCategory(p.Category),
		Timestamp:   ts,
		ActorID:     p.ActorID,
		Subject:     p.Subject,
		Action:      p.Action,
		Reason:      p.Reason,
		RequestID:   p.RequestID,
		LogicalTime: p.LogicalTime,
	}, nil
}
