package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance:
	// creation and mutation of provider identity records.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring, such as
	// status changes that disable a provider and rejected ownership checks.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// ActorID is the principal that performed the action.
	ActorID string
	// Subject is the provider id acted upon.
	Subject string
	Action  string
	Reason  string
	// RequestID is the correlation ID from the request context.
	RequestID string
	// LogicalTime is the registry clock value the mutation committed at.
	LogicalTime int64
}

type AuditEvent string

const (
	EventProviderRegistered  AuditEvent = "provider_registered"
	EventProviderUpdated     AuditEvent = "provider_updated"
	EventProviderDeactivated AuditEvent = "provider_deactivated"
	EventProviderReactivated AuditEvent = "provider_reactivated"
	EventOwnershipDenied     AuditEvent = "provider_ownership_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventProviderRegistered:  CategoryCompliance,
	EventProviderUpdated:     CategoryCompliance,
	EventProviderDeactivated: CategorySecurity,
	EventProviderReactivated: CategoryCompliance,
	EventOwnershipDenied:     CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
