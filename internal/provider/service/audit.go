package service

import (
	"context"
	"log/slog"

	id "provider-registry/pkg/domain"
	dErrors "provider-registry/pkg/domain-errors"
	audit "provider-registry/pkg/platform/audit"
	"provider-registry/pkg/requestcontext"
)

// auditEmitter logs audit events and forwards them to the publisher.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

// emit wraps a publisher error as internal so a transactional caller can
// abort on it.
func (e *auditEmitter) emit(ctx context.Context, event audit.AuditEvent, actor id.Principal, providerID id.ProviderID, logicalTime int64) error {
	requestID := requestcontext.RequestID(ctx)
	if e.logger != nil {
		e.logger.InfoContext(ctx, string(event),
			"event", string(event),
			"log_type", "audit",
			"provider_id", providerID.String(),
			"principal", actor.String(),
			"logical_time", logicalTime,
			"request_id", requestID,
		)
	}
	if e.publisher == nil {
		return nil
	}
	err := e.publisher.Emit(ctx, audit.Event{
		Category:    event.Category(),
		Timestamp:   requestcontext.Now(ctx),
		ActorID:     actor.String(),
		Subject:     providerID.String(),
		Action:      string(event),
		RequestID:   requestID,
		LogicalTime: logicalTime,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

// emitCommitted publishes an event for a mutation that has already committed.
// The mutation cannot be undone, so a publisher error is logged instead.
func (e *auditEmitter) emitCommitted(ctx context.Context, event audit.AuditEvent, actor id.Principal, providerID id.ProviderID, logicalTime int64) {
	if err := e.emit(ctx, event, actor, providerID, logicalTime); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to record audit event for committed mutation",
			"event", string(event),
			"provider_id", providerID.String(),
			"logical_time", logicalTime,
			"error", err,
		)
	}
}

// emitDenied records a rejected ownership check. Best effort: the caller has
// already failed and the error is only logged.
func (e *auditEmitter) emitDenied(ctx context.Context, actor id.Principal, providerID id.ProviderID, operation string) {
	requestID := requestcontext.RequestID(ctx)
	if e.logger != nil {
		e.logger.WarnContext(ctx, string(audit.EventOwnershipDenied),
			"event", string(audit.EventOwnershipDenied),
			"log_type", "audit",
			"provider_id", providerID.String(),
			"principal", actor.String(),
			"operation", operation,
			"request_id", requestID,
		)
	}
	if e.publisher == nil {
		return
	}
	err := e.publisher.Emit(ctx, audit.Event{
		Category:  audit.CategorySecurity,
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actor.String(),
		Subject:   providerID.String(),
		Action:    string(audit.EventOwnershipDenied),
		Reason:    operation,
		RequestID: requestID,
	})
	if err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to record ownership denial",
			"error", err,
			"request_id", requestID,
		)
	}
}
