package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"provider-registry/internal/provider/metrics"
	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	dErrors "provider-registry/pkg/domain-errors"
	audit "provider-registry/pkg/platform/audit"
	"provider-registry/pkg/platform/sentinel"
	txcontext "provider-registry/pkg/platform/tx"
)

// ProviderStore persists provider records and the principal index.
//
// Error Contract:
//   - Create returns sentinel.ErrAlreadyUsed when the provider id is taken
//   - Update and FindByID return sentinel.ErrNotFound for unknown ids
//   - FindIDByPrincipal returns sentinel.ErrNotFound when the principal has never registered
//   - Other errors are infrastructure failures
type ProviderStore interface {
	Create(ctx context.Context, provider *models.Provider) error
	Update(ctx context.Context, provider *models.Provider) error
	FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	FindIDByPrincipal(ctx context.Context, principal id.Principal) (id.ProviderID, error)
	Exists(ctx context.Context, providerID id.ProviderID) (bool, error)
}

// Clock issues logical timestamps. Values must be strictly increasing across
// calls made inside StoreTx.
type Clock interface {
	Next(ctx context.Context) (int64, error)
}

// AuditPublisher records audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ProviderCache is an optional read-through cache. Implementations swallow
// their own failures; a miss is always safe.
//
// Fill methods are called on read misses and must never replace an existing
// entry. Store methods write committed state through and must keep whichever
// entry carries the higher version: UpdatedAt for records, the provider's
// CreatedAt for the principal index.
type ProviderCache interface {
	GetProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, bool)
	FillProvider(ctx context.Context, provider *models.Provider)
	StoreProvider(ctx context.Context, provider *models.Provider)
	GetProviderID(ctx context.Context, principal id.Principal) (id.ProviderID, bool)
	FillProviderID(ctx context.Context, principal id.Principal, providerID id.ProviderID)
	StoreProviderID(ctx context.Context, principal id.Principal, providerID id.ProviderID, version int64)
}

// Operation names used for metrics, spans and audit reasons.
const (
	opRegister   = "register_provider"
	opUpdate     = "update_provider"
	opDeactivate = "deactivate_provider"
	opReactivate = "reactivate_provider"
	opGet        = "get_provider"
	opGetByOwner = "get_provider_id_by_principal"
	opExists     = "provider_exists"
)

// Service implements the provider registry operations. All mutations run
// inside StoreTx; reads do not take the writer lock.
type Service struct {
	providers ProviderStore
	clock     Clock
	tx        StoreTx
	cache     ProviderCache
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	auditor   *auditEmitter
	publisher AuditPublisher
	txTimeout time.Duration
	// transactionalAudit is set when the publisher writes through the store
	// transaction carried by txCtx.
	transactionalAudit bool
}

// Option configures the provider service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithTransactionalAudit declares that the audit publisher writes inside the
// store transaction, such as a Postgres outbox. Audit events are then emitted
// before commit and a publish failure rolls the mutation back. Without it,
// events are emitted only after the mutation commits and publish failures
// are logged.
func WithTransactionalAudit() Option {
	return func(s *Service) {
		s.transactionalAudit = true
	}
}

// WithTx replaces the default in-memory writer lock. Use a SQL runner when
// the store is database backed.
func WithTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithCache(cache ProviderCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithTxTimeout bounds how long the default in-memory writer lock may be
// waited for. Ignored when WithTx is supplied.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.txTimeout = d
	}
}

func New(providers ProviderStore, clock Clock, opts ...Option) (*Service, error) {
	if providers == nil {
		return nil, errors.New("providers store is required")
	}
	if clock == nil {
		return nil, errors.New("clock is required")
	}

	svc := &Service{
		providers: providers,
		clock:     clock,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tx == nil {
		svc.tx = newInMemoryStoreTx(svc.txTimeout)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("provider-registry/provider")
	}
	svc.auditor = newAuditEmitter(svc.logger, svc.publisher)
	return svc, nil
}

// RegisterProvider creates an active provider owned by caller. The principal
// index is pointed at the new id, replacing any earlier registration by the
// same principal.
func (s *Service) RegisterProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID, profile models.Profile) (_ id.ProviderID, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opRegister, providerID, caller)
	defer func() { s.finish(span, opRegister, start, err) }()

	if err := requireCaller(caller); err != nil {
		return "", err
	}
	if err := checkProviderID(providerID); err != nil {
		return "", err
	}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return "", translateInvariant(err)
	}

	var created *models.Provider
	var pendingAudit func(context.Context)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.providers.Exists(txCtx, providerID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check provider")
		}
		if exists {
			return dErrors.New(dErrors.CodeConflict, "provider already exists")
		}

		now, err := s.clock.Next(txCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read logical clock")
		}
		provider, err := models.NewProvider(providerID, caller, profile, now)
		if err != nil {
			return translateInvariant(err)
		}
		if err := s.providers.Create(txCtx, provider); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "provider already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save provider")
		}
		pendingAudit, err = s.recordAudit(txCtx, audit.EventProviderRegistered, caller, providerID, now)
		if err != nil {
			return err
		}
		created = provider
		return nil
	})
	if err != nil {
		return "", err
	}
	if pendingAudit != nil {
		pendingAudit(ctx)
	}

	if s.cache != nil {
		s.cache.StoreProvider(ctx, created)
		s.cache.StoreProviderID(ctx, created.Owner, created.ID, created.CreatedAt)
	}
	return created.ID, nil
}

// UpdateProvider replaces the descriptive fields of a provider owned by caller.
func (s *Service) UpdateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID, profile models.Profile) (_ id.ProviderID, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opUpdate, providerID, caller)
	defer func() { s.finish(span, opUpdate, start, err) }()

	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return "", translateInvariant(err)
	}
	return s.mutate(ctx, opUpdate, caller, providerID, audit.EventProviderUpdated, func(p *models.Provider, now int64) {
		p.ApplyProfile(profile, now)
	})
}

// DeactivateProvider marks a provider owned by caller inactive. Deactivating
// an inactive provider succeeds and still advances UpdatedAt.
func (s *Service) DeactivateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID) (_ id.ProviderID, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opDeactivate, providerID, caller)
	defer func() { s.finish(span, opDeactivate, start, err) }()

	return s.mutate(ctx, opDeactivate, caller, providerID, audit.EventProviderDeactivated, func(p *models.Provider, now int64) {
		p.ApplyDeactivation(now)
	})
}

// ReactivateProvider marks a provider owned by caller active. Reactivating an
// active provider succeeds and still advances UpdatedAt.
func (s *Service) ReactivateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID) (_ id.ProviderID, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opReactivate, providerID, caller)
	defer func() { s.finish(span, opReactivate, start, err) }()

	return s.mutate(ctx, opReactivate, caller, providerID, audit.EventProviderReactivated, func(p *models.Provider, now int64) {
		p.ApplyReactivation(now)
	})
}

// mutate loads the record, checks ownership, stamps it with the next logical
// time and persists it. Nothing is written unless every step succeeds.
func (s *Service) mutate(ctx context.Context, operation string, caller id.Principal, providerID id.ProviderID, event audit.AuditEvent, apply func(p *models.Provider, now int64)) (id.ProviderID, error) {
	if err := requireCaller(caller); err != nil {
		return "", err
	}
	if err := checkProviderID(providerID); err != nil {
		return "", err
	}

	var updated *models.Provider
	var pendingAudit func(context.Context)
	denied := false
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		provider, err := s.providers.FindByID(txCtx, providerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "provider not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load provider")
		}
		if err := provider.CanMutate(caller); err != nil {
			denied = true
			return err
		}

		now, err := s.clock.Next(txCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read logical clock")
		}
		apply(provider, now)
		if err := s.providers.Update(txCtx, provider); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "provider not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save provider")
		}
		pendingAudit, err = s.recordAudit(txCtx, event, caller, providerID, now)
		if err != nil {
			return err
		}
		updated = provider
		return nil
	})
	if err != nil {
		if denied {
			s.auditor.emitDenied(ctx, caller, providerID, operation)
		}
		return "", err
	}
	if pendingAudit != nil {
		pendingAudit(ctx)
	}

	if s.cache != nil {
		s.cache.StoreProvider(ctx, updated)
	}
	return updated.ID, nil
}

// GetProvider returns a copy of the provider record. Unknown ids yield a
// not_found error.
func (s *Service) GetProvider(ctx context.Context, providerID id.ProviderID) (_ *models.Provider, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opGet, providerID, "")
	defer func() { s.finish(span, opGet, start, err) }()

	if err := checkProviderID(providerID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cached, ok := s.cache.GetProvider(ctx, providerID); ok {
			s.recordCache("provider", true)
			return cached, nil
		}
		s.recordCache("provider", false)
	}

	provider, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load provider")
	}
	if s.cache != nil {
		s.cache.FillProvider(ctx, provider)
	}
	return provider.Clone(), nil
}

// GetProviderIDByPrincipal returns the id most recently registered by
// principal. Principals that never registered yield a not_found error.
func (s *Service) GetProviderIDByPrincipal(ctx context.Context, principal id.Principal) (_ id.ProviderID, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opGetByOwner, "", principal)
	defer func() { s.finish(span, opGetByOwner, start, err) }()

	if principal.IsZero() {
		return "", dErrors.New(dErrors.CodeValidation, "principal is required")
	}
	if s.cache != nil {
		if cached, ok := s.cache.GetProviderID(ctx, principal); ok {
			s.recordCache("principal", true)
			return cached, nil
		}
		s.recordCache("principal", false)
	}

	providerID, err := s.providers.FindIDByPrincipal(ctx, principal)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "principal has no provider")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load principal index")
	}
	if s.cache != nil {
		s.cache.FillProviderID(ctx, principal, providerID)
	}
	return providerID, nil
}

// ProviderExists reports whether a record with providerID has ever been
// registered. Inactive providers exist.
func (s *Service) ProviderExists(ctx context.Context, providerID id.ProviderID) (_ bool, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opExists, providerID, "")
	defer func() { s.finish(span, opExists, start, err) }()

	if checkProviderID(providerID) != nil {
		return false, nil
	}
	if s.cache != nil {
		if _, ok := s.cache.GetProvider(ctx, providerID); ok {
			s.recordCache("provider", true)
			return true, nil
		}
		s.recordCache("provider", false)
	}
	exists, err := s.providers.Exists(ctx, providerID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check provider")
	}
	return exists, nil
}

// recordAudit emits the event for a write already applied inside txCtx. A
// transactional publisher is called now and its failure aborts the
// transaction. Otherwise the event is deferred until commit, through a
// commit hook when the StoreTx supports one or by returning it for the
// caller to run once RunInTx succeeds.
func (s *Service) recordAudit(txCtx context.Context, event audit.AuditEvent, caller id.Principal, providerID id.ProviderID, now int64) (func(context.Context), error) {
	if s.transactionalAudit {
		return nil, s.auditor.emit(txCtx, event, caller, providerID, now)
	}
	emit := func(ctx context.Context) {
		s.auditor.emitCommitted(ctx, event, caller, providerID, now)
	}
	if txcontext.AfterCommit(txCtx, emit) {
		return nil, nil
	}
	return emit, nil
}

func (s *Service) recordCache(kind string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit(kind)
		return
	}
	s.metrics.RecordCacheMiss(kind)
}

func (s *Service) startSpan(ctx context.Context, operation string, providerID id.ProviderID, principal id.Principal) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("registry.operation", operation)}
	if !providerID.IsZero() {
		attrs = append(attrs, attribute.String("provider.id", providerID.String()))
	}
	if !principal.IsZero() {
		attrs = append(attrs, attribute.String("provider.principal", principal.String()))
	}
	return s.tracer.Start(ctx, "provider."+operation, trace.WithAttributes(attrs...))
}

func (s *Service) finish(span trace.Span, operation string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeRejected
		if dErrors.HasCode(err, dErrors.CodeInternal) || dErrors.HasCode(err, dErrors.CodeTimeout) {
			outcome = metrics.OutcomeError
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, dErrors.Message(err))
	}
	span.SetAttributes(attribute.String("registry.outcome", outcome))
	span.End()
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, outcome, start)
	}
}

func requireCaller(caller id.Principal) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller principal is required")
	}
	return nil
}

// checkProviderID rejects ids that would not survive ParseProviderID unchanged.
func checkProviderID(providerID id.ProviderID) error {
	parsed, err := id.ParseProviderID(providerID.String())
	if err != nil {
		return err
	}
	if parsed != providerID {
		return dErrors.New(dErrors.CodeInvalidInput, "provider_id must not have surrounding whitespace")
	}
	return nil
}

// translateInvariant maps aggregate invariant failures onto validation errors.
func translateInvariant(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.Wrap(err, dErrors.CodeValidation, dErrors.Message(err))
	}
	return err
}
