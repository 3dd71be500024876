package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	dErrors "provider-registry/pkg/domain-errors"
	"provider-registry/pkg/platform/httputil"
	"provider-registry/pkg/platform/middleware/auth"
	request "provider-registry/pkg/platform/middleware/request"
	"provider-registry/pkg/requestcontext"
)

const maxBodyBytes = 16 << 10

// Service defines the registry operations exposed over HTTP.
type Service interface {
	RegisterProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID, profile models.Profile) (id.ProviderID, error)
	UpdateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID, profile models.Profile) (id.ProviderID, error)
	DeactivateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID) (id.ProviderID, error)
	ReactivateProvider(ctx context.Context, caller id.Principal, providerID id.ProviderID) (id.ProviderID, error)
	GetProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	GetProviderIDByPrincipal(ctx context.Context, principal id.Principal) (id.ProviderID, error)
	ProviderExists(ctx context.Context, providerID id.ProviderID) (bool, error)
}

// Handler serves the provider registry endpoints.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.JWTValidator
}

func New(service Service, logger *slog.Logger, jwtValidator auth.JWTValidator) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the registry routes. Lookups are public; mutations require
// a bearer token whose subject becomes the caller principal.
func (h *Handler) Register(r chi.Router) {
	r.Get("/providers/{providerID}", h.handleGetProvider)
	r.Head("/providers/{providerID}", h.handleHeadProvider)
	r.Get("/providers/{providerID}/exists", h.handleProviderExists)
	r.Get("/principals/{principal}/provider", h.handleGetProviderIDByPrincipal)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequirePrincipal(h.jwtValidator, h.logger))
		r.Post("/providers", h.handleRegisterProvider)
		r.Put("/providers/{providerID}", h.handleUpdateProvider)
		r.Post("/providers/{providerID}/deactivate", h.handleDeactivateProvider)
		r.Post("/providers/{providerID}/reactivate", h.handleReactivateProvider)
	})
}

func (h *Handler) handleRegisterProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RegisterProviderRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Normalize()
	providerID, err := req.Validate()
	if err != nil {
		h.writeError(ctx, w, "invalid register request", err)
		return
	}

	got, err := h.service.RegisterProvider(ctx, requestcontext.Principal(ctx), providerID, req.Profile())
	if err != nil {
		h.writeError(ctx, w, "register provider failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, MutationResponse{OK: got.String()})
}

func (h *Handler) handleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, ok := h.providerIDParam(w, r)
	if !ok {
		return
	}
	var req UpdateProviderRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.writeError(ctx, w, "invalid update request", err)
		return
	}

	got, err := h.service.UpdateProvider(ctx, requestcontext.Principal(ctx), providerID, req.Profile())
	if err != nil {
		h.writeError(ctx, w, "update provider failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MutationResponse{OK: got.String()})
}

func (h *Handler) handleDeactivateProvider(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, "deactivate provider failed", h.service.DeactivateProvider)
}

func (h *Handler) handleReactivateProvider(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, "reactivate provider failed", h.service.ReactivateProvider)
}

func (h *Handler) handleStatusChange(
	w http.ResponseWriter,
	r *http.Request,
	failureMsg string,
	change func(ctx context.Context, caller id.Principal, providerID id.ProviderID) (id.ProviderID, error),
) {
	ctx := r.Context()
	providerID, ok := h.providerIDParam(w, r)
	if !ok {
		return
	}
	got, err := change(ctx, requestcontext.Principal(ctx), providerID)
	if err != nil {
		h.writeError(ctx, w, failureMsg, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MutationResponse{OK: got.String()})
}

func (h *Handler) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, ok := h.providerIDParam(w, r)
	if !ok {
		return
	}
	provider, err := h.service.GetProvider(ctx, providerID)
	if err != nil {
		h.writeError(ctx, w, "get provider failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, provider)
}

func (h *Handler) handleHeadProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := id.ParseProviderID(chi.URLParam(r, "providerID"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	exists, err := h.service.ProviderExists(r.Context(), providerID)
	switch {
	case err != nil:
		h.logger.ErrorContext(r.Context(), "provider exists check failed",
			"error", err,
			"request_id", request.GetRequestID(r.Context()),
		)
		w.WriteHeader(http.StatusInternalServerError)
	case exists:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleProviderExists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, err := id.ParseProviderID(chi.URLParam(r, "providerID"))
	if err != nil {
		httputil.WriteJSON(w, http.StatusOK, ExistsResponse{Exists: false})
		return
	}
	exists, err := h.service.ProviderExists(ctx, providerID)
	if err != nil {
		h.writeError(ctx, w, "provider exists check failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

func (h *Handler) handleGetProviderIDByPrincipal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := id.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		h.writeError(ctx, w, "invalid principal", err)
		return
	}
	providerID, err := h.service.GetProviderIDByPrincipal(ctx, principal)
	if err != nil {
		h.writeError(ctx, w, "principal lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PrincipalProviderResponse{ProviderID: providerID.String()})
}

func (h *Handler) providerIDParam(w http.ResponseWriter, r *http.Request) (id.ProviderID, bool) {
	providerID, err := id.ParseProviderID(chi.URLParam(r, "providerID"))
	if err != nil {
		h.writeError(r.Context(), w, "invalid provider id", err)
		return "", false
	}
	return providerID, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"error", err,
			"request_id", request.GetRequestID(r.Context()),
		)
		httputil.WriteErrorWithResult(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"), models.ResultInvalidInput)
		return false
	}
	return true
}

// writeError logs client errors at Warn and infrastructure errors at Error.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	code, _ := dErrors.CodeOf(err)
	attrs := []any{
		"error", err,
		"code", string(code),
		"request_id", request.GetRequestID(ctx),
	}
	if code == "" || code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteErrorWithResult(w, err, models.ResultCode(err))
}
