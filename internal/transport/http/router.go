package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"provider-registry/internal/platform/metrics"
	"provider-registry/internal/platform/middleware"
	"provider-registry/internal/provider/handler"
	"provider-registry/pkg/platform/httputil"
	request "provider-registry/pkg/platform/middleware/request"
	"provider-registry/pkg/platform/middleware/requesttime"
)

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// RouterDeps are the collaborators the HTTP surface needs.
type RouterDeps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Providers      *handler.Handler
	HealthChecks   []HealthCheck
	RequestTimeout time.Duration
}

// NewRouter wires the shared middleware chain, ops endpoints and the
// provider registry routes.
func NewRouter(deps RouterDeps) http.Handler {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(deps.Logger))
	r.Use(request.Timeout(timeout))
	r.Use(metrics.LatencyMiddleware(deps.Metrics))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", healthHandler(deps.HealthChecks))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	if deps.Providers != nil {
		deps.Providers.Register(r)
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				resp.Checks[c.Name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
