// Package requesttime pins one wall-clock instant per request so audit
// timestamps and log lines emitted while serving it agree.
package requesttime

import (
	"net/http"
	"time"

	"provider-registry/pkg/requestcontext"
)

// Middleware stamps the request context with the current UTC time.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock is Middleware with an injectable time source.
func WithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
