package middleware

import (
	"mime"
	"net/http"

	dErrors "provider-registry/pkg/domain-errors"
	"provider-registry/pkg/platform/httputil"
)

// ContentTypeJSON rejects requests that carry a body in anything but JSON.
// Bodiless requests pass through.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.ErrorResponse{
				Error:            string(dErrors.CodeBadRequest),
				ErrorDescription: "Content-Type must be application/json",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
