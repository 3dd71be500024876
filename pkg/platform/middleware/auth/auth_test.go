package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "provider-registry/pkg/domain"
	"provider-registry/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return v.claims, v.err
}

func TestRequirePrincipal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen id.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Principal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name      string
		header    string
		validator stubValidator
		want      int
		principal id.Principal
	}{
		{
			name:      "valid token",
			header:    "Bearer good",
			validator: stubValidator{claims: &JWTClaims{Subject: "alice"}},
			want:      http.StatusNoContent,
			principal: "alice",
		},
		{
			name:   "missing header",
			header: "",
			want:   http.StatusUnauthorized,
		},
		{
			name:   "wrong scheme",
			header: "Basic abc",
			want:   http.StatusUnauthorized,
		},
		{
			name:      "invalid token",
			header:    "Bearer bad",
			validator: stubValidator{err: errors.New("invalid token")},
			want:      http.StatusUnauthorized,
		},
		{
			name:      "blank subject",
			header:    "Bearer good",
			validator: stubValidator{claims: &JWTClaims{Subject: "   "}},
			want:      http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/providers", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			RequirePrincipal(tc.validator, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.principal, seen)
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
