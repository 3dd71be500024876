package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "provider-registry/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
		if _, ok := body["result_code"]; ok {
			t.Fatalf("expected result_code to be omitted when zero")
		}
	})

	t.Run("uncoded errors are treated as internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("conflict includes description and result code", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorWithResult(w, dErrors.New(dErrors.CodeConflict, "provider already exists"), 2)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}

		var body ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Error != "conflict" {
			t.Fatalf("expected error code conflict, got %q", body.Error)
		}
		if body.ErrorDescription != "provider already exists" {
			t.Fatalf("expected error_description to be returned for conflict")
		}
		if body.ResultCode != 2 {
			t.Fatalf("expected result_code 2, got %d", body.ResultCode)
		}
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeValidation:   http.StatusBadRequest,
		dErrors.CodeInvalidInput: http.StatusBadRequest,
		dErrors.CodeNotFound:     http.StatusNotFound,
		dErrors.CodeForbidden:    http.StatusForbidden,
		dErrors.CodeUnauthorized: http.StatusUnauthorized,
		dErrors.CodeTimeout:      http.StatusGatewayTimeout,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", code, got, want)
		}
	}
}
