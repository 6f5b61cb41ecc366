package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/betterdayenergy/esign-service/internal/domain"
)

// jsonResponse builds a provider error response with a problem+json body.
func jsonResponse(status int, body string) *http.Response {
	h := http.Header{}
	if body != "" {
		h.Set("Content-Type", "application/problem+json")
	}
	var rc io.ReadCloser = http.NoBody
	if body != "" {
		rc = io.NopCloser(strings.NewReader(body))
	}
	return &http.Response{StatusCode: status, Header: h, Body: rc}
}

func TestTranslateHTTPError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusUnprocessableEntity, domain.ErrValidation},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusUnauthorized, domain.ErrForbidden},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusBadGateway, domain.ErrUnavailable},
		{http.StatusServiceUnavailable, domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(jsonResponse(tt.status, ""))

			if !errors.Is(got, tt.want) {
				t.Errorf("status %d translated to %v, want errors.Is %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestTranslateHTTPError_MessageExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "flat provider error object",
			status: http.StatusNotFound,
			body:   `{"error":"Submission not found"}`,
			want:   "Submission not found",
		},
		{
			name:   "problem-details detail field",
			status: http.StatusNotFound,
			body:   `{"type":"about:blank","title":"Not Found","status":404,"detail":"submission 42 not found"}`,
			want:   "submission 42 not found",
		},
		{
			name:   "empty body falls back to status text",
			status: http.StatusConflict,
			body:   "",
			want:   "Conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(jsonResponse(tt.status, tt.body))

			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", got.Error(), tt.want)
			}
		})
	}
}

func TestTranslateHTTPError_IgnoresNonJSONBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader("<html>gateway error</html>")),
	}

	got := TranslateHTTPError(resp)

	if !errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("error is not ErrNotFound: %v", got)
	}
	if !strings.Contains(got.Error(), "Not Found") {
		t.Errorf("error = %q, want status text fallback", got.Error())
	}
}

func TestTranslateHTTPError_FieldErrorsBecomeValidationError(t *testing.T) {
	t.Parallel()

	body := `{
		"detail": "validation failed",
		"errors": [
			{"location": "body.customer_name", "message": "is required"},
			{"location": "body.customer_email", "message": "is not a valid address"}
		]
	}`

	got := TranslateHTTPError(jsonResponse(http.StatusUnprocessableEntity, body))

	if !errors.Is(got, domain.ErrValidation) {
		t.Fatalf("error is not ErrValidation: %v", got)
	}

	var verr *domain.ValidationError
	if !errors.As(got, &verr) {
		t.Fatalf("error is not *ValidationError: %v", got)
	}

	// Locations arrive as body.<field>; translation strips the prefix.
	want := map[string]string{
		"customer_name":  "is required",
		"customer_email": "is not a valid address",
	}
	if len(verr.Fields) != len(want) {
		t.Fatalf("Fields = %v, want %v", verr.Fields, want)
	}
	for field, msg := range want {
		if verr.Fields[field] != msg {
			t.Errorf("Fields[%s] = %q, want %q", field, verr.Fields[field], msg)
		}
	}
}

func TestTranslateHTTPError_UnmappedStatus(t *testing.T) {
	t.Parallel()

	got := TranslateHTTPError(jsonResponse(http.StatusTeapot, ""))

	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrValidation, domain.ErrConflict,
		domain.ErrForbidden, domain.ErrUnavailable,
	} {
		if errors.Is(got, sentinel) {
			t.Errorf("status 418 should not map to %v", sentinel)
		}
	}
	if !strings.Contains(got.Error(), "418") {
		t.Errorf("error = %q, want the raw status code in the message", got.Error())
	}
}

func TestTranslateHTTPError_NilBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       nil,
	}

	if got := TranslateHTTPError(resp); !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("error is not ErrNotFound: %v", got)
	}
}
