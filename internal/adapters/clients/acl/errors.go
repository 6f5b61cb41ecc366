// Package acl implements the Anti-Corruption Layer that translates between
// the e-signature provider's API representations and domain types.
// Domain-specific translators live in subpackages (acl/submission,
// acl/template); shared error mapping lives here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/betterdayenergy/esign-service/internal/domain"
)

// maxErrorBodySize caps how much of an error response body gets read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorBody is the provider's error payload. Most endpoints return a flat
// {"error": "..."} object; RFC 7807 responses carry detail plus optional
// field-level errors.
type errorBody struct {
	Error  string        `json:"error"`
	Detail string        `json:"detail"`
	Errors []errorDetail `json:"errors"`
}

// errorDetail is one field-level failure in an RFC 7807 body.
type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// message returns the most specific human-readable description available.
func (e errorBody) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// TranslateHTTPError maps an HTTP error response from the provider to a
// domain error. The response body is parsed as JSON when the content type
// allows, and the provider's error message is wrapped into the returned
// error for context. For 400/422 responses with field-level errors, it
// returns a *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	eb := parseErrorBody(resp)

	detail := eb.message()
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if len(eb.Errors) > 0 {
			return toValidationError(eb.Errors)
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", detail, domain.ErrConflict)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseErrorBody reads a JSON error body when the response carries one.
// Any parse failure or non-JSON content type yields an empty errorBody, so
// translation falls back to the status text.
func parseErrorBody(resp *http.Response) errorBody {
	if resp.Body == nil {
		return errorBody{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "application/problem+json") {
		return errorBody{}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return errorBody{}
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return errorBody{}
	}
	return eb
}

// toValidationError lifts field-level details into a domain ValidationError,
// stripping the "body." location prefix so callers see bare field names.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[strings.TrimPrefix(d.Location, "body.")] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
