package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/betterdayenergy/esign-service/internal/domain"
)

// ErrorResponse is the RFC 9457 problem-details body every failing
// endpoint returns.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail carries one field-level validation failure inside an
// ErrorResponse.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewErrorResponse translates a domain error into a problem-details body.
// The instance field echoes the request URI so a caller can correlate the
// failure with the call that produced it.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	code := statusFor(err)

	body := ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(code),
		Status:   code,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Errors = fieldDetails(verr.Fields)
	}

	return body
}

// WriteErrorResponse renders err as application/problem+json on w with the
// status code implied by the domain sentinel it wraps.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	body := NewErrorResponse(r, err)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(body.Status)

	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fieldDetails flattens the validation field map into details sorted by
// location so the output is stable across runs.
func fieldDetails(fields map[string]string) []ErrorDetail {
	out := make([]ErrorDetail, 0, len(fields))
	for name, msg := range fields {
		out = append(out, ErrorDetail{Location: "body." + name, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}
