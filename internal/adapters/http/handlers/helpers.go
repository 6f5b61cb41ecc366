package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/domain/submission"
)

// parseID reads an int64 path parameter from the chi route context.
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid integer"},
		}
	}
	return id, nil
}

// parseSubmissionFilter builds a submission filter from the query string.
// Supported parameters: status, template_id.
func parseSubmissionFilter(r *http.Request) (submission.Filter, error) {
	var filter submission.Filter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status := submission.Status(raw)
		if !status.IsValid() {
			return filter, &domain.ValidationError{
				Fields: map[string]string{"status": "invalid: " + strconv.Quote(raw)},
			}
		}
		filter.Status = status
	}

	if raw := q.Get("template_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, &domain.ValidationError{
				Fields: map[string]string{"template_id": "must be a valid integer"},
			}
		}
		filter.TemplateID = &id
	}

	return filter, nil
}

// writeJSON renders v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes caps inbound JSON bodies at 1 MB.
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body into dst, capped at
// maxJSONBodyBytes. On failure it writes a 400 and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that check themselves.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body into dst and runs its validation,
// writing the error response itself when either step fails.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
