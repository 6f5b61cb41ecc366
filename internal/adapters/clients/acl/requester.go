package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/platform/httpclient"
)

// Requester wraps an httpclient.Client with the request plumbing every
// provider call shares: JSON encoding, status validation, error
// translation via TranslateHTTPError, and response decoding.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client and logger.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// BaseURL returns the base URL from the underlying HTTP client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// Do issues one provider API call. reqBody, when non-nil, is marshaled as
// the JSON request body; respBody, when non-nil, receives the decoded JSON
// response. A status code other than wantStatus is translated into a
// domain error.
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	req, err := r.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	return r.roundTrip(req, wantStatus, respBody)
}

// newRequest builds the outgoing request against the client's base URL.
// GET and DELETE never carry a body; POST and PUT marshal reqBody as JSON.
func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, error) {
	url := r.client.BaseURL() + path

	var payload io.Reader = http.NoBody
	switch method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost, http.MethodPut:
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	if payload != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// roundTrip sends the request, validates the status, and decodes the body
// into respBody when one is expected. resp.Body is always closed.
func (r *Requester) roundTrip(req *http.Request, wantStatus int, respBody any) error {
	ctx := req.Context()

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// Exhausted retries on a retryable status still hand back the last
		// response; translate it instead of surfacing the raw retry error.
		if resp != nil {
			defer r.drop(ctx, resp)
			if resp.StatusCode != wantStatus {
				return TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer r.drop(ctx, resp)

	if resp.StatusCode != wantStatus {
		r.logger.ErrorContext(ctx, "unexpected status",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return TranslateHTTPError(resp)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
		}
	}
	return nil
}

// drop closes the response body, logging when the close itself fails.
func (r *Requester) drop(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
