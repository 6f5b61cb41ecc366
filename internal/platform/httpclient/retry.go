package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/betterdayenergy/esign-service/internal/platform/logging"
)

// jitterRatio spreads each delay by up to ±25% to avoid synchronized retries.
const jitterRatio = 0.25

// send runs the retry loop for one logical request. The body is snapshotted
// up front so it can be replayed on every attempt. The final response is
// written through out rather than returned so the bodyclose linter can see
// the caller owns it.
func (c *Client) send(ctx context.Context, req *http.Request, out **http.Response) error {
	if c.policy.attempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.policy.attempts)
	}

	body, err := snapshotBody(req)
	if err != nil {
		return err
	}

	var lastErr error

	for attempt := range c.policy.attempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, lastErr); err != nil {
				return err
			}
		}

		rewindBody(req, body)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if !shouldRetryError(err) {
				return err
			}
			continue
		}

		if !shouldRetryStatus(resp.StatusCode) {
			*out = resp
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.serviceName)

		// The caller gets the last response with its body still readable.
		if attempt == c.policy.attempts-1 {
			*out = resp
			return lastErr
		}

		discardBody(resp)
	}

	return lastErr
}

// snapshotBody consumes the request body into a byte slice for replay.
// A nil body yields a nil slice.
func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()

	return data, nil
}

// rewindBody installs a fresh reader over the snapshot before an attempt.
func rewindBody(req *http.Request, data []byte) {
	if data == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.ContentLength = int64(len(data))
}

// discardBody drains and closes a response that will be retried, so the
// underlying connection can be reused.
func discardBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// pause logs the upcoming retry and sleeps for the backoff delay, aborting
// early if ctx is canceled.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, lastErr error) error {
	delay := nextDelay(attempt, c.policy)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.policy.attempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// nextDelay computes the exponential backoff for the given retry, where
// attempt 1 is the first retry. The delay is capped at maxDelay before
// jitter is applied.
func nextDelay(attempt int, p backoffPolicy) time.Duration {
	d := float64(p.firstDelay) * math.Pow(p.factor, float64(attempt-1))
	if d > float64(p.maxDelay) {
		d = float64(p.maxDelay)
	}

	d += d * jitterRatio * (2*randomUnit() - 1)
	if d < 0 {
		d = 0
	}

	return time.Duration(d)
}

// Mantissa width used to project random bits onto [0, 1).
const (
	mantissaBits = 53
	wordBits     = 64
)

// randomUnit returns a crypto/rand-backed float64 in [0, 1).
func randomUnit() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(wordBits-mantissaBits)) / float64(uint64(1)<<mantissaBits)
}

// shouldRetryError reports whether a transport error is worth retrying.
// Context cancellation and deadline expiry are terminal; everything else,
// network timeouts included, is treated as transient.
func shouldRetryError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// shouldRetryStatus reports whether a status code is worth retrying:
// 429 and all 5xx.
func shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
