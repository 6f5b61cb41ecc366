// Package httpclient wraps net/http with the resilience stack every outbound
// call to the e-signature provider goes through: a circuit breaker, an
// optional client-side rate limiter, auth and trace header injection, an
// OpenTelemetry client span, and retries with jittered exponential backoff.
//
//	client := httpclient.New(&cfg.DocuSeal, "docuseal", metrics, logger)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	resp, err := client.Do(ctx, req)
//
// Request and correlation IDs set by the inbound middleware travel through
// the context:
//
//	ctx = httpclient.WithRequestID(ctx, "req-123")
//	ctx = httpclient.WithCorrelationID(ctx, "corr-456")
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/betterdayenergy/esign-service/internal/platform/config"
	"github.com/betterdayenergy/esign-service/internal/platform/telemetry"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores the inbound request ID so outbound calls can forward
// it in the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the correlation ID so outbound calls can forward
// it in the X-Correlation-ID header.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// backoffPolicy is the retry schedule, copied out of config.RetryConfig so
// the rest of the package does not depend on config types.
type backoffPolicy struct {
	attempts   int
	firstDelay time.Duration
	maxDelay   time.Duration
	factor     float64
}

// Client sends HTTP requests to a single downstream service with circuit
// breaking, rate limiting, header injection, tracing, and retries applied.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	authHeader  string
	authToken   string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	limiter     *rate.Limiter // nil disables client-side limiting
	policy      backoffPolicy
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New builds a Client for one downstream service. serviceName labels the
// breaker, spans, and metrics ("docuseal"). A nil metrics disables metric
// recording. An empty cfg.APIToken is allowed but logged as a warning, since
// the provider will reject unauthenticated calls.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	if cfg.APIToken == "" {
		logger.Warn("API token not configured; outbound requests will be unauthenticated",
			slog.String("service", serviceName),
		)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		serviceName: serviceName,
		authHeader:  cfg.AuthHeader,
		authToken:   cfg.APIToken,
		breaker:     breaker,
		limiter:     limiter,
		policy: backoffPolicy{
			attempts:   cfg.Retry.MaxAttempts,
			firstDelay: cfg.Retry.InitialInterval,
			maxDelay:   cfg.Retry.MaxInterval,
			factor:     cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Do runs the request through the full stack: breaker first, then rate
// limiter, header injection, span creation, and the retry loop.
//
// On success the returned response has an open body the caller must close.
// When retries are exhausted on a retryable status, both the final response
// (body intact) and an error are returned. When the breaker rejects the call
// or a transport error occurs, the response is nil.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	method := req.Method

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if err := c.throttle(ctx); err != nil {
			return struct{}{}, err
		}

		c.decorate(ctx, req)

		spanCtx, span := c.openSpan(ctx, req)
		defer span.End()

		// The span context carries cancellation, deadline, and trace
		// propagation for the actual transport call.
		req = req.WithContext(spanCtx)

		sendErr := c.send(spanCtx, req, &resp)
		closeSpan(span, resp, sendErr)

		return struct{}{}, sendErr
	})

	c.observe(ctx, method, start, resp, err)

	return resp, err
}

// BaseURL returns the configured downstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the downstream service label. With HealthCheck it makes
// Client satisfy ports.HealthChecker structurally.
func (c *Client) Name() string {
	return c.serviceName
}

// HealthCheck maps the breaker state to a health verdict without touching
// the network: closed is healthy, half-open is degraded, open is failing.
// This is downstream status, not service readiness.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// throttle blocks until the limiter admits the request or ctx is done.
func (c *Client) throttle(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// decorate sets the provider auth header and forwards request/correlation
// IDs when the context carries them.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if c.authToken != "" {
		req.Header.Set(c.authHeader, c.authToken)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
}

// openSpan starts a CLIENT span for the outbound call and injects W3C trace
// context into the request headers.
func (c *Client) openSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("httpclient")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// closeSpan stamps the final status code and error onto the span.
func closeSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// observe records duration and count for the call. It runs outside the
// breaker so circuit-open rejections are counted too. Nil metrics is a no-op.
func (c *Client) observe(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	result := "error"
	if resp != nil {
		status = resp.StatusCode
		if status < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// clampUint32 converts a non-negative int to uint32, clamping out-of-range
// values instead of overflowing.
func clampUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
