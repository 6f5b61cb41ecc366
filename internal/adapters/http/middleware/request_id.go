package middleware

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/platform/httpclient"
)

const headerRequestID = "X-Request-ID"

// The middleware package and httpclient each read their own context key, so
// neither needs to import the other's internals.
type requestIDKey struct{}

// WithRequestID stores the request ID for handlers and, through
// httpclient.WithRequestID, for outbound provider calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return httpclient.WithRequestID(ctx, id)
}

// RequestIDFromContext returns the stored request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID assigns each request an X-Request-ID: the inbound header value
// when the caller sent one, a fresh UUID v4 otherwise. The ID lands in the
// context and is echoed as a response header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = newUUID()
			}
			ctx := WithRequestID(r.Context(), id)
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 4122 version/variant bits for UUID v4.
const (
	uuidVersion4    = 0x40
	uuidVersionMask = 0x0f
	uuidVariant10   = 0x80
	uuidVariantMask = 0x3f
)

// newUUID returns a crypto/rand UUID v4, formatted
// "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx".
func newUUID() string {
	var u [16]byte
	_, _ = rand.Read(u[:])

	u[6] = (u[6] & uuidVersionMask) | uuidVersion4
	u[8] = (u[8] & uuidVariantMask) | uuidVariant10

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
