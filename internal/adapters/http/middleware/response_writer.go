// Package middleware holds the inbound HTTP pipeline. The server installs it
// in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → Handler
//
// Every middleware is a func(http.Handler) http.Handler; Chain composes them.
package middleware

import "net/http"

// recorder wraps http.ResponseWriter so the recovery, otel, and logging
// middleware can observe the status code and byte count after the handler
// runs.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	bytes       int64
}

func newRecorder(w http.ResponseWriter) *recorder {
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are
// swallowed, matching net/http's superfluous-WriteHeader behavior.
func (rec *recorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

// Write counts bytes and marks the implicit 200 that net/http sends when the
// handler writes without calling WriteHeader.
func (rec *recorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.wroteHeader = true
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer for http.ResponseController and
// interface upgrades like http.Flusher.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
