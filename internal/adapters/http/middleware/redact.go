package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/betterdayenergy/esign-service/internal/platform/logging"
)

// RedactHeaders flattens an http.Header into slog attrs for debug logging.
// Names listed in logging.SensitiveHeaders (auth tokens, the webhook shared
// secret, cookies) come out as "[REDACTED]"; everything else keeps its
// values, multi-value headers joined with commas.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for name, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(name)] {
			attrs = append(attrs, slog.String(name, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.String(name, strings.Join(vals, ",")))
	}
	return attrs
}
