package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists the lowercase HTTP header names that carry
// credentials. Both the masq layer here and the middleware's RedactHeaders
// consume this one set, so the two stay in sync. The provider API token and
// the webhook shared secret are the entries this service most depends on.
var SensitiveHeaders = map[string]bool{
	"authorization":    true,
	"x-api-key":        true,
	"x-auth-token":     true,
	"x-webhook-secret": true,
	"cookie":           true,
}

var (
	// "Bearer <token>" appearing as a raw string value.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// Raw JWTs (header.payload.signature). Segments must be at least 10
	// characters, which keeps version strings like "1.2.3" out.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// Inline "api_key=<value>" or "apikey:<value>" fragments.
	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

// Options added on top of the SensitiveHeaders set: 3 field names,
// 2 prefixes, 3 regexes.
const fixedRedactOptions = 8

// newRedactAttr builds the masq ReplaceAttr hook for slog.HandlerOptions.
// Field-name matching catches structured attrs; the regexes catch secrets
// that leak into free-form string values.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, fixedRedactOptions+len(SensitiveHeaders))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),

		// Catches variants like "secret_key" and "api_key_v2".
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),

		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)

	return masq.New(opts...)
}
