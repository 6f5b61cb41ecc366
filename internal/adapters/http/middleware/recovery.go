package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
)

// Clients only ever see this generic error; the panic value and stack stay
// in the logs.
var errInternalServer = errors.New("internal server error")

// Recovery turns handler panics into logged RFC 9457 500 responses. If the
// handler already started writing the response, only the log entry happens.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newRecorder(w)

			defer func() {
				if v := recover(); v != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.String("panic", fmt.Sprint(v)),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					if !rec.wroteHeader {
						dto.WriteErrorResponse(rec, r, errInternalServer)
					}
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
